package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
	"github.com/halden-dev/shoptrack/internal/store"
)

// mockSessionStore implements domain.SessionStore for testing. It counts
// SetActiveOrg calls so tests can assert when the resolver persists.
type mockSessionStore struct {
	mu                sync.Mutex
	sessions          map[string]*domain.Session
	setActiveOrgCalls int
	setActiveOrgErr   error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]*domain.Session)}
}

func (m *mockSessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[token]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (m *mockSessionStore) SetActiveOrg(ctx context.Context, token string, orgID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setActiveOrgCalls++
	if m.setActiveOrgErr != nil {
		return m.setActiveOrgErr
	}
	sess, ok := m.sessions[token]
	if !ok {
		return store.ErrNotFound
	}
	sess.ActiveOrgID = orgID
	return nil
}

// mockMembershipStore implements domain.MembershipStore for testing.
type mockMembershipStore struct {
	memberships     []domain.Membership
	listOrgIDsCalls int
	listOrgIDsErr   error
}

func newMockMembershipStore() *mockMembershipStore {
	return &mockMembershipStore{}
}

func (m *mockMembershipStore) Create(ctx context.Context, mb *domain.Membership) error {
	for _, existing := range m.memberships {
		if existing.UserID == mb.UserID && existing.OrgID == mb.OrgID {
			return store.ErrConflict
		}
	}
	m.memberships = append(m.memberships, *mb)
	return nil
}

func (m *mockMembershipStore) ListOrgIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	m.listOrgIDsCalls++
	if m.listOrgIDsErr != nil {
		return nil, m.listOrgIDsErr
	}
	var ids []uuid.UUID
	for _, mb := range m.memberships {
		if mb.UserID == userID {
			ids = append(ids, mb.OrgID)
		}
	}
	return ids, nil
}

func (m *mockMembershipStore) Exists(ctx context.Context, userID, orgID uuid.UUID) (bool, error) {
	for _, mb := range m.memberships {
		if mb.UserID == userID && mb.OrgID == orgID {
			return true, nil
		}
	}
	return false, nil
}

// mockLimitsStore implements domain.LimitsStore for testing. GetOrCreate
// lazily inserts the defaults row like the real store does.
type mockLimitsStore struct {
	mu     sync.Mutex
	limits map[uuid.UUID]*domain.OrgLimits
	getErr error
}

func newMockLimitsStore() *mockLimitsStore {
	return &mockLimitsStore{limits: make(map[uuid.UUID]*domain.OrgLimits)}
}

func (m *mockLimitsStore) GetOrCreate(ctx context.Context, orgID uuid.UUID) (*domain.OrgLimits, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	l, ok := m.limits[orgID]
	if !ok {
		l = &domain.OrgLimits{
			OrgID:        orgID,
			MaxVehicles:  domain.DefaultMaxVehicles,
			MaxFleets:    domain.DefaultMaxFleets,
			MaxCustomers: domain.DefaultMaxCustomers,
		}
		m.limits[orgID] = l
	}
	cp := *l
	return &cp, nil
}

func (m *mockLimitsStore) Update(ctx context.Context, orgID uuid.UUID, upd domain.LimitsUpdate) (*domain.OrgLimits, error) {
	if _, err := m.GetOrCreate(ctx, orgID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.limits[orgID]
	if upd.MaxVehicles != nil {
		l.MaxVehicles = *upd.MaxVehicles
	}
	if upd.MaxFleets != nil {
		l.MaxFleets = *upd.MaxFleets
	}
	if upd.MaxCustomers != nil {
		l.MaxCustomers = *upd.MaxCustomers
	}
	if upd.ClearMonthlyInvoices {
		l.MaxMonthlyInvoices = nil
	} else if upd.MaxMonthlyInvoices != nil {
		v := *upd.MaxMonthlyInvoices
		l.MaxMonthlyInvoices = &v
	}
	cp := *l
	return &cp, nil
}

// mockOrgStore implements domain.OrgStore for testing.
type mockOrgStore struct {
	orgs map[uuid.UUID]*domain.Organization
}

func newMockOrgStore() *mockOrgStore {
	return &mockOrgStore{orgs: make(map[uuid.UUID]*domain.Organization)}
}

func (m *mockOrgStore) Create(ctx context.Context, o *domain.Organization) error {
	o.ID = uuid.New()
	m.orgs[o.ID] = o
	return nil
}

func (m *mockOrgStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	o, ok := m.orgs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return o, nil
}

func (m *mockOrgStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error) {
	var out []domain.Organization
	for _, o := range m.orgs {
		out = append(out, *o)
	}
	return out, nil
}

// mockCustomerStore implements domain.CustomerStore for testing.
type mockCustomerStore struct {
	customers map[uuid.UUID]*domain.Customer
	countErr  error
}

func newMockCustomerStore() *mockCustomerStore {
	return &mockCustomerStore{customers: make(map[uuid.UUID]*domain.Customer)}
}

func (m *mockCustomerStore) Create(ctx context.Context, c *domain.Customer) error {
	c.ID = uuid.New()
	m.customers[c.ID] = c
	return nil
}

func (m *mockCustomerStore) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Customer, error) {
	c, ok := m.customers[id]
	if !ok || c.OrgID != orgID {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (m *mockCustomerStore) List(ctx context.Context, orgID uuid.UUID) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, c := range m.customers {
		if c.OrgID == orgID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCustomerStore) Update(ctx context.Context, c *domain.Customer) error {
	existing, ok := m.customers[c.ID]
	if !ok || existing.OrgID != c.OrgID {
		return store.ErrNotFound
	}
	m.customers[c.ID] = c
	return nil
}

func (m *mockCustomerStore) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	c, ok := m.customers[id]
	if !ok || c.OrgID != orgID {
		return store.ErrNotFound
	}
	delete(m.customers, id)
	return nil
}

func (m *mockCustomerStore) CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	count := 0
	for _, c := range m.customers {
		if c.OrgID == orgID {
			count++
		}
	}
	return count, nil
}

// mockVehicleStore implements domain.VehicleStore for testing.
type mockVehicleStore struct {
	vehicles map[uuid.UUID]*domain.Vehicle
	countErr error
}

func newMockVehicleStore() *mockVehicleStore {
	return &mockVehicleStore{vehicles: make(map[uuid.UUID]*domain.Vehicle)}
}

func (m *mockVehicleStore) Create(ctx context.Context, v *domain.Vehicle) error {
	for _, existing := range m.vehicles {
		if existing.OrgID == v.OrgID && existing.Plate == v.Plate {
			return store.ErrConflict
		}
	}
	v.ID = uuid.New()
	m.vehicles[v.ID] = v
	return nil
}

func (m *mockVehicleStore) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Vehicle, error) {
	v, ok := m.vehicles[id]
	if !ok || v.OrgID != orgID {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (m *mockVehicleStore) List(ctx context.Context, orgID uuid.UUID) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	for _, v := range m.vehicles {
		if v.OrgID == orgID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockVehicleStore) Update(ctx context.Context, v *domain.Vehicle) error {
	existing, ok := m.vehicles[v.ID]
	if !ok || existing.OrgID != v.OrgID {
		return store.ErrNotFound
	}
	m.vehicles[v.ID] = v
	return nil
}

func (m *mockVehicleStore) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	v, ok := m.vehicles[id]
	if !ok || v.OrgID != orgID {
		return store.ErrNotFound
	}
	delete(m.vehicles, id)
	return nil
}

func (m *mockVehicleStore) CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	count := 0
	for _, v := range m.vehicles {
		if v.OrgID == orgID {
			count++
		}
	}
	return count, nil
}

// mockFleetStore implements domain.FleetStore for testing.
type mockFleetStore struct {
	fleets   map[uuid.UUID]*domain.Fleet
	countErr error
}

func newMockFleetStore() *mockFleetStore {
	return &mockFleetStore{fleets: make(map[uuid.UUID]*domain.Fleet)}
}

func (m *mockFleetStore) Create(ctx context.Context, f *domain.Fleet) error {
	f.ID = uuid.New()
	m.fleets[f.ID] = f
	return nil
}

func (m *mockFleetStore) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Fleet, error) {
	f, ok := m.fleets[id]
	if !ok || f.OrgID != orgID {
		return nil, store.ErrNotFound
	}
	return f, nil
}

func (m *mockFleetStore) List(ctx context.Context, orgID uuid.UUID) ([]domain.Fleet, error) {
	var out []domain.Fleet
	for _, f := range m.fleets {
		if f.OrgID == orgID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *mockFleetStore) Update(ctx context.Context, f *domain.Fleet) error {
	existing, ok := m.fleets[f.ID]
	if !ok || existing.OrgID != f.OrgID {
		return store.ErrNotFound
	}
	m.fleets[f.ID] = f
	return nil
}

func (m *mockFleetStore) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	f, ok := m.fleets[id]
	if !ok || f.OrgID != orgID {
		return store.ErrNotFound
	}
	delete(m.fleets, id)
	return nil
}

func (m *mockFleetStore) CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	count := 0
	for _, f := range m.fleets {
		if f.OrgID == orgID {
			count++
		}
	}
	return count, nil
}

// mockWorkOrderStore implements domain.WorkOrderStore for testing.
type mockWorkOrderStore struct {
	orders map[uuid.UUID]*domain.WorkOrder
}

func newMockWorkOrderStore() *mockWorkOrderStore {
	return &mockWorkOrderStore{orders: make(map[uuid.UUID]*domain.WorkOrder)}
}

func (m *mockWorkOrderStore) Create(ctx context.Context, w *domain.WorkOrder) error {
	w.ID = uuid.New()
	m.orders[w.ID] = w
	return nil
}

func (m *mockWorkOrderStore) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.WorkOrder, error) {
	w, ok := m.orders[id]
	if !ok || w.OrgID != orgID {
		return nil, store.ErrNotFound
	}
	return w, nil
}

func (m *mockWorkOrderStore) List(ctx context.Context, orgID uuid.UUID) ([]domain.WorkOrder, error) {
	var out []domain.WorkOrder
	for _, w := range m.orders {
		if w.OrgID == orgID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (m *mockWorkOrderStore) UpdateStatus(ctx context.Context, id, orgID uuid.UUID, status domain.WorkOrderStatus) error {
	w, ok := m.orders[id]
	if !ok || w.OrgID != orgID {
		return store.ErrNotFound
	}
	w.Status = status
	return nil
}

func (m *mockWorkOrderStore) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	w, ok := m.orders[id]
	if !ok || w.OrgID != orgID {
		return store.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}
