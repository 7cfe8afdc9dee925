package domain

// ResourceType identifies a quota-gated, organization-scoped resource.
type ResourceType string

const (
	ResourceVehicles  ResourceType = "vehicles"
	ResourceFleets    ResourceType = "fleets"
	ResourceCustomers ResourceType = "customers"
)

// QuotaDecision is the outcome of asking whether one more unit of a
// resource may be created. A denial carries the numbers the decision
// was based on so callers can surface usage vs. limit to the user.
type QuotaDecision struct {
	Resource     ResourceType `json:"resource"`
	Allowed      bool         `json:"allowed"`
	CurrentUsage int          `json:"current_usage"`
	Limit        int          `json:"limit"`
}
