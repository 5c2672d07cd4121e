package auth

// Plan is a company's subscription tier
type Plan string

const (
	// PlanStarter is the entry tier
	PlanStarter Plan = "starter"
	// PlanProfessional is the mid tier
	PlanProfessional Plan = "professional"
	// PlanEnterprise is the top tier
	PlanEnterprise Plan = "enterprise"
)

// IsValid checks if the plan is one of the predefined tiers
func (p Plan) IsValid() bool {
	switch p {
	case PlanStarter, PlanProfessional, PlanEnterprise:
		return true
	default:
		return false
	}
}

// IsAtLeast checks if this plan meets the minimum required tier
func (p Plan) IsAtLeast(minPlan Plan) bool {
	planHierarchy := map[Plan]int{
		PlanStarter:      0,
		PlanProfessional: 1,
		PlanEnterprise:   2,
	}

	currentLevel, exists := planHierarchy[p]
	if !exists {
		return false
	}

	minLevel, exists := planHierarchy[minPlan]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// ParsePlan safely parses a string into a Plan type
func ParsePlan(planStr string) (Plan, bool) {
	plan := Plan(planStr)
	return plan, plan.IsValid()
}
