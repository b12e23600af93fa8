package services

import (
	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// ViewRouter maps (role, requested page) to the page to render. Routing is
// local and stateless; no server round trip is involved.
type ViewRouter struct {
	policy *AccessPolicy
}

// NewViewRouter creates the router.
func NewViewRouter(policy *AccessPolicy) *ViewRouter {
	return &ViewRouter{policy: policy}
}

// DefaultPage is where each role lands after a session is established:
// landlords on the management page, tenants on the listings page.
func (v *ViewRouter) DefaultPage(role domain.Role) domain.Page {
	if role == domain.RoleLandlord {
		return domain.PageManage
	}
	return domain.PageListings
}

// Resolve returns the requested page when the role may view it, and the
// role's default page otherwise.
func (v *ViewRouter) Resolve(role domain.Role, requested domain.Page) domain.Page {
	if v.policy.CanViewPage(role, requested) {
		return requested
	}
	return v.DefaultPage(role)
}
