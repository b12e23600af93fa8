package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// accessModel is the role → resource → action model. Policies are a fixed
// table compiled into the binary; the client is not a policy admin surface.
const accessModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// defaultPolicies gate page visibility and mutations per role. The favorites
// page is hidden from landlords; property writes are landlord-only. The
// client-side checks are a UI affordance, not a security boundary; the
// backend enforces ownership on every mutation.
var defaultPolicies = [][]string{
	{string(domain.RoleTenant), "page:" + string(domain.PageListings), "view"},
	{string(domain.RoleTenant), "page:" + string(domain.PageFavorites), "view"},
	{string(domain.RoleLandlord), "page:" + string(domain.PageListings), "view"},
	{string(domain.RoleLandlord), "page:" + string(domain.PageManage), "view"},
	{string(domain.RoleTenant), "favorites", "write"},
	{string(domain.RoleLandlord), "favorites", "write"},
	{string(domain.RoleLandlord), "properties", "write"},
}

// AccessPolicy answers role-gated access questions for pages and mutations.
type AccessPolicy struct {
	enforcer *casbin.Enforcer
}

// NewAccessPolicy builds the enforcer over the embedded model and seeds the
// policy table.
func NewAccessPolicy() (*AccessPolicy, error) {
	m, err := model.NewModelFromString(accessModel)
	if err != nil {
		return nil, fmt.Errorf("parse access model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}
	for _, p := range defaultPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("seed policy %v: %w", p, err)
		}
	}
	return &AccessPolicy{enforcer: enforcer}, nil
}

// CanViewPage reports whether a role may navigate to a page.
func (a *AccessPolicy) CanViewPage(role domain.Role, page domain.Page) bool {
	ok, err := a.enforcer.Enforce(string(role), "page:"+string(page), "view")
	return err == nil && ok
}

// CanWrite reports whether a role may mutate a resource.
func (a *AccessPolicy) CanWrite(role domain.Role, resource string) bool {
	ok, err := a.enforcer.Enforce(string(role), resource, "write")
	return err == nil && ok
}
