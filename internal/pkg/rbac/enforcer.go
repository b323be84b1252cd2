package rbac

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/furniflow/erp-backend-go/internal/domain/user"
)

// modelText grants a role access to a whole module.
const modelText = `[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj
`

// Enforcer answers "may role X open module Y" from the stored roles.
type Enforcer interface {
	// LoadRoles replaces the policy with the permissions of roles.
	LoadRoles(roles []user.Role) error
	Allowed(role string, module user.Module) (bool, error)
}

type casbinEnforcer struct {
	mu       sync.RWMutex
	enforcer *casbin.Enforcer
}

func NewEnforcer(roles []user.Role) (Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}

	ce := &casbinEnforcer{enforcer: e}
	if err := ce.LoadRoles(roles); err != nil {
		return nil, err
	}
	return ce, nil
}

func (c *casbinEnforcer) LoadRoles(roles []user.Role) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.enforcer.ClearPolicy()

	var rules [][]string
	for _, r := range roles {
		for _, m := range r.Permissions {
			rules = append(rules, []string{r.Name, string(m)})
		}
	}
	if len(rules) > 0 {
		if _, err := c.enforcer.AddPolicies(rules); err != nil {
			return fmt.Errorf("rbac load policy: %w", err)
		}
	}

	slog.Debug("rbac policy loaded", "roles", len(roles), "rules", len(rules))
	return nil
}

func (c *casbinEnforcer) Allowed(role string, module user.Module) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.enforcer.Enforce(role, string(module))
}
