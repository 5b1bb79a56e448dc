// Package permissions loads the embedded route to role table used by the RBAC middleware.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"hotel/shared/constant"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var knownRoles = []string{
	constant.RoleSuperAdmin,
	constant.RoleAdmin,
	constant.RoleStaff,
	constant.RoleUser,
}

// Permission lists the roles allowed on one method and route pattern.
// Skip marks the route public.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the route.
func (p Permission) Allows(role string) bool {
	return p.Skip || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	// Skip disables RBAC for every route.
	Skip bool `json:"skip"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// FindPermissions returns the entry for the route pattern, or a zero
// Permission that allows nobody.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index == nil {
		idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
			return rp.Path == path && strings.EqualFold(rp.Method, method)
		})
		if idx == -1 {
			return Permission{}
		}

		return r.Endpoints[idx]
	}

	return r.index[routeKey(method, path)]
}

// Validate rejects duplicate routes, unknown roles and private routes with no roles.
func (r *PermissionData) Validate() error {
	seen := make(map[string]struct{}, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		key := routeKey(endpoint.Method, endpoint.Path)
		if endpoint.Method == "" || endpoint.Path == "" {
			return errors.Errorf("permission entry %q is missing method or path", key)
		}

		if _, ok := seen[key]; ok {
			return errors.Errorf("duplicate permission entry %q", key)
		}

		seen[key] = struct{}{}

		if !endpoint.Skip && len(endpoint.Permissions) == 0 {
			return errors.Errorf("permission entry %q grants no role", key)
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				return errors.Errorf("permission entry %q names unknown role %q", key, role)
			}
		}
	}

	return nil
}

func (r *PermissionData) buildIndex() {
	r.index = make(map[string]Permission, len(r.Endpoints))
	for _, endpoint := range r.Endpoints {
		r.index[routeKey(endpoint.Method, endpoint.Path)] = endpoint
	}
}

// Parse decodes and validates a permission table.
func Parse(raw []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(raw, &permissions); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	if err := permissions.Validate(); err != nil {
		return nil, err
	}

	permissions.buildIndex()

	return &permissions, nil
}

// Get loads the embedded table. An invalid table stops the process.
func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded permissions")
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
