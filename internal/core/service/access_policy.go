package service

import "github.com/apdc/auth-api/internal/core/domain"

// AccessPolicy decides endpoint access from the role ordering alone.
type AccessPolicy struct{}

// Authorize allows iff a principal is present and its role level is at
// least the required level. An absent principal is always denied; the
// boundary renders every denial as 403.
func (AccessPolicy) Authorize(p *domain.Principal, required domain.Role) bool {
	if p == nil {
		return false
	}
	return p.Role.AtLeast(required)
}
