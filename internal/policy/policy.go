// Package policy decides which actor may perform which API action.
//
// Every action maps to an ordered list of predicates. The list is
// OR-combined: the first predicate that allows the actor wins. An action
// with no registered predicates is denied.
package policy

import (
	"storefront/internal/apperrors"
)

// Actor is the identity resolved for a request.
type Actor struct {
	UserID        uint
	Email         string
	Authenticated bool
	IsSuperuser   bool
	Groups        []string
}

// Anonymous returns the actor of an unauthenticated request.
func Anonymous() Actor {
	return Actor{}
}

// InGroup reports whether the actor belongs to the named group.
func (a Actor) InGroup(name string) bool {
	for _, g := range a.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// Resource describes the object an action targets. Only ownership matters here.
type Resource struct {
	OwnerID uint
}

// Owned returns a Resource owned by the given user.
func Owned(ownerID uint) *Resource {
	return &Resource{OwnerID: ownerID}
}

// Predicate is a named authorization rule.
type Predicate struct {
	Name  string
	Allow func(actor Actor, resource *Resource) bool
}

var (
	// AllowAny admits every caller.
	AllowAny = Predicate{Name: "AllowAny", Allow: func(Actor, *Resource) bool { return true }}

	// AnonymousOnly admits unauthenticated callers only.
	AnonymousOnly = Predicate{Name: "AnonymousOnly", Allow: func(a Actor, _ *Resource) bool {
		return !a.Authenticated
	}}

	// AuthenticatedOnly admits any authenticated caller.
	AuthenticatedOnly = Predicate{Name: "AuthenticatedOnly", Allow: func(a Actor, _ *Resource) bool {
		return a.Authenticated
	}}

	// SuperuserOnly admits superusers.
	SuperuserOnly = Predicate{Name: "SuperuserOnly", Allow: func(a Actor, _ *Resource) bool {
		return a.Authenticated && a.IsSuperuser
	}}

	// SelfOrSuperuser admits the owner of the resource and superusers.
	SelfOrSuperuser = Predicate{Name: "SelfOrSuperuser", Allow: func(a Actor, r *Resource) bool {
		if !a.Authenticated {
			return false
		}
		if a.IsSuperuser {
			return true
		}
		return r != nil && r.OwnerID == a.UserID
	}}
)

// GroupMember admits members of the named group.
func GroupMember(group string) Predicate {
	return Predicate{Name: "GroupMember(" + group + ")", Allow: func(a Actor, _ *Resource) bool {
		return a.Authenticated && a.InGroup(group)
	}}
}

// Policy is the action -> predicates table.
type Policy struct {
	rules map[string][]Predicate
}

// New returns an empty policy.
func New() *Policy {
	return &Policy{rules: make(map[string][]Predicate)}
}

// Register sets the predicates of one or more actions.
func (p *Policy) Register(predicates []Predicate, actions ...string) *Policy {
	for _, action := range actions {
		p.rules[action] = predicates
	}
	return p
}

// Allowed evaluates the predicates of action in order.
func (p *Policy) Allowed(action string, actor Actor, resource *Resource) bool {
	for _, pred := range p.rules[action] {
		if pred.Allow(actor, resource) {
			return true
		}
	}
	return false
}

// Authorize returns nil when the action is allowed, an Unauthorized error
// when the actor is anonymous and a Forbidden error otherwise.
func (p *Policy) Authorize(action string, actor Actor, resource *Resource) error {
	if p.Allowed(action, actor, resource) {
		return nil
	}
	if !actor.Authenticated {
		return apperrors.NewUnauthorized("")
	}
	return apperrors.NewForbidden()
}
