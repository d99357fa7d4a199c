package policy_test

import (
	"testing"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/policy"

	"github.com/stretchr/testify/assert"
)

var (
	anonymous = policy.Anonymous()
	customer  = policy.Actor{UserID: 10, Authenticated: true}
	manager   = policy.Actor{UserID: 11, Authenticated: true, Groups: []string{models.ProductManagementGroup}}
	root      = policy.Actor{UserID: 1, Authenticated: true, IsSuperuser: true}
)

func TestPredicates(t *testing.T) {
	assert.True(t, policy.AnonymousOnly.Allow(anonymous, nil))
	assert.False(t, policy.AnonymousOnly.Allow(customer, nil))

	assert.False(t, policy.AuthenticatedOnly.Allow(anonymous, nil))
	assert.True(t, policy.AuthenticatedOnly.Allow(customer, nil))

	assert.False(t, policy.SuperuserOnly.Allow(customer, nil))
	assert.True(t, policy.SuperuserOnly.Allow(root, nil))

	inGroup := policy.GroupMember(models.ProductManagementGroup)
	assert.True(t, inGroup.Allow(manager, nil))
	assert.False(t, inGroup.Allow(customer, nil))

	assert.True(t, policy.SelfOrSuperuser.Allow(customer, policy.Owned(10)))
	assert.False(t, policy.SelfOrSuperuser.Allow(customer, policy.Owned(11)))
	assert.False(t, policy.SelfOrSuperuser.Allow(customer, nil))
	assert.True(t, policy.SelfOrSuperuser.Allow(root, policy.Owned(11)))
	assert.False(t, policy.SelfOrSuperuser.Allow(anonymous, policy.Owned(0)))
}

func TestPredicatesAreORCombined(t *testing.T) {
	p := policy.New().Register([]policy.Predicate{policy.SuperuserOnly, policy.GroupMember("Support")}, "ticket.close")

	assert.True(t, p.Allowed("ticket.close", root, nil))
	assert.True(t, p.Allowed("ticket.close", policy.Actor{Authenticated: true, Groups: []string{"Support"}}, nil))
	assert.False(t, p.Allowed("ticket.close", customer, nil))
}

func TestUnknownActionIsDenied(t *testing.T) {
	p := policy.Default()
	assert.False(t, p.Allowed("order.refund", root, nil))
}

func TestAuthorizeDistinguishesUnauthorizedFromForbidden(t *testing.T) {
	p := policy.Default()

	err := p.Authorize(policy.ProductCreate, anonymous, nil)
	assert.Equal(t, apperrors.Unauthorized, apperrors.KindOf(err))

	err = p.Authorize(policy.ProductCreate, customer, nil)
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(err))

	assert.NoError(t, p.Authorize(policy.ProductCreate, manager, nil))
}

func TestDefaultTable(t *testing.T) {
	p := policy.Default()

	assert.True(t, p.Allowed(policy.UserCreate, anonymous, nil))
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(p.Authorize(policy.UserCreate, customer, nil)))

	assert.True(t, p.Allowed(policy.UserResetPassword, anonymous, nil))
	assert.True(t, p.Allowed(policy.UserResetPassword, customer, nil))

	assert.False(t, p.Allowed(policy.GroupCreate, manager, nil))
	assert.True(t, p.Allowed(policy.GroupCreate, root, nil))

	assert.True(t, p.Allowed(policy.ProductList, anonymous, nil))
	assert.True(t, p.Allowed(policy.AddressUpdate, customer, policy.Owned(10)))
	assert.False(t, p.Allowed(policy.AddressUpdate, customer, policy.Owned(99)))
	assert.True(t, p.Allowed(policy.CommentDestroy, root, policy.Owned(99)))
}
