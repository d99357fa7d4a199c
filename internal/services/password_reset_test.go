package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/metrics"
	"storefront/internal/passwords"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/throttle"
	"storefront/internal/tokens"
	"storefront/pkg/logging"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const frontendURL = "http://localhost:3000/"

type resetFixture struct {
	db       *gorm.DB
	users    *repositories.GORMUserRepository
	tokens   *tokens.ResetTokenGenerator
	notifier *MockNotifier
	service  *services.PasswordResetService
}

func newResetFixture(t *testing.T, cooldown throttle.Cooldown) *resetFixture {
	t.Helper()
	db := newDB(t)
	f := &resetFixture{
		db:       db,
		users:    repositories.NewGORMUserRepository(db),
		tokens:   tokens.NewResetTokenGenerator("server-secret", time.Hour),
		notifier: new(MockNotifier),
	}
	f.service = services.NewPasswordResetService(services.PasswordResetDeps{
		Users:       f.users,
		Tokens:      f.tokens,
		Policy:      passwords.DefaultPolicy(),
		Cooldown:    cooldown,
		Notifier:    f.notifier,
		Metrics:     metrics.New("test"),
		FrontendURL: frontendURL,
		SiteName:    "Shop",
		Logger:      logging.Discard(),
	})
	return f
}

func TestRequestReset_SameResultForKnownAndUnknownEmail(t *testing.T) {
	f := newResetFixture(t, nil)
	user := createUser(t, f.db, "jane@example.com", strongPassword)
	uid := tokens.EncodeUID(user.ID)

	f.notifier.On("Send", mock.Anything, "password_reset", "jane@example.com", mock.MatchedBy(func(data map[string]any) bool {
		url, _ := data["url"].(string)
		return data["uid"] == uid && strings.HasPrefix(url, frontendURL+"#/password-reset/"+uid+"/")
	})).Return(nil).Once()

	known := f.service.RequestReset(context.Background(), "jane@example.com")
	unknown := f.service.RequestReset(context.Background(), "nobody@example.com")

	assert.NoError(t, known)
	assert.NoError(t, unknown)
	assert.Equal(t, known, unknown)
	f.notifier.AssertExpectations(t)
}

func TestRequestReset_SkipsInactiveAndUnusableAccounts(t *testing.T) {
	f := newResetFixture(t, nil)
	createUser(t, f.db, "nopass@example.com", "")
	inactive := createUser(t, f.db, "gone@example.com", strongPassword)
	inactive.IsActive = false
	require.NoError(t, f.users.Update(context.Background(), inactive))

	assert.NoError(t, f.service.RequestReset(context.Background(), "nopass@example.com"))
	assert.NoError(t, f.service.RequestReset(context.Background(), "gone@example.com"))
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestReset_NotifierFailureIsSilent(t *testing.T) {
	f := newResetFixture(t, nil)
	createUser(t, f.db, "jane@example.com", strongPassword)
	f.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	assert.NoError(t, f.service.RequestReset(context.Background(), "jane@example.com"))
	f.notifier.AssertExpectations(t)
}

func TestRequestReset_Cooldown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := newResetFixture(t, throttle.NewRedisCooldown(client, throttle.ResetCooldownPrefix, time.Minute))
	createUser(t, f.db, "jane@example.com", strongPassword)
	f.notifier.On("Send", mock.Anything, mock.Anything, "jane@example.com", mock.Anything).Return(nil).Once()

	require.NoError(t, f.service.RequestReset(context.Background(), "jane@example.com"))
	require.NoError(t, f.service.RequestReset(context.Background(), "jane@example.com"))
	f.notifier.AssertNumberOfCalls(t, "Send", 1)
}

func TestRequestReset_FailedSendFreesCooldown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := newResetFixture(t, throttle.NewRedisCooldown(client, throttle.ResetCooldownPrefix, time.Minute))
	createUser(t, f.db, "jane@example.com", strongPassword)
	f.notifier.On("Send", mock.Anything, mock.Anything, "jane@example.com", mock.Anything).Return(errors.New("broker down")).Once()
	f.notifier.On("Send", mock.Anything, mock.Anything, "jane@example.com", mock.Anything).Return(nil).Once()

	require.NoError(t, f.service.RequestReset(context.Background(), "jane@example.com"))
	assert.False(t, mr.Exists(throttle.ResetCooldownPrefix+"jane@example.com"))

	require.NoError(t, f.service.RequestReset(context.Background(), "jane@example.com"))
	assert.True(t, mr.Exists(throttle.ResetCooldownPrefix+"jane@example.com"))
	f.notifier.AssertNumberOfCalls(t, "Send", 2)
}

func TestConfirmReset_SetsPasswordAndInvalidatesToken(t *testing.T) {
	f := newResetFixture(t, nil)
	ctx := context.Background()
	user := createUser(t, f.db, "jane@example.com", strongPassword)
	token, err := f.tokens.Issue(user)
	require.NoError(t, err)
	require.True(t, f.tokens.Verify(user, token))

	newPassword := "An0ther-solid-pass"
	err = f.service.ConfirmReset(ctx, services.ConfirmResetInput{
		UID: tokens.EncodeUID(user.ID), Token: token, NewPassword: newPassword, ReNewPassword: newPassword,
	})
	require.NoError(t, err)

	reloaded, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, passwords.Check(reloaded.Password, newPassword))
	assert.False(t, f.tokens.Verify(reloaded, token))

	err = f.service.ConfirmReset(ctx, services.ConfirmResetInput{
		UID: tokens.EncodeUID(user.ID), Token: token, NewPassword: "Yet-an0ther-pass", ReNewPassword: "Yet-an0ther-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestConfirmReset_UnknownUIDIsInvalidUID(t *testing.T) {
	f := newResetFixture(t, nil)
	ctx := context.Background()

	err := f.service.ConfirmReset(ctx, services.ConfirmResetInput{
		UID: tokens.EncodeUID(999), Token: "whatever", NewPassword: strongPassword, ReNewPassword: strongPassword,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUID)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidToken)

	err = f.service.ConfirmReset(ctx, services.ConfirmResetInput{
		UID: "%%%", Token: "whatever", NewPassword: strongPassword, ReNewPassword: strongPassword,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUID)
}

func TestConfirmReset_CheckOrder(t *testing.T) {
	f := newResetFixture(t, nil)
	ctx := context.Background()
	user := createUser(t, f.db, "jane@example.com", strongPassword)
	uid := tokens.EncodeUID(user.ID)
	token, err := f.tokens.Issue(user)
	require.NoError(t, err)

	// a bad token is reported before a weak password
	err = f.service.ConfirmReset(ctx, services.ConfirmResetInput{UID: uid, Token: "bad", NewPassword: "123", ReNewPassword: "456"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// strength is checked before the confirmation
	err = f.service.ConfirmReset(ctx, services.ConfirmResetInput{UID: uid, Token: token, NewPassword: "123", ReNewPassword: "456"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields["new_password"], "This password is entirely numeric.")

	err = f.service.ConfirmReset(ctx, services.ConfirmResetInput{UID: uid, Token: token, NewPassword: strongPassword + "x", ReNewPassword: strongPassword + "y"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{services.PasswordMismatchMessage}, appErr.Fields[apperrors.NonFieldErrors])

	// nothing above changed the password
	assert.True(t, f.tokens.Verify(user, token))
}

func TestResetURL(t *testing.T) {
	assert.Equal(t, "http://shop/#/password-reset/MQ/abc", services.ResetURL("http://shop/", "MQ", "abc"))
}
