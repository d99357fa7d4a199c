package services

import (
	"context"
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/passwords"
	"storefront/internal/repositories"
	"storefront/internal/throttle"
	"storefront/internal/tokens"
	"storefront/pkg/logging"
	mailtpl "storefront/pkg/mailer/templates"

	"github.com/sirupsen/logrus"
)

// ResetConfirmPath is appended to the frontend URL to build the link of
// the reset email.
const ResetConfirmPath = "#/password-reset/{uid}/{token}"

// ConfirmResetInput is the payload of a reset confirmation.
type ConfirmResetInput struct {
	UID           string
	Token         string
	NewPassword   string
	ReNewPassword string
}

// PasswordResetDeps are the collaborators of PasswordResetService.
type PasswordResetDeps struct {
	Users       repositories.UserRepository
	Tokens      *tokens.ResetTokenGenerator
	Policy      *passwords.Policy
	Cooldown    throttle.Cooldown
	Notifier    notify.Notifier
	Metrics     *metrics.Metrics
	FrontendURL string
	SiteName    string
	Logger      logrus.FieldLogger
}

// PasswordResetService implements the forgotten-password flow.
type PasswordResetService struct {
	PasswordResetDeps
}

// NewPasswordResetService creates a new PasswordResetService. A nil
// Cooldown disables throttling.
func NewPasswordResetService(deps PasswordResetDeps) *PasswordResetService {
	if deps.Cooldown == nil {
		deps.Cooldown = throttle.Disabled{}
	}
	return &PasswordResetService{PasswordResetDeps: deps}
}

// ResetURL builds the link the user follows to choose a new password.
func ResetURL(frontendURL, uid, token string) string {
	return frontendURL + strings.NewReplacer("{uid}", uid, "{token}", token).Replace(ResetConfirmPath)
}

// RequestReset emails a reset link to the active account registered with
// email. Whether such an account exists is never revealed: unknown
// addresses, unusable passwords, throttled requests and delivery failures
// all return nil. Only a storage failure is returned.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	email = models.NormalizeEmail(email)
	log := s.Logger.WithField("email", email)

	user, err := s.Users.GetActiveByEmail(ctx, email)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.NotFound {
			log.Debug("password reset requested for unknown email")
			s.Metrics.ResetRequested("unknown")
			return nil
		}
		return err
	}
	if !user.HasUsablePassword() {
		log.Debug("password reset requested for account without usable password")
		s.Metrics.ResetRequested("unusable")
		return nil
	}

	allowed, err := s.Cooldown.Allow(ctx, user.Email)
	if err != nil {
		// fail open
		logging.LogError(log, "reset cooldown unavailable", err, nil)
	} else if !allowed {
		log.Info("password reset throttled")
		s.Metrics.ResetRequested("throttled")
		return nil
	}
	holdsSlot := err == nil

	token, err := s.Tokens.Issue(user)
	if err != nil {
		logging.LogError(log, "failed to issue reset token", err, nil)
		s.resetFailed(ctx, log, user.Email, holdsSlot)
		return nil
	}
	uid := tokens.EncodeUID(user.ID)

	data := map[string]any{
		"uid":       uid,
		"token":     token,
		"url":       ResetURL(s.FrontendURL, uid, token),
		"name":      user.FullName(),
		"site_name": s.SiteName,
	}
	if err := s.Notifier.Send(ctx, mailtpl.PasswordReset, user.Email, data); err != nil {
		logging.LogError(log, "failed to send password reset email", err, nil)
		s.resetFailed(ctx, log, user.Email, holdsSlot)
		return nil
	}

	s.Metrics.ResetRequested("sent")
	log.WithField("user_id", user.ID).Info("password reset email sent")
	return nil
}

// resetFailed records a request that sent nothing and frees its cooldown
// slot so the user can retry right away.
func (s *PasswordResetService) resetFailed(ctx context.Context, log logrus.FieldLogger, email string, holdsSlot bool) {
	s.Metrics.ResetRequested("failed")
	if !holdsSlot {
		return
	}
	if err := s.Cooldown.Release(ctx, email); err != nil {
		logging.LogError(log, "failed to release reset cooldown", err, nil)
	}
}

// ConfirmReset sets a new password for the user identified by uid once the
// token checks out. The checks run in a fixed order and the first failure
// is returned: uid, token, password strength, confirmation match.
func (s *PasswordResetService) ConfirmReset(ctx context.Context, in ConfirmResetInput) error {
	user, err := s.resolve(ctx, in.UID)
	if err != nil {
		return s.confirmFailed(err)
	}

	if !s.Tokens.Verify(user, in.Token) {
		return s.confirmFailed(apperrors.NewInvalidToken())
	}

	if err := checkNewPassword(s.Policy, user, in.NewPassword, in.ReNewPassword); err != nil {
		return s.confirmFailed(err)
	}

	hash, err := passwords.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, user, hash); err != nil {
		return err
	}

	s.Metrics.ResetConfirmed("success")
	s.Logger.WithField("user_id", user.ID).Info("password reset confirmed")
	return nil
}

func (s *PasswordResetService) resolve(ctx context.Context, uid string) (*models.User, error) {
	id, err := tokens.DecodeUID(uid)
	if err != nil {
		return nil, apperrors.NewInvalidUID()
	}
	user, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.NotFound {
			return nil, apperrors.NewInvalidUID()
		}
		return nil, err
	}
	return user, nil
}

func (s *PasswordResetService) confirmFailed(err error) error {
	s.Metrics.ResetConfirmed(apperrors.KindOf(err).String())
	return err
}
