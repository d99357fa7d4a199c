package services

import (
	"context"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/passwords"
	"storefront/internal/repositories"

	"github.com/sirupsen/logrus"
)

// User-facing messages.
const (
	PasswordMismatchMessage = "The two password fields didn't match."
	CannotCreateUserMessage = "Unable to create account."
	InvalidPasswordMessage  = "Invalid password."
	EmailTakenMessage       = "User with this email already exists."
)

// SignupInput is the payload of a self-service registration.
type SignupInput struct {
	Email      string
	Password   string
	RePassword string
}

// ProfileInput updates the caller's profile. Nil fields are left unchanged.
type ProfileInput struct {
	FirstName      *string
	LastName       *string
	BirthDate      *time.Time
	NationalNumber *string
}

// ChangePasswordInput is the payload of a password change.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ReNewPassword   string
}

// UserService handles account operations.
type UserService struct {
	users  repositories.UserRepository
	policy *passwords.Policy
	logger logrus.FieldLogger
}

// NewUserService creates a new UserService.
func NewUserService(users repositories.UserRepository, policy *passwords.Policy, logger logrus.FieldLogger) *UserService {
	return &UserService{users: users, policy: policy, logger: logger}
}

func subjectOf(user *models.User) passwords.Subject {
	return passwords.Subject{Email: user.Email, FirstName: user.FirstName, LastName: user.LastName}
}

// checkNewPassword runs the set-password pipeline: strength first, then the
// confirmation match.
func checkNewPassword(policy *passwords.Policy, user *models.User, newPassword, confirm string) error {
	if user == nil {
		panic("services: password pipeline reached without a user")
	}
	if msgs := policy.Validate(newPassword, subjectOf(user)); len(msgs) > 0 {
		return apperrors.FieldError("new_password", msgs...)
	}
	if newPassword != confirm {
		return apperrors.FieldError(apperrors.NonFieldErrors, PasswordMismatchMessage)
	}
	return nil
}

// Signup registers a new account.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	user := &models.User{Email: models.NormalizeEmail(in.Email), IsActive: true}

	if msgs := s.policy.Validate(in.Password, subjectOf(user)); len(msgs) > 0 {
		return nil, apperrors.FieldError("password", msgs...)
	}
	if in.Password != in.RePassword {
		return nil, apperrors.FieldError(apperrors.NonFieldErrors, PasswordMismatchMessage)
	}

	if existing, err := s.users.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return nil, apperrors.NewConflict(CannotCreateUserMessage)
	} else if err != nil && apperrors.KindOf(err) != apperrors.NotFound {
		return nil, err
	}

	hash, err := passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hash

	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.KindOf(err) == apperrors.Conflict {
			return nil, apperrors.Wrap(apperrors.Conflict, CannotCreateUserMessage, err)
		}
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("user signed up")
	return user, nil
}

// Me loads the caller with its groups.
func (s *UserService) Me(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateMe changes the caller's profile fields.
func (s *UserService) UpdateMe(ctx context.Context, userID uint, in ProfileInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.BirthDate != nil {
		user.BirthDate = in.BirthDate
	}
	if in.NationalNumber != nil {
		user.NationalNumber = *in.NationalNumber
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) authenticated(ctx context.Context, userID uint, currentPassword string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !passwords.Check(user.Password, currentPassword) {
		return nil, apperrors.FieldError("current_password", InvalidPasswordMessage)
	}
	return user, nil
}

// DeleteMe removes the caller's account after checking its password.
func (s *UserService) DeleteMe(ctx context.Context, userID uint, currentPassword string) error {
	user, err := s.authenticated(ctx, userID, currentPassword)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	s.logger.WithField("user_id", user.ID).Info("user deleted own account")
	return nil
}

// ChangePassword checks the current password, then the new one.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, in ChangePasswordInput) error {
	user, err := s.authenticated(ctx, userID, in.CurrentPassword)
	if err != nil {
		return err
	}
	if err := checkNewPassword(s.policy, user, in.NewPassword, in.ReNewPassword); err != nil {
		return err
	}
	hash, err := passwords.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user, hash)
}

// ChangeEmail moves the caller to a new, unused address.
func (s *UserService) ChangeEmail(ctx context.Context, userID uint, currentPassword, newEmail string) error {
	user, err := s.authenticated(ctx, userID, currentPassword)
	if err != nil {
		return err
	}
	email := models.NormalizeEmail(newEmail)
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != user.ID:
		return apperrors.FieldError("new_email", EmailTakenMessage)
	case err != nil && apperrors.KindOf(err) != apperrors.NotFound:
		return err
	}
	user.Email = email
	if err := s.users.Update(ctx, user); err != nil {
		if apperrors.KindOf(err) == apperrors.Conflict {
			return apperrors.FieldError("new_email", EmailTakenMessage)
		}
		return err
	}
	return nil
}

// List returns every user, superusers included.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Retrieve loads a user that an administrator may manage. Superusers are
// not manageable and are reported as missing.
func (s *UserService) Retrieve(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsSuperuser {
		return nil, apperrors.NewNotFound("user", id)
	}
	return user, nil
}

// SetGroups replaces the groups of a manageable user.
func (s *UserService) SetGroups(ctx context.Context, id uint, groupIDs []uint) (*models.User, error) {
	if _, err := s.Retrieve(ctx, id); err != nil {
		return nil, err
	}
	user, err := s.users.SetGroups(ctx, id, groupIDs)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"user_id": id, "groups": groupIDs}).Info("user groups replaced")
	return user, nil
}

// Deactivate disables a manageable user's account.
func (s *UserService) Deactivate(ctx context.Context, id uint) error {
	user, err := s.Retrieve(ctx, id)
	if err != nil {
		return err
	}
	user.IsActive = false
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.logger.WithField("user_id", id).Info("user deactivated")
	return nil
}

// GroupRef identifies a group in a user representation.
type GroupRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name,omitempty"`
}

// ProfileView is the representation of the caller's own account. IsAdmin
// and Groups are only present for staff that are not superusers.
type ProfileView struct {
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	BirthDate      *string    `json:"birth_date"`
	NationalNumber string     `json:"national_number"`
	DateJoined     time.Time  `json:"date_joined"`
	IsAdmin        *bool      `json:"is_admin,omitempty"`
	Groups         []GroupRef `json:"groups,omitempty"`
}

// NewProfileView builds the representation of user.
func NewProfileView(user *models.User) ProfileView {
	view := ProfileView{
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		NationalNumber: user.NationalNumber,
		DateJoined:     user.DateJoined,
	}
	if user.BirthDate != nil {
		date := user.BirthDate.Format(time.DateOnly)
		view.BirthDate = &date
	}
	if user.IsAdmin != user.IsSuperuser {
		admin := true
		view.IsAdmin = &admin
		view.Groups = make([]GroupRef, 0, len(user.Groups))
		for _, g := range user.Groups {
			view.Groups = append(view.Groups, GroupRef{ID: g.ID})
		}
	}
	return view
}

// UserSummary is the admin list representation of a user.
type UserSummary struct {
	ID         uint       `json:"id"`
	Email      string     `json:"email"`
	IsAdmin    bool       `json:"is_admin"`
	IsActive   bool       `json:"is_active"`
	DateJoined time.Time  `json:"date_joined"`
	Groups     []GroupRef `json:"groups"`
}

// NewUserSummary builds the admin representation of user.
func NewUserSummary(user *models.User) UserSummary {
	groups := make([]GroupRef, 0, len(user.Groups))
	for _, g := range user.Groups {
		groups = append(groups, GroupRef{ID: g.ID, Name: g.Name})
	}
	return UserSummary{
		ID:         user.ID,
		Email:      user.Email,
		IsAdmin:    user.IsAdmin,
		IsActive:   user.IsActive,
		DateJoined: user.DateJoined,
		Groups:     groups,
	}
}
