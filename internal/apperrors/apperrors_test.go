package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"storefront/internal/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperrors.Internal, apperrors.KindOf(errors.New("boom")))
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(apperrors.NewConflict("busy")))

	wrapped := fmt.Errorf("delete category: %w", apperrors.NewNotFound("category", 7))
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(wrapped))
}

func TestErrorsIsMatchesSentinelByKind(t *testing.T) {
	err := fmt.Errorf("confirm: %w", apperrors.NewInvalidUID())

	assert.True(t, errors.Is(err, apperrors.ErrInvalidUID))
	assert.False(t, errors.Is(err, apperrors.ErrInvalidToken))
}

func TestFieldErrors(t *testing.T) {
	err := apperrors.FieldError("new_password", "too short", "too common")

	assert.Equal(t, apperrors.Validation, err.Kind)
	assert.Equal(t, []string{"too short", "too common"}, err.Fields["new_password"])
	assert.Contains(t, apperrors.NewInvalidToken().Fields, "token")
	assert.Contains(t, apperrors.NewInvalidUID().Fields, "uid")
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := apperrors.Wrap(apperrors.Internal, "failed to save", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save: disk full", err.Error())
}
