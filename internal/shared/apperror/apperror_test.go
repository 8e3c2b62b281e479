package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mulnori/internal/shared/apperror"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(apperror.Validation("bad input")))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(apperror.NotFound("missing")))
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(apperror.Conflict("duplicate")))
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(apperror.Storage("db down", errors.New("conn refused"))))

	// Plain errors have no kind.
	assert.Equal(t, apperror.Kind(""), apperror.KindOf(errors.New("plain")))
	assert.Equal(t, apperror.Kind(""), apperror.KindOf(nil))
}

func TestWrappedErrorsKeepTheirKind(t *testing.T) {
	inner := apperror.Conflict("tag already exists on this site")
	wrapped := fmt.Errorf("request failed: %w", inner)

	assert.True(t, apperror.IsConflict(wrapped))
	assert.False(t, apperror.IsNotFound(wrapped))
}

func TestStorageUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperror.Storage("failed to load site", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to load site")
}

func TestValidationf(t *testing.T) {
	err := apperror.Validationf("tag name must be at most %d characters", 50)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, "tag name must be at most 50 characters", err.Error())
}
