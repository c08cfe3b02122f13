package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneMatchesSentinel(t *testing.T) {
	err := Clone(ErrNotFound, "lesson not found")

	assert.Equal(t, "lesson not found", err.Error())
	assert.Equal(t, ErrNotFound.Code, err.Code)
	assert.Equal(t, ErrNotFound.Status, err.Status)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, errors.Is(err, ErrConflict))
}

func TestCloneEmptyMessageKeepsOriginal(t *testing.T) {
	err := Clone(ErrValidation, "")
	assert.Equal(t, ErrValidation.Message, err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("row scan failed")
	err := Wrap(cause, "LESSON_LOOKUP_FAILED", 500, "failed to load lesson")

	assert.ErrorIs(t, err, cause)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "failed to load lesson: row scan failed", err.Error())
}

func TestFromErrorNormalises(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Clone(ErrNotFound, "slot not found"))
	e := FromError(wrapped)
	require.NotNil(t, e)
	assert.Equal(t, ErrNotFound.Code, e.Code)
	assert.Equal(t, "slot not found", e.Message)

	plain := FromError(fmt.Errorf("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, ErrInternal.Code, plain.Code)
}
