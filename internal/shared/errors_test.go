package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	err := NotFound("Project not found")
	require.EqualError(t, err, "Project not found")
	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrForbidden)

	err = Forbidden("Authentication required")
	require.EqualError(t, err, "Authentication required")
	require.ErrorIs(t, err, ErrForbidden)
	require.NotErrorIs(t, err, ErrNotFound)

	err = Duplicate("already there")
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestErrorStatus(t *testing.T) {
	var domainErr *Error

	require.True(t, errors.As(NotFound("x"), &domainErr))
	require.Equal(t, http.StatusNotFound, domainErr.Status())

	require.True(t, errors.As(Forbidden("x"), &domainErr))
	require.Equal(t, http.StatusForbidden, domainErr.Status())

	require.True(t, errors.As(Duplicate("x"), &domainErr))
	require.Equal(t, http.StatusConflict, domainErr.Status())
}

func TestErrorMatchesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("add member: %w", Forbidden("Only project owner can add members"))
	require.ErrorIs(t, err, ErrForbidden)
}

func TestStorageErrorsStayOpaque(t *testing.T) {
	storage := errors.New("connection reset")
	require.NotErrorIs(t, storage, ErrNotFound)
	require.NotErrorIs(t, storage, ErrForbidden)
}
