package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NewNotFoundError("Order"), ErrNotFound},
		{"unsupported value", NewUnsupportedValueError("Payment Method"), ErrUnsupportedValue},
		{"minimum resources", NewMinimumResourcesError("Combos", "combos"), ErrMinimumResources},
		{"validation", NewValidationError("Order", "quantity", "quantity must be positive"), ErrInvalidInput},
		{"integration", NewIntegrationError("catalog service", errors.New("boom")), ErrIntegration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestIntegrationErrorPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewIntegrationError("catalog service", cause)

	assert.ErrorIs(t, err, ErrIntegration)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "catalog service")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMinimumResourcesErrorNamesFields(t *testing.T) {
	err := NewMinimumResourcesError("User", "userId", "visitorName")

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "User", domainErr.Entity)
	assert.Equal(t, []string{"userId", "visitorName"}, domainErr.Fields)
	assert.Contains(t, domainErr.Message, "userId, visitorName")
}

func TestDomainErrorCapturesStack(t *testing.T) {
	err := NewNotFoundError("Order")

	var stacker Stacker
	require.ErrorAs(t, err, &stacker)
	stack := stacker.Stack()
	require.NotEmpty(t, stack)
	assert.Contains(t, stack[0], "errors_test.go")
}

func TestFormatStackNilSafe(t *testing.T) {
	assert.Nil(t, FormatStack(nil))
}
