package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbite/order-service/domain/shared"
)

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeValidation, http.StatusBadRequest},
		{CodeUnsupportedValue, http.StatusBadRequest},
		{CodeMinimumResources, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeResourceNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeTooManyRequest, http.StatusTooManyRequests},
		{CodeIntegration, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
		{ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "boom").HTTPStatusCode())
		})
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, CodeIntegration, "payment service failed")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "INTEGRATION_ERROR")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFromDomainErrorMapsSentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"not found", shared.NewNotFoundError("Order"), CodeResourceNotFound},
		{"unsupported value", shared.NewUnsupportedValueError("Payment Method"), CodeUnsupportedValue},
		{"minimum resources", shared.NewMinimumResourcesError("Order", "combos"), CodeMinimumResources},
		{"validation", shared.NewValidationError("Combo", "quantity", "must be positive"), CodeValidation},
		{"integration", shared.NewIntegrationError("catalog", stderrors.New("timeout")), CodeIntegration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomainError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestFromDomainErrorUsesDomainMessage(t *testing.T) {
	appErr := FromDomainError(shared.NewUnsupportedValueError("Payment Method"))

	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Message, "Payment Method")
}

func TestFromDomainErrorMasksUnknownErrors(t *testing.T) {
	cause := stderrors.New("dial tcp: i/o timeout on 10.0.0.5")
	appErr := FromDomainError(cause)

	require.NotNil(t, appErr)
	assert.Equal(t, CodeInternal, appErr.Code)
	assert.Equal(t, "internal server error", appErr.Message)
	assert.ErrorIs(t, appErr, cause)
}

func TestFromDomainErrorPassesThroughAppError(t *testing.T) {
	original := TooManyRequests("slow down")
	appErr := FromDomainError(original)

	assert.Same(t, original, appErr)
}

func TestFromDomainErrorNil(t *testing.T) {
	assert.Nil(t, FromDomainError(nil))
}

func TestIs(t *testing.T) {
	err := NotFound("order missing")

	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeConflict))
	assert.False(t, Is(stderrors.New("plain"), CodeNotFound))
}
