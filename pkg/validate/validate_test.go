package validate

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	UserID int     `json:"user_id" validate:"required,gt=0"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	System string  `json:"payment_system" validate:"required,oneof=robokassa pally"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectBody  bool
		expectRules map[string]string
	}{
		{
			name: "Valid request",
			body: `{"user_id":7,"amount":500,"payment_system":"pally"}`,
		},
		{
			name:       "Malformed JSON",
			body:       `{"user_id":`,
			expectBody: true,
		},
		{
			name: "Rules violated",
			body: `{"user_id":-1,"payment_system":"paypal"}`,
			expectRules: map[string]string{
				"user_id":        "failed on 'gt' rule",
				"amount":         "failed on 'required' rule",
				"payment_system": "failed on 'oneof' rule",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var req request
			err := DecodeJSON(r, &req)

			switch {
			case tt.expectBody:
				assert.True(t, errors.Is(err, ErrInvalidBody))
				assert.Nil(t, Details(err))
			case tt.expectRules != nil:
				require.Error(t, err)
				var verrs validator.ValidationErrors
				assert.True(t, errors.As(err, &verrs))
				assert.Equal(t, tt.expectRules, Details(err))
			default:
				assert.NoError(t, err)
				assert.Equal(t, request{UserID: 7, Amount: 500, System: "pally"}, req)
			}
		})
	}
}
