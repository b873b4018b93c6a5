package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mds-registry-api/internal/application/services"
	"mds-registry-api/internal/domain/account"
	"mds-registry-api/internal/interface/api/rest/dto/auth"
)

func TestAuthController_LoginHandler(t *testing.T) {
	type want struct {
		code        int
		jsonEq      map[string]any
		jsonHasKeys []string
	}

	tests := []struct {
		name  string
		body  any
		login func(ctx context.Context, username, password string) (string, *account.Account, error)
		want  want
	}{
		{
			name: "invalid JSON",
			body: "{bad json",
			want: want{
				code:   http.StatusBadRequest,
				jsonEq: map[string]any{"error": "invalid json"},
			},
		},
		{
			name: "missing fields",
			body: auth.LoginRequest{Username: "  ", Password: ""},
			want: want{
				code:        http.StatusBadRequest,
				jsonEq:      map[string]any{"error": "Username and password are required"},
				jsonHasKeys: []string{"details"},
			},
		},
		{
			name: "invalid credentials -> 401",
			body: auth.LoginRequest{Username: "admin", Password: "wrong"},
			login: func(ctx context.Context, username, password string) (string, *account.Account, error) {
				return "", nil, services.ErrInvalidCredentials
			},
			want: want{
				code:   http.StatusUnauthorized,
				jsonEq: map[string]any{"error": "Invalid credentials"},
			},
		},
		{
			name: "token failure -> 500",
			body: auth.LoginRequest{Username: "admin", Password: "admin123"},
			login: func(ctx context.Context, username, password string) (string, *account.Account, error) {
				return "", nil, services.ErrFailedToGenerateToken
			},
			want: want{
				code:   http.StatusInternalServerError,
				jsonEq: map[string]any{"error": "failed to log in"},
			},
		},
		{
			name: "success",
			body: auth.LoginRequest{Username: "admin", Password: "admin123"},
			login: func(ctx context.Context, username, password string) (string, *account.Account, error) {
				if username != "admin" || password != "admin123" {
					return "", nil, errors.New("unexpected credentials")
				}
				return "tok_123", &account.Account{ID: "acc_1", Username: "admin", Role: account.RoleAdmin}, nil
			},
			want: want{
				code: http.StatusOK,
				jsonEq: map[string]any{
					"message": "Login successful",
					"token":   "tok_123",
					"user":    map[string]any{"id": "acc_1", "username": "admin", "role": "admin"},
				},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestEngine(t)
			NewAuthController(r, zap.NewNop(), &FakeAuthService{LoginFunc: tt.login})

			rr := doReq(t, r, http.MethodPost, RouteLogin, tt.body, nil)
			require.Equal(t, tt.want.code, rr.Code)

			resp := decode(t, rr)
			for k, v := range tt.want.jsonEq {
				assert.Equal(t, v, resp[k], "field %q mismatch", k)
			}
			for _, k := range tt.want.jsonHasKeys {
				assert.Contains(t, resp, k, "expected key %q", k)
			}
			assert.NotContains(t, resp, "password")
		})
	}
}
