package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proeventos/internal/delivery/http/helpers"
	"proeventos/internal/delivery/http/middleware"
	"proeventos/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeAccountService implements domain.AccountService for controller tests.
type fakeAccountService struct {
	registerUser *domain.User
	registerErr  error
	loginUser    *domain.User
	loginErr     error
	getUser      *domain.User
	getErr       error
	updateUser   *domain.User
	updateErr    error
	imageUser    *domain.User
	imageErr     error
	lastUpdateID string
}

func (f *fakeAccountService) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, string, error) {
	if f.registerErr != nil {
		return nil, "", f.registerErr
	}
	return f.registerUser, "token-1", nil
}

func (f *fakeAccountService) Login(ctx context.Context, userName, password string) (*domain.User, string, error) {
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.loginUser, "token-1", nil
}

func (f *fakeAccountService) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getUser, nil
}

func (f *fakeAccountService) Update(ctx context.Context, userID string, input domain.UpdateAccountInput) (*domain.User, string, error) {
	f.lastUpdateID = userID
	if f.updateErr != nil {
		return nil, "", f.updateErr
	}
	return f.updateUser, "token-2", nil
}

func (f *fakeAccountService) SetProfileImage(ctx context.Context, userID, fileName string, size int64, contents io.Reader) (*domain.User, error) {
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	return f.imageUser, nil
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) (json.RawMessage, *helpers.APIError) {
	t.Helper()
	var resp struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	return resp.Data, resp.Error
}

func TestAccountController_Register(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		svc         *fakeAccountService
		wantStatus  int
		wantMessage string
	}{
		{
			name: "success returns session triple",
			body: `{"userName":"alice","email":"alice@example.com","password":"secret1","primeiroNome":"Alice"}`,
			svc: &fakeAccountService{
				registerUser: &domain.User{ID: "u1", UserName: "alice", FirstName: "Alice"},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "duplicate username",
			body:        `{"userName":"alice","email":"alice@example.com","password":"secret1"}`,
			svc:         &fakeAccountService{registerErr: domain.ErrDuplicateUserName},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Usuário já existe",
		},
		{
			name:       "missing password is rejected before the service",
			body:       `{"userName":"alice","email":"alice@example.com"}`,
			svc:        &fakeAccountService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed email",
			body:       `{"userName":"alice","email":"not-an-email","password":"secret1"}`,
			svc:        &fakeAccountService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "internal error",
			body:       `{"userName":"alice","email":"alice@example.com","password":"secret1"}`,
			svc:        &fakeAccountService{registerErr: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAccountController(testLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/api/Account/Register", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			ctrl.Register(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			data, apiErr := decodeEnvelope(t, rec.Body)
			if tt.wantStatus == http.StatusOK {
				var auth AuthResponse
				require.NoError(t, json.Unmarshal(data, &auth))
				assert.Equal(t, "alice", auth.UserName)
				assert.Equal(t, "token-1", auth.Token)
				// the first-name key is intentionally misspelled in the contract
				assert.Contains(t, string(data), `"PrimeroNome"`)
			} else {
				require.NotNil(t, apiErr)
				if tt.wantMessage != "" {
					assert.Equal(t, tt.wantMessage, apiErr.Message)
				}
			}
		})
	}
}

func TestAccountController_Login(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		svc         *fakeAccountService
		wantStatus  int
		wantMessage string
		wantToken   bool
	}{
		{
			name:       "success",
			body:       `{"userName":"alice","password":"secret1"}`,
			svc:        &fakeAccountService{loginUser: &domain.User{ID: "u1", UserName: "alice"}},
			wantStatus: http.StatusOK,
			wantToken:  true,
		},
		{
			name:        "unknown username carries a message",
			body:        `{"userName":"ghost","password":"secret1"}`,
			svc:         &fakeAccountService{loginErr: domain.ErrUserNotFound},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Usuário inválido",
		},
		{
			name:       "wrong password has an empty message",
			body:       `{"userName":"alice","password":"wrong"}`,
			svc:        &fakeAccountService{loginErr: domain.ErrInvalidCredentials},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAccountController(testLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/api/Account/Login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			ctrl.Login(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			data, apiErr := decodeEnvelope(t, rec.Body)
			if tt.wantToken {
				var auth AuthResponse
				require.NoError(t, json.Unmarshal(data, &auth))
				assert.Equal(t, "token-1", auth.Token)
			} else {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantMessage, apiErr.Message)
				assert.NotContains(t, rec.Body.String(), "token-1")
			}
		})
	}
}

func TestAccountController_GetUser(t *testing.T) {
	t.Run("resolves user from token claims", func(t *testing.T) {
		svc := &fakeAccountService{getUser: &domain.User{ID: "u1", UserName: "alice"}}
		ctrl := NewAccountController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/api/Account/GetUser", nil)
		req = req.WithContext(middleware.SetIdentity(req.Context(), "u1", "alice"))
		rec := httptest.NewRecorder()

		ctrl.GetUser(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		data, _ := decodeEnvelope(t, rec.Body)
		var user domain.User
		require.NoError(t, json.Unmarshal(data, &user))
		assert.Equal(t, "alice", user.UserName)
	})

	t.Run("account vanished responds 204", func(t *testing.T) {
		svc := &fakeAccountService{getErr: domain.ErrUserNotFound}
		ctrl := NewAccountController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/api/Account/GetUser", nil)
		req = req.WithContext(middleware.SetIdentity(req.Context(), "u1", "alice"))
		rec := httptest.NewRecorder()

		ctrl.GetUser(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.Bytes())
	})

	t.Run("no identity in context", func(t *testing.T) {
		ctrl := NewAccountController(testLogger(), &fakeAccountService{})
		req := httptest.NewRequest(http.MethodGet, "/api/Account/GetUser", nil)
		rec := httptest.NewRecorder()

		ctrl.GetUser(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAccountController_UpdateUser(t *testing.T) {
	t.Run("body naming someone else's account is rejected", func(t *testing.T) {
		svc := &fakeAccountService{}
		ctrl := NewAccountController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodPut, "/api/Account/UpdateUser",
			bytes.NewBufferString(`{"userName":"somebody-else","email":"a@b.com"}`))
		req = req.WithContext(middleware.SetIdentity(req.Context(), "u1", "alice"))
		rec := httptest.NewRecorder()

		ctrl.UpdateUser(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, svc.lastUpdateID)
	})

	t.Run("success reissues token", func(t *testing.T) {
		svc := &fakeAccountService{updateUser: &domain.User{ID: "u1", UserName: "alice", FirstName: "Alice"}}
		ctrl := NewAccountController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodPut, "/api/Account/UpdateUser",
			bytes.NewBufferString(`{"userName":"alice","email":"a@b.com","titulo":"Dev"}`))
		req = req.WithContext(middleware.SetIdentity(req.Context(), "u1", "alice"))
		rec := httptest.NewRecorder()

		ctrl.UpdateUser(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", svc.lastUpdateID)
		data, _ := decodeEnvelope(t, rec.Body)
		var auth AuthResponse
		require.NoError(t, json.Unmarshal(data, &auth))
		assert.Equal(t, "token-2", auth.Token)
	})

	t.Run("username casing differences are tolerated", func(t *testing.T) {
		svc := &fakeAccountService{updateUser: &domain.User{ID: "u1", UserName: "Alice"}}
		ctrl := NewAccountController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodPut, "/api/Account/UpdateUser",
			bytes.NewBufferString(`{"userName":"ALICE"}`))
		req = req.WithContext(middleware.SetIdentity(req.Context(), "u1", "alice"))
		rec := httptest.NewRecorder()

		ctrl.UpdateUser(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
