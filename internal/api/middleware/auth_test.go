package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RealtyService/pkg/jwtauth"
	"github.com/m04kA/SMC-RealtyService/pkg/logger"
)

func newAuthRouter(t *testing.T) (*mux.Router, *jwtauth.Manager) {
	t.Helper()

	manager, err := jwtauth.NewManager("secret", time.Hour)
	require.NoError(t, err)

	r := mux.NewRouter()
	r.Use(Auth(manager, logger.NewNop()))
	r.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(userID + ":" + GetRole(r.Context())))
	})
	return r, manager
}

func TestAuth(t *testing.T) {
	router, manager := newAuthRouter(t)

	token, err := manager.Generate("user-1", jwtauth.RoleAgent)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: "user-1:agent"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestGetUserID_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserID(req.Context())
	assert.False(t, ok)
	assert.Empty(t, GetRole(req.Context()))
}
