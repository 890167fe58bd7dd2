package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/checkmarble/asset-lists/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) ValidateToken(token string) (models.Credentials, error) {
	args := m.Called(token)
	return args.Get(0).(models.Credentials), args.Error(1)
}

func TestAuthenticationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupHeaders   func(*http.Request)
		setupValidator func(*MockValidator)
		expectedStatus int
	}{
		{
			name: "success with bearer token",
			setupHeaders: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer test-token")
			},
			setupValidator: func(v *MockValidator) {
				v.On("ValidateToken", "test-token").
					Return(models.Credentials{
						ActorIdentity: models.Identity{UserId: "user-a", Email: "a@example.com"},
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "malformed authorization header",
			setupHeaders: func(r *http.Request) {
				r.Header.Set("Authorization", "InvalidFormat")
			},
			setupValidator: func(v *MockValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing authorization header",
			setupHeaders:   func(r *http.Request) {},
			setupValidator: func(v *MockValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "invalid token",
			setupHeaders: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer expired")
			},
			setupValidator: func(v *MockValidator) {
				v.On("ValidateToken", "expired").
					Return(models.Credentials{}, models.UnAuthorizedError)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := new(MockValidator)
			tt.setupValidator(validator)
			auth := NewAuthentication(validator)

			w := httptest.NewRecorder()
			_, engine := gin.CreateTestContext(w)

			engine.GET("/test", auth.Middleware, func(c *gin.Context) {
				userId, err := UserIdFromCtx(c.Request.Context())
				assert.NoError(t, err)
				assert.Equal(t, models.UserId("user-a"), userId)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			tt.setupHeaders(req)
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			validator.AssertExpectations(t)
		})
	}
}

func TestParseAuthorizationBearerHeader(t *testing.T) {
	header := http.Header{}
	token, err := ParseAuthorizationBearerHeader(header)
	assert.NoError(t, err)
	assert.Empty(t, token)

	header.Set("Authorization", "Bearer abc")
	token, err = ParseAuthorizationBearerHeader(header)
	assert.NoError(t, err)
	assert.Equal(t, "abc", token)

	header.Set("Authorization", "Bearer ")
	_, err = ParseAuthorizationBearerHeader(header)
	assert.ErrorIs(t, err, models.UnAuthorizedError)
}
