package utils

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/checkmarble/asset-lists/models"
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

type tokenValidator interface {
	ValidateToken(token string) (models.Credentials, error)
}

type Authentication struct {
	Validator tokenValidator
}

func NewAuthentication(validator tokenValidator) Authentication {
	return Authentication{
		Validator: validator,
	}
}

// Middleware authenticates the caller from its bearer token. Any request that does not carry a
// valid token is rejected with a 401 before reaching the handlers.
func (a *Authentication) Middleware(c *gin.Context) {
	ctx := c.Request.Context()
	token, err := ParseAuthorizationBearerHeader(c.Request.Header)
	if err != nil {
		_ = c.Error(fmt.Errorf("could not parse authorization header: %w", err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if token == "" {
		_ = c.Error(errors.Wrap(models.UnAuthorizedError, "missing bearer token"))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	credentials, err := a.Validator.ValidateToken(token)
	if err != nil {
		_ = c.Error(fmt.Errorf("validator.ValidateToken error: %w", err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	newContext := StoreCredentialsInContext(ctx, credentials)
	logger := LoggerFromContext(newContext).
		With(slog.String("UserId", string(credentials.ActorIdentity.UserId)))
	c.Request = c.Request.WithContext(StoreLoggerInContext(newContext, logger))
	c.Next()
}

func ParseAuthorizationBearerHeader(header http.Header) (string, error) {
	authorization := header.Get("Authorization")
	if authorization == "" {
		return "", nil
	}

	authHeader := strings.Split(authorization, "Bearer ")
	if len(authHeader) != 2 || authHeader[1] == "" {
		return "", fmt.Errorf("malformed token: %w", models.UnAuthorizedError)
	}
	return authHeader[1], nil
}
