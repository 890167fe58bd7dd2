package utils

import (
	"context"

	"github.com/checkmarble/asset-lists/models"
	"github.com/cockroachdb/errors"
)

func CredentialsFromCtx(ctx context.Context) (models.Credentials, bool) {
	creds, ok := ctx.Value(ContextKeyCredentials).(models.Credentials)
	return creds, ok
}

func StoreCredentialsInContext(ctx context.Context, creds models.Credentials) context.Context {
	return context.WithValue(ctx, ContextKeyCredentials, creds)
}

// UserIdFromCtx returns the id of the authenticated caller, or a ForbiddenError if the request was
// not authenticated as a user.
func UserIdFromCtx(ctx context.Context) (models.UserId, error) {
	creds, found := CredentialsFromCtx(ctx)
	if !found || creds.ActorIdentity.UserId == "" {
		return "", errors.Wrap(models.ForbiddenError, "no user credentials in context")
	}
	return creds.ActorIdentity.UserId, nil
}
