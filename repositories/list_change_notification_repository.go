package repositories

import (
	"context"
	"encoding/json"

	"github.com/checkmarble/asset-lists/models"

	"github.com/cockroachdb/errors"
)

const LIST_CHANGES_CHANNEL = "asset_list_changes"

type ListChangeNotificationRepository interface {
	PublishListChange(ctx context.Context, exec Executor, event models.ListChangeEvent) error
}

type pgNotifyRepository struct{}

func NewListChangeNotificationRepository() ListChangeNotificationRepository {
	return pgNotifyRepository{}
}

// PublishListChange sends the event on the postgres notification channel listened to by the
// realtime subscribers.
func (pgNotifyRepository) PublishListChange(ctx context.Context, exec Executor, event models.ListChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "could not marshal list change event")
	}
	_, err = exec.Exec(ctx, "SELECT pg_notify($1, $2)", LIST_CHANGES_CHANNEL, string(payload))
	if err != nil {
		return errors.Wrap(err, "could not publish list change")
	}
	return nil
}
