package usecases

import (
	"context"

	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

type listAccessReader interface {
	GetAssetListById(ctx context.Context, exec repositories.Executor, listId string, forUpdate bool) (models.AssetList, error)
	ListMemberships(ctx context.Context, exec repositories.Executor, listId string) ([]models.ListMembership, error)
}

// loadListAccess reads the list and its memberships. In a write transaction, lock must be true:
// the list row lock serializes all the mutations of one list, so that capabilities, positions and
// suggestion states are evaluated against committed data.
func loadListAccess(
	ctx context.Context,
	repository listAccessReader,
	exec repositories.Executor,
	listId string,
	lock bool,
) (models.ListAccess, error) {
	list, err := repository.GetAssetListById(ctx, exec, listId, lock)
	if err != nil {
		return models.ListAccess{}, err
	}
	memberships, err := repository.ListMemberships(ctx, exec, listId)
	if err != nil {
		return models.ListAccess{}, err
	}
	return models.ListAccess{List: list, Memberships: memberships}, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return errors.Wrap(models.BadParameterError, err.Error())
	}
	return nil
}
