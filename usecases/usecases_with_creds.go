package usecases

import (
	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/usecases/security"
)

type UsecasesWithCreds struct {
	Usecases
	Credentials models.Credentials
}

func (usecases *UsecasesWithCreds) NewEnforceAssetListSecurity() security.EnforceSecurityAssetList {
	return &security.EnforceSecurityAssetListImpl{
		Credentials: usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) newListPositions() listPositions {
	return listPositions{repository: usecases.Repositories.AssetListRepository}
}

func (usecases *UsecasesWithCreds) NewAssetListUsecase() AssetListUsecase {
	return AssetListUsecase{
		enforceSecurity:    usecases.NewEnforceAssetListSecurity(),
		credentials:        usecases.Credentials,
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.AssetListRepository,
		notifier:           usecases.NewListChangeNotifier(),
	}
}

func (usecases *UsecasesWithCreds) NewListItemUsecase() ListItemUsecase {
	return ListItemUsecase{
		enforceSecurity:    usecases.NewEnforceAssetListSecurity(),
		credentials:        usecases.Credentials,
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.AssetListRepository,
		positions:          usecases.newListPositions(),
		notifier:           usecases.NewListChangeNotifier(),
	}
}

func (usecases *UsecasesWithCreds) NewListGroupUsecase() ListGroupUsecase {
	return ListGroupUsecase{
		enforceSecurity:    usecases.NewEnforceAssetListSecurity(),
		credentials:        usecases.Credentials,
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.AssetListRepository,
		positions:          usecases.newListPositions(),
		notifier:           usecases.NewListChangeNotifier(),
	}
}

func (usecases *UsecasesWithCreds) NewListSuggestionUsecase() ListSuggestionUsecase {
	return ListSuggestionUsecase{
		enforceSecurity:    usecases.NewEnforceAssetListSecurity(),
		credentials:        usecases.Credentials,
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.AssetListRepository,
		positions:          usecases.newListPositions(),
		notifier:           usecases.NewListChangeNotifier(),
	}
}
