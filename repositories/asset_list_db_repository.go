package repositories

// AssetListDbRepository implements the list store on postgres. It is stateless, every method
// takes the executor (pool or transaction) to run on.
type AssetListDbRepository struct{}

func NewAssetListDbRepository() *AssetListDbRepository {
	return &AssetListDbRepository{}
}
