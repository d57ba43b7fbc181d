//go:build wireinject
// +build wireinject

package stock

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/seydina/distriops/internal/stock/delivery/http"
	"github.com/seydina/distriops/internal/stock/domain"
	"github.com/seydina/distriops/internal/stock/repository"
	"github.com/seydina/distriops/internal/stock/usecase/command"
)

// ProvideStockRepository provides the stock repository
func ProvideStockRepository(db *gorm.DB) domain.StockRepository {
	return repository.NewGormStockRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideStockRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher command.MovementPublisher) (*http.StockHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewStockHandler,
	)
	return nil, nil
}
