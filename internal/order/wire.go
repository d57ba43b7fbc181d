//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/seydina/distriops/internal/catalog/domain"
	catalogrepo "github.com/seydina/distriops/internal/catalog/repository"
	"github.com/seydina/distriops/internal/order/delivery/http"
	"github.com/seydina/distriops/internal/order/domain"
	"github.com/seydina/distriops/internal/order/repository"
	"github.com/seydina/distriops/internal/order/usecase/command"
	"github.com/seydina/distriops/internal/order/usecase/query"
)

func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepository(db)
}

func ProvideCatalogRepository(db *gorm.DB) catalogdomain.CatalogRepository {
	return catalogrepo.NewGormCatalogRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	ProvideCatalogRepository,
)

var HandlerSet = wire.NewSet(
	command.NewCreateOrderHandler,
	command.NewUpdateItemHandler,
	command.NewDeleteItemHandler,
	command.NewUpdateStatusHandler,
	query.NewGetOrderHandler,
	query.NewListOrdersHandler,
)

// InitializeHTTPHandler wires up the order HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewOrderHandler,
	)
	return nil, nil
}
