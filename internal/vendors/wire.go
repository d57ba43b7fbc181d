//go:build wireinject
// +build wireinject

package vendors

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	orderdomain "github.com/seydina/distriops/internal/order/domain"
	orderrepo "github.com/seydina/distriops/internal/order/repository"
	"github.com/seydina/distriops/internal/vendors/delivery/http"
	"github.com/seydina/distriops/internal/vendors/domain"
	"github.com/seydina/distriops/internal/vendors/repository"
	"github.com/seydina/distriops/internal/vendors/usecase/command"
	"github.com/seydina/distriops/internal/vendors/usecase/query"
)

func ProvideVendorRepository(db *gorm.DB) domain.VendorRepository {
	return repository.NewGormVendorRepositoryWithTracing(db)
}

func ProvideOrderRepository(db *gorm.DB) orderdomain.OrderRepository {
	return orderrepo.NewGormOrderRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideVendorRepository,
	ProvideOrderRepository,
)

var HandlerSet = wire.NewSet(
	command.NewRegisterVendorHandler,
	command.NewLoginVendorHandler,
	command.NewCreateActivityHandler,
	command.NewCreateSaleHandler,
	query.NewGetActivityHandler,
	query.NewListActivitiesHandler,
	query.NewListSalesHandler,
	query.NewListVendorsHandler,
	query.NewGetVendorStatsHandler,
)

// InitializeHTTPHandler wires up the vendor HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher command.SalePublisher) (*http.VendorHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewVendorHandler,
	)
	return nil, nil
}
