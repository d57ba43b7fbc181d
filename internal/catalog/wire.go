//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/seydina/distriops/internal/catalog/delivery/http"
	"github.com/seydina/distriops/internal/catalog/domain"
	"github.com/seydina/distriops/internal/catalog/repository"
)

// ProvideCatalogRepository provides the catalog repository
func ProvideCatalogRepository(db *gorm.DB) domain.CatalogRepository {
	return repository.NewGormCatalogRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCatalogRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewCatalogHandler,
	)
	return nil, nil
}
