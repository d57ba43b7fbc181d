//go:build wireinject
// +build wireinject

package analytics

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/seydina/distriops/internal/analytics/delivery/http"
	"github.com/seydina/distriops/internal/analytics/domain"
	"github.com/seydina/distriops/internal/analytics/repository"
	"github.com/seydina/distriops/internal/analytics/usecase"
)

func ProvideAnalyticsRepository(db *gorm.DB) domain.AnalyticsRepository {
	return repository.NewGormAnalyticsRepository(db)
}

var RepositorySet = wire.NewSet(ProvideAnalyticsRepository)

// InitializeHTTPHandler wires up the analytics HTTP handler
func InitializeHTTPHandler(db *gorm.DB) (*http.AnalyticsHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewAnalyticsHandler,
	)
	return nil, nil
}

// InitializeIngestor wires up the event ingestor
func InitializeIngestor(db *gorm.DB) *usecase.Ingestor {
	wire.Build(
		RepositorySet,
		usecase.NewIngestor,
	)
	return nil
}
