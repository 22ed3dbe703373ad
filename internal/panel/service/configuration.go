package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/veligame/adminpanel/internal/panel/domain"
	"github.com/veligame/adminpanel/internal/panel/store"
	"github.com/veligame/adminpanel/pkg/idx"
)

// ErrInvalidConfiguration signals a configuration that fails the game's
// tuning bounds.
var ErrInvalidConfiguration = errors.New("invalid_configuration")

// ConfigurationService manages building configurations in the document
// store.
type ConfigurationService struct {
	Store store.Configurations
}

// ListConfigurations returns every stored configuration.
func (s *ConfigurationService) ListConfigurations(ctx context.Context) ([]domain.BuildingConfiguration, error) {
	return s.Store.ListConfigurations(ctx)
}

// CreateConfiguration validates and stores a new configuration. The admin
// frontend applies the same bounds, but clients are not trusted with them.
func (s *ConfigurationService) CreateConfiguration(
	ctx context.Context,
	buildingType string,
	buildingCost float64,
	constructionTime int,
) (domain.BuildingConfiguration, error) {
	if !domain.ValidBuildingType(buildingType) {
		return domain.BuildingConfiguration{}, fmt.Errorf(
			"%w: unknown building type %q", ErrInvalidConfiguration, buildingType)
	}
	if buildingCost <= 0 {
		return domain.BuildingConfiguration{}, fmt.Errorf(
			"%w: building cost must be positive", ErrInvalidConfiguration)
	}
	if constructionTime < domain.MinConstructionTime || constructionTime > domain.MaxConstructionTime {
		return domain.BuildingConfiguration{}, fmt.Errorf(
			"%w: construction time must be between %d and %d seconds",
			ErrInvalidConfiguration, domain.MinConstructionTime, domain.MaxConstructionTime)
	}

	cfg := domain.BuildingConfiguration{
		ID:               idx.New().String(),
		BuildingType:     buildingType,
		BuildingCost:     buildingCost,
		ConstructionTime: constructionTime,
	}

	if err := s.Store.InsertConfiguration(ctx, cfg); err != nil {
		return domain.BuildingConfiguration{}, err
	}
	return cfg, nil
}

// DeleteConfiguration removes a configuration by id.
func (s *ConfigurationService) DeleteConfiguration(ctx context.Context, id string) error {
	return s.Store.DeleteConfiguration(ctx, id)
}
