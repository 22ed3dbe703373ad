package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veligame/adminpanel/internal/panel/domain"
	"github.com/veligame/adminpanel/internal/panel/service"
	"github.com/veligame/adminpanel/internal/panel/store"
)

// memConfigurations is an in-memory store.Configurations used to exercise
// the service without a running document store.
type memConfigurations struct {
	docs []domain.BuildingConfiguration
}

func (m *memConfigurations) ListConfigurations(_ context.Context) ([]domain.BuildingConfiguration, error) {
	out := make([]domain.BuildingConfiguration, len(m.docs))
	copy(out, m.docs)
	return out, nil
}

func (m *memConfigurations) InsertConfiguration(_ context.Context, c domain.BuildingConfiguration) error {
	for _, d := range m.docs {
		if d.ID == c.ID {
			return store.ErrAlreadyExists
		}
	}
	m.docs = append(m.docs, c)
	return nil
}

func (m *memConfigurations) DeleteConfiguration(_ context.Context, id string) error {
	for i, d := range m.docs {
		if d.ID == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memConfigurations) Ping(_ context.Context) error  { return nil }
func (m *memConfigurations) Close(_ context.Context) error { return nil }

func TestCreateConfiguration(t *testing.T) {
	svc := &service.ConfigurationService{Store: &memConfigurations{}}
	ctx := context.Background()

	cfg, err := svc.CreateConfiguration(ctx, "Farm", 120.5, 45)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.ID)
	require.Equal(t, "Farm", cfg.BuildingType)

	list, err := svc.ListConfigurations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, cfg, list[0])
}

func TestCreateConfigurationValidation(t *testing.T) {
	svc := &service.ConfigurationService{Store: &memConfigurations{}}
	ctx := context.Background()

	cases := []struct {
		name             string
		buildingType     string
		buildingCost     float64
		constructionTime int
	}{
		{"unknown building type", "Castle", 100, 60},
		{"case sensitive building type", "farm", 100, 60},
		{"zero cost", "Farm", 0, 60},
		{"negative cost", "Farm", -5, 60},
		{"construction time below minimum", "Farm", 100, 29},
		{"construction time above maximum", "Farm", 100, 1801},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateConfiguration(ctx, tc.buildingType, tc.buildingCost, tc.constructionTime)
			require.ErrorIs(t, err, service.ErrInvalidConfiguration)
		})
	}

	list, err := svc.ListConfigurations(ctx)
	require.NoError(t, err)
	require.Empty(t, list, "rejected configurations must not be stored")
}

func TestCreateConfigurationBoundaryTimes(t *testing.T) {
	svc := &service.ConfigurationService{Store: &memConfigurations{}}
	ctx := context.Background()

	_, err := svc.CreateConfiguration(ctx, "Barracks", 50, domain.MinConstructionTime)
	require.NoError(t, err)

	_, err = svc.CreateConfiguration(ctx, "Academy", 50, domain.MaxConstructionTime)
	require.NoError(t, err)
}

func TestDeleteConfiguration(t *testing.T) {
	svc := &service.ConfigurationService{Store: &memConfigurations{}}
	ctx := context.Background()

	cfg, err := svc.CreateConfiguration(ctx, "LumberMill", 75, 300)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteConfiguration(ctx, cfg.ID))
	require.ErrorIs(t, svc.DeleteConfiguration(ctx, cfg.ID), store.ErrNotFound)
}
