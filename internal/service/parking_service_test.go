package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking_booking/internal/catalog"
	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
	"parking_booking/internal/repository/memory"
)

func newParkingService() *ParkingService {
	return NewParkingService(memory.NewLocationRepository(catalog.Seed()))
}

func TestMarkerColorFor(t *testing.T) {
	assert.Equal(t, domain.MarkerGreen, MarkerColorFor(15, 40))
	assert.Equal(t, domain.MarkerYellow, MarkerColorFor(12, 40)) // exactly 30%
	assert.Equal(t, domain.MarkerYellow, MarkerColorFor(1, 200))
	assert.Equal(t, domain.MarkerRed, MarkerColorFor(0, 30))
	assert.Equal(t, domain.MarkerRed, MarkerColorFor(0, 0))
}

func TestParkingService_MapView(t *testing.T) {
	s := newParkingService()

	view, err := s.MapView(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultMapCenter, view.Center)
	assert.Equal(t, 13, view.Zoom)
	require.Len(t, view.Markers, 5)

	colors := map[string]domain.MarkerColor{}
	for _, m := range view.Markers {
		colors[m.ID] = m.Color
	}
	assert.Equal(t, domain.MarkerYellow, colors["downtown"]) // 15/50 = 30%
	assert.Equal(t, domain.MarkerYellow, colors["mall"])
	assert.Equal(t, domain.MarkerRed, colors["station"])
	assert.Equal(t, domain.MarkerGreen, colors["riverside"])
	assert.Equal(t, domain.MarkerYellow, colors["airport"])
	assert.Equal(t, "/marker-red.png", view.Markers[2].IconURL)
}

func TestParkingService_MapViewCentersOnUser(t *testing.T) {
	pos := domain.Position{Lat: 48.85, Lng: 2.35}
	view, err := newParkingService().MapView(context.Background(), &pos)
	require.NoError(t, err)
	assert.Equal(t, pos, view.Center)
}

func TestParkingService_ListLocationsSearch(t *testing.T) {
	s := newParkingService()
	ctx := context.Background()

	all, err := s.ListLocations(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Nil(t, all[0].Slots)

	hits, err := s.ListLocations(ctx, "  METRO ")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "station", hits[0].ID)

	hits, err = s.ListLocations(ctx, "terminal")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "airport", hits[0].ID)
}

func TestParkingService_GetLocationUnknown(t *testing.T) {
	_, err := newParkingService().GetLocation(context.Background(), "moon")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestParkingService_CheckCatalogDrift(t *testing.T) {
	n, err := newParkingService().CheckCatalogDrift(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	locs := catalog.Seed()
	locs[1].AdvertisedAvailable = 40
	s := NewParkingService(memory.NewLocationRepository(locs))
	n, err = s.CheckCatalogDrift(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
