package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"

	"github.com/lib/pq"
	"gopkg.in/guregu/null.v4"
)

// pgLocationRepository reads the catalog from parking_locations / parking_slots.
// It never writes: the catalog is reference data (see schema.sql).
type pgLocationRepository struct {
	db *sql.DB
}

func NewPgLocationRepository(db *sql.DB) repository.LocationRepository {
	return &pgLocationRepository{db: db}
}

const locationColumns = `id, name, address, price_per_hour, features, lat, lng, advertised_available`

func scanLocation(row interface{ Scan(...any) error }) (*domain.ParkingLocation, error) {
	loc := &domain.ParkingLocation{}
	var lat, lng null.Float
	var features []string
	err := row.Scan(&loc.ID, &loc.Name, &loc.Address, &loc.PricePerHour, pq.Array(&features), &lat, &lng, &loc.AdvertisedAvailable)
	if err != nil {
		return nil, err
	}
	loc.Features = features
	if lat.Valid && lng.Valid {
		loc.Position = domain.Position{Lat: lat.Float64, Lng: lng.Float64}
	}
	return loc, nil
}

func (r *pgLocationRepository) FindByID(ctx context.Context, id string) (*domain.ParkingLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM parking_locations WHERE id = $1`
	loc, err := scanLocation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("LocationRepository.FindByID: %w", err)
	}
	if err := r.loadSlots(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (r *pgLocationRepository) FindAll(ctx context.Context) ([]domain.ParkingLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM parking_locations ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("LocationRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var locs []domain.ParkingLocation
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("LocationRepository.FindAll (scanning row): %w", err)
		}
		locs = append(locs, *loc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("LocationRepository.FindAll (rows error): %w", err)
	}

	for i := range locs {
		if err := r.loadSlots(ctx, &locs[i]); err != nil {
			return nil, err
		}
	}
	return locs, nil
}

// loadSlots fills the slot table and recounts availability. A NULL slot price
// means the location's hourly rate applies.
func (r *pgLocationRepository) loadSlots(ctx context.Context, loc *domain.ParkingLocation) error {
	query := `SELECT id, number, status, slot_type, price FROM parking_slots WHERE location_id = $1 ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, loc.ID)
	if err != nil {
		return fmt.Errorf("LocationRepository.loadSlots: %w", err)
	}
	defer rows.Close()

	loc.Slots = loc.Slots[:0]
	for rows.Next() {
		var slot domain.ParkingSlot
		var price null.Float
		if err := rows.Scan(&slot.ID, &slot.Number, &slot.Status, &slot.Type, &price); err != nil {
			return fmt.Errorf("LocationRepository.loadSlots (scanning row): %w", err)
		}
		slot.Price = price.ValueOrZero()
		if !price.Valid {
			slot.Price = loc.PricePerHour
		}
		loc.Slots = append(loc.Slots, slot)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("LocationRepository.loadSlots (rows error): %w", err)
	}
	loc.TotalSlots = len(loc.Slots)
	loc.Recount()
	return nil
}
