package repository

import (
	"context"
	"fmt"

	"github.com/hiwaldo89/admon-software-client/internal/models"
)

// EnsureSchema creates the valuations table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS valuations (
			id SERIAL PRIMARY KEY,
			surface_total DOUBLE PRECISION NOT NULL,
			surface_covered DOUBLE PRECISION NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			property_type TEXT NOT NULL,
			estado TEXT NOT NULL,
			municipio TEXT NOT NULL,
			localidad TEXT NOT NULL,
			prediction DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	_, err := r.db.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create valuations table: %w", err)
	}

	return nil
}

// SaveValuation records one completed valuation in the history log.
func (r *Repository) SaveValuation(ctx context.Context, val models.Valuation) error {
	query := `
		INSERT INTO valuations (
			surface_total, surface_covered, latitude, longitude,
			property_type, estado, municipio, localidad, prediction
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.db.Exec(ctx, query,
		val.SurfaceTotal, val.SurfaceCovered, val.Latitude, val.Longitude,
		val.PropertyType, val.Estado, val.Municipio, val.Localidad, val.Prediction,
	)
	if err != nil {
		return fmt.Errorf("failed to insert valuation: %w", err)
	}

	r.log.DebugContext(ctx, "Valuation recorded",
		"property_type", val.PropertyType, "estado", val.Estado, "prediction", val.Prediction)

	return nil
}

// RecentValuations retrieves the most recent completed valuations,
// newest first, limited to the specified count.
func (r *Repository) RecentValuations(ctx context.Context, limit int) ([]models.Valuation, error) {
	var valuations []models.Valuation
	query := `
		SELECT
			id, surface_total, surface_covered, latitude, longitude,
			property_type, estado, municipio, localidad, prediction, created_at
		FROM valuations
		ORDER BY created_at DESC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent valuations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var val models.Valuation
		if errScan := rows.Scan(
			&val.ID, &val.SurfaceTotal, &val.SurfaceCovered, &val.Latitude, &val.Longitude,
			&val.PropertyType, &val.Estado, &val.Municipio, &val.Localidad, &val.Prediction, &val.CreatedAt,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan valuation row: %w", errScan)
		}
		valuations = append(valuations, val)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return valuations, nil
}
