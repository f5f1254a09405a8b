package geocoding

import (
	"context"

	"github.com/hiwaldo89/admon-software-client/internal/models"
)

// Provider is an interface that defines a method for resolving a place
// description to coordinates. The Geocode method takes a context and a
// free-text place query, and returns the corresponding coordinates and an
// error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, place string) (*models.Coordinates, error)
}
