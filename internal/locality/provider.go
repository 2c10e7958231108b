package locality

import (
	"context"

	"github.com/flightlinehq/courser/internal/models"
)

// Provider resolves a coordinate into a human-readable locality name for the
// competition briefing sheet. Implementations wrap external reverse-geocoding
// services.
type Provider interface {
	Locality(ctx context.Context, coords models.Coordinate) (string, error)
}
