package usecase

import (
	"context"
	"fmt"
	"time"

	"voxform/internal/domain"
	"voxform/internal/ports"
)

// SystemClock is the wall-clock implementation of ports.Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Resolver computes values for auto-filled fields without operator speech.
type Resolver struct {
	clock      ports.Clock
	geolocator ports.Geolocator
	geoTimeout time.Duration
}

func NewResolver(clock ports.Clock, geolocator ports.Geolocator, geoTimeout time.Duration) *Resolver {
	if geoTimeout <= 0 {
		geoTimeout = 5 * time.Second
	}
	return &Resolver{clock: clock, geolocator: geolocator, geoTimeout: geoTimeout}
}

// Resolve produces the value for an auto-filled field. Geolocation failure
// degrades to the error text so the field still counts as answered and
// navigation is never blocked.
func (r *Resolver) Resolve(ctx context.Context, field domain.Field, params LaunchParams) string {
	switch field.Kind {
	case domain.FieldKindAutoDate:
		return r.clock.Now().Format("2006-01-02")
	case domain.FieldKindAutoTime:
		return r.clock.Now().Format("15:04")
	case domain.FieldKindAutoFixed:
		return params.value(field.Param)
	case domain.FieldKindAutoGeo:
		geoCtx, cancel := context.WithTimeout(ctx, r.geoTimeout)
		defer cancel()
		pos, err := r.geolocator.Coordinates(geoCtx)
		if err != nil {
			return fmt.Sprintf("location unavailable: %v", err)
		}
		return fmt.Sprintf("%.5f, %.5f", pos.Latitude, pos.Longitude)
	}
	return ""
}
