package repository

import (
	"context"

	"github.com/journey-planner/internal/domain"
)

// JourneyRepository определяет методы для работы с API планирования маршрутов
type JourneyRepository interface {
	// SearchPlaces returns place candidates for a free-text query. Queries
	// shorter than two characters yield an empty sequence without a request.
	SearchPlaces(ctx context.Context, text string, opts domain.PlaceOptions) (domain.PlaceCandidates, error)

	// GetJourneys plans journeys between two resolved place ids.
	GetJourneys(ctx context.Context, params domain.JourneyParams) (domain.JourneyResults, error)

	// ResolveJourneys plans journeys between two free-text endpoints.
	ResolveJourneys(ctx context.Context, params domain.QueryParams) (domain.JourneyResults, error)

	// LastJourneysOfDay returns the last journeys of the day between two
	// free-text endpoints.
	LastJourneysOfDay(ctx context.Context, params domain.QueryParams) (domain.JourneyResults, error)
}
