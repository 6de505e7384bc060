package transitapi

import (
	"context"
	"encoding/json"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/journey-planner/internal/domain"
	"github.com/journey-planner/internal/domain/repository"
	"github.com/journey-planner/internal/pkg/errors"
	"github.com/journey-planner/internal/pkg/validator"
	"go.uber.org/zap"
)

const (
	PathPlaces            = "/places"
	PathJourneys          = "/journeys"
	PathResolveJourneys   = "/resolve-journeys"
	PathLastJourneysOfDay = "/journeys/last-of-day"

	DefaultPlaceTypes     = "stop_area,stop_point,address,poi"
	DefaultPlaceCount     = 5
	DefaultJourneyCount   = 5
	DefaultLastOfDayCount = 8

	// minPlaceQueryLength keeps half-typed queries off the network.
	minPlaceQueryLength = 2
)

// Requester is the transport the query functions go through.
type Requester interface {
	Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error)
}

type client struct {
	http   Requester
	logger *zap.Logger
}

// NewTransitClient wires the journey endpoints on top of a Requester.
func NewTransitClient(http Requester, logger *zap.Logger) repository.JourneyRepository {
	return &client{
		http:   http,
		logger: logger,
	}
}

func (c *client) SearchPlaces(ctx context.Context, text string, opts domain.PlaceOptions) (domain.PlaceCandidates, error) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minPlaceQueryLength {
		c.logger.Debug("Place query too short, skipping request", zap.String("q", text))
		return domain.EmptyResults(), nil
	}

	if opts.Types == "" {
		opts.Types = DefaultPlaceTypes
	}
	if opts.Count == 0 {
		opts.Count = DefaultPlaceCount
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("types", opts.Types)
	params.Set("count", strconv.Itoa(opts.Count))

	return c.http.Get(ctx, PathPlaces, params)
}

func (c *client) GetJourneys(ctx context.Context, p domain.JourneyParams) (domain.JourneyResults, error) {
	params := journeyParams(p.Count, DefaultJourneyCount, p.Datetime, p.Realtime)
	setIfPresent(params, "from", p.From)
	setIfPresent(params, "to", p.To)

	return c.http.Get(ctx, PathJourneys, params)
}

func (c *client) ResolveJourneys(ctx context.Context, p domain.QueryParams) (domain.JourneyResults, error) {
	return c.freeTextJourneys(ctx, PathResolveJourneys, DefaultJourneyCount, p)
}

func (c *client) LastJourneysOfDay(ctx context.Context, p domain.QueryParams) (domain.JourneyResults, error) {
	return c.freeTextJourneys(ctx, PathLastJourneysOfDay, DefaultLastOfDayCount, p)
}

// freeTextJourneys validates both endpoints before touching the network.
func (c *client) freeTextJourneys(ctx context.Context, path string, defaultCount int, p domain.QueryParams) (domain.JourneyResults, error) {
	if err := validator.Validate(&p); err != nil {
		fields := validator.FailedFields(err)
		details := map[string]interface{}{"fields": fields}
		if slices.Contains(fields, "FromQ") || slices.Contains(fields, "ToQ") {
			return nil, errors.ErrMissingQueries.WithDetails(details)
		}
		return nil, errors.ErrInvalidRequest.WithDetails(details)
	}

	params := journeyParams(p.Count, defaultCount, p.Datetime, p.Realtime)
	params.Set("fromQ", p.FromQ)
	params.Set("toQ", p.ToQ)

	return c.http.Get(ctx, path, params)
}

func journeyParams(count, defaultCount int, datetime *time.Time, realtime *bool) url.Values {
	if count == 0 {
		count = defaultCount
	}
	rt := true
	if realtime != nil {
		rt = *realtime
	}

	params := url.Values{}
	params.Set("count", strconv.Itoa(count))
	params.Set("realtime", strconv.FormatBool(rt))
	if datetime != nil && !datetime.IsZero() {
		params.Set("datetime", datetime.Format(time.RFC3339))
	}
	return params
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
