package transitapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/journey-planner/internal/config"
	"github.com/journey-planner/internal/domain"
	"github.com/journey-planner/internal/domain/repository"
	"github.com/journey-planner/internal/infrastructure/httpclient"
	apperrors "github.com/journey-planner/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRequester is a mock of Requester
type MockRequester struct {
	mock.Mock
}

func (m *MockRequester) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	args := m.Called(ctx, path, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func TestClient_SearchPlaces(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("short or blank text never reaches the network", func(t *testing.T) {
		requester := &MockRequester{}
		c := NewTransitClient(requester, logger)

		for _, text := range []string{"", " ", "a", "  b  ", "\t", "é"} {
			places, err := c.SearchPlaces(ctx, text, domain.PlaceOptions{})
			require.NoError(t, err, text)
			assert.JSONEq(t, `[]`, string(places), text)
		}

		requester.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("two characters pass the guard with defaults", func(t *testing.T) {
		requester := &MockRequester{}
		c := NewTransitClient(requester, logger)

		expected := url.Values{
			"q":     {"ab"},
			"types": {DefaultPlaceTypes},
			"count": {"5"},
		}
		requester.On("Get", ctx, PathPlaces, expected).
			Return(json.RawMessage(`[{"id":"1"}]`), nil)

		places, err := c.SearchPlaces(ctx, "ab", domain.PlaceOptions{})
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"1"}]`, string(places))

		requester.AssertExpectations(t)
	})

	t.Run("explicit options", func(t *testing.T) {
		requester := &MockRequester{}
		c := NewTransitClient(requester, logger)

		expected := url.Values{
			"q":     {"Châtelet"},
			"types": {"stop_area"},
			"count": {"10"},
		}
		requester.On("Get", ctx, PathPlaces, expected).
			Return(json.RawMessage(`{"places":[]}`), nil)

		places, err := c.SearchPlaces(ctx, "Châtelet", domain.PlaceOptions{Types: "stop_area", Count: 10})
		require.NoError(t, err)
		assert.JSONEq(t, `{"places":[]}`, string(places))

		requester.AssertExpectations(t)
	})

	t.Run("transport failure propagates unchanged", func(t *testing.T) {
		requester := &MockRequester{}
		c := NewTransitClient(requester, logger)

		failure := &httpclient.ResponseError{StatusCode: http.StatusServiceUnavailable}
		requester.On("Get", ctx, PathPlaces, mock.Anything).Return(nil, failure)

		places, err := c.SearchPlaces(ctx, "gare", domain.PlaceOptions{})
		assert.Nil(t, places)
		assert.Same(t, failure, err)
	})
}

func TestClient_GetJourneys(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("defaults and no validation", func(t *testing.T) {
		requester := &MockRequester{}
		c := NewTransitClient(requester, logger)

		expected := url.Values{
			"count":    {"5"},
			"realtime": {"true"},
		}
		requester.On("Get", ctx, PathJourneys, expected).Return(json.RawMessage(`[]`), nil)

		_, err := c.GetJourneys(ctx, domain.JourneyParams{})
		require.NoError(t, err)
		requester.AssertExpectations(t)
	})

	t.Run("all parameters", func(t *testing.T) {
		requester := &MockRequester{}
		c := NewTransitClient(requester, logger)

		when := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
		expected := url.Values{
			"from":     {"stop_area:A"},
			"to":       {"stop_area:B"},
			"count":    {"3"},
			"realtime": {"false"},
			"datetime": {"2026-03-14T18:30:00Z"},
		}
		requester.On("Get", ctx, PathJourneys, expected).
			Return(json.RawMessage(`{"journeys":[{"duration":1200}]}`), nil)

		body, err := c.GetJourneys(ctx, domain.JourneyParams{
			From:     "stop_area:A",
			To:       "stop_area:B",
			Count:    3,
			Datetime: &when,
			Realtime: domain.Bool(false),
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"journeys":[{"duration":1200}]}`, string(body))
		requester.AssertExpectations(t)
	})
}

func TestClient_FreeTextJourneys(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	cases := []struct {
		name         string
		path         string
		defaultCount string
		call         func(c repository.JourneyRepository, p domain.QueryParams) (domain.JourneyResults, error)
	}{
		{
			name:         "resolve journeys",
			path:         PathResolveJourneys,
			defaultCount: "5",
			call: func(c repository.JourneyRepository, p domain.QueryParams) (domain.JourneyResults, error) {
				return c.ResolveJourneys(ctx, p)
			},
		},
		{
			name:         "last journeys of day",
			path:         PathLastJourneysOfDay,
			defaultCount: "8",
			call: func(c repository.JourneyRepository, p domain.QueryParams) (domain.JourneyResults, error) {
				return c.LastJourneysOfDay(ctx, p)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name+" rejects blank endpoints", func(t *testing.T) {
			requester := &MockRequester{}
			c := NewTransitClient(requester, logger)

			for _, p := range []domain.QueryParams{
				{FromQ: "", ToQ: "Nation"},
				{FromQ: "Bastille", ToQ: "   "},
				{FromQ: "\t", ToQ: "\n"},
			} {
				body, err := tc.call(c, p)
				require.Error(t, err)
				assert.Nil(t, body)
				assert.ErrorIs(t, err, apperrors.ErrMissingQueries)
				assert.True(t, apperrors.IsValidation(err))
			}

			requester.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
		})

		t.Run(tc.name+" rejects a negative count", func(t *testing.T) {
			requester := &MockRequester{}
			c := NewTransitClient(requester, logger)

			body, err := tc.call(c, domain.QueryParams{FromQ: "Bastille", ToQ: "Nation", Count: -1})
			require.Error(t, err)
			assert.Nil(t, body)
			assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
			assert.NotErrorIs(t, err, apperrors.ErrMissingQueries)

			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, []string{"Count"}, appErr.Details["fields"])

			requester.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
		})

		t.Run(tc.name+" uses its default count", func(t *testing.T) {
			requester := &MockRequester{}
			c := NewTransitClient(requester, logger)

			expected := url.Values{
				"fromQ":    {"Bastille"},
				"toQ":      {"Nation"},
				"count":    {tc.defaultCount},
				"realtime": {"true"},
			}
			requester.On("Get", ctx, tc.path, expected).Return(json.RawMessage(`[{"id":"j1"}]`), nil)

			body, err := tc.call(c, domain.QueryParams{FromQ: "Bastille", ToQ: "Nation"})
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"j1"}]`, string(body))
			requester.AssertExpectations(t)
		})
	}
}

func TestClient_AgainstServer(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, PathLastJourneysOfDay, r.URL.Path)
		assert.Equal(t, "Gare du Nord", r.URL.Query().Get("fromQ"))
		assert.Equal(t, "Orly", r.URL.Query().Get("toQ"))
		assert.Equal(t, "8", r.URL.Query().Get("count"))
		assert.False(t, r.URL.Query().Has("datetime"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"departure":"23:41"}]`))
	}))
	defer server.Close()

	logger := zap.NewNop()
	cfg := &config.APIConfig{BaseURL: server.URL, Timeout: 15 * time.Second}
	c := NewTransitClient(httpclient.NewClient(cfg, logger), logger)

	body, err := c.LastJourneysOfDay(context.Background(), domain.QueryParams{FromQ: "Gare du Nord", ToQ: "Orly"})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"departure":"23:41"}]`, string(body))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
