package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/journey-planner/internal/config"
	"github.com/journey-planner/internal/domain"
	"github.com/journey-planner/internal/domain/repository"
	"github.com/journey-planner/internal/infrastructure/httpclient"
	"github.com/journey-planner/internal/infrastructure/transitapi"
	"github.com/journey-planner/internal/pkg/logger"
	"github.com/journey-planner/internal/usecase"
)

var errSearchFailed = errors.New("search failed")

// maxParallelPlaceLookups bounds the fan-out of `places` with several queries.
const maxParallelPlaceLookups = 4

func newApp() *cli.App {
	return &cli.App{
		Name:  "journeyctl",
		Usage: "query the journey-planning backend from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "optional env file with API_BASE_URL and friends",
			},
			&cli.StringFlag{
				Name:    "base-url",
				EnvVars: []string{"JOURNEYCTL_BASE_URL"},
				Usage:   "backend base URL, overrides API_BASE_URL",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "request timeout, overrides API_TIMEOUT",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
			},
		},
		Commands: []*cli.Command{
			placesCommand(),
			journeysCommand(),
			searchCommand(),
		},
	}
}

type env struct {
	cfg    *config.Config
	logger *zap.Logger
	repo   repository.JourneyRepository
}

func setup(c *cli.Context) (*env, error) {
	cfg, err := config.LoadFrom(c.String("env-file"))
	if err != nil {
		return nil, err
	}
	if base := c.String("base-url"); base != "" {
		cfg.API.BaseURL = strings.TrimRight(base, "/")
	}
	if timeout := c.Duration("timeout"); timeout > 0 {
		cfg.API.Timeout = timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.NewCLI(c.String("log-level"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client := httpclient.NewClient(&cfg.API, log)
	return &env{
		cfg:    cfg,
		logger: log,
		repo:   transitapi.NewTransitClient(client, log),
	}, nil
}

func placesCommand() *cli.Command {
	return &cli.Command{
		Name:      "places",
		Usage:     "look up place candidates for one or more free-text queries",
		ArgsUsage: "<query> [query...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "types", Usage: "comma-separated place types"},
			&cli.IntFlag{Name: "count", Usage: "candidates per query"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("at least one query is required")
			}
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			type lookup struct {
				index  int
				query  string
				places domain.PlaceCandidates
			}

			opts := domain.PlaceOptions{Types: c.String("types"), Count: c.Int("count")}
			p := pool.NewWithResults[lookup]().
				WithContext(c.Context).
				WithMaxGoroutines(maxParallelPlaceLookups)
			for i, q := range c.Args().Slice() {
				p.Go(func(ctx context.Context) (lookup, error) {
					places, err := e.repo.SearchPlaces(ctx, q, opts)
					if err != nil {
						return lookup{}, fmt.Errorf("places %q: %w", q, err)
					}
					return lookup{index: i, query: q, places: places}, nil
				})
			}

			lookups, err := p.Wait()
			if err != nil {
				return err
			}
			sort.Slice(lookups, func(i, j int) bool { return lookups[i].index < lookups[j].index })

			if len(lookups) == 1 {
				return writeJSON(c.App.Writer, lookups[0].places)
			}
			out := make(map[string]json.RawMessage, len(lookups))
			for _, l := range lookups {
				out[l.query] = l.places
			}
			return writeJSON(c.App.Writer, out)
		},
	}
}

func journeysCommand() *cli.Command {
	return &cli.Command{
		Name:  "journeys",
		Usage: "plan journeys between two resolved place ids",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true},
			&cli.StringFlag{Name: "to", Required: true},
			&cli.IntFlag{Name: "count"},
			&cli.TimestampFlag{Name: "datetime", Layout: time.RFC3339},
			&cli.BoolFlag{Name: "realtime", Value: true},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			params := domain.JourneyParams{
				From:     c.String("from"),
				To:       c.String("to"),
				Count:    c.Int("count"),
				Datetime: c.Timestamp("datetime"),
				Realtime: domain.Bool(c.Bool("realtime")),
			}
			journeys, err := e.repo.GetJourneys(c.Context, params)
			if err != nil {
				return err
			}
			return writeJSON(c.App.Writer, journeys)
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "search journeys between two free-text places and print the search state",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "departure, free text"},
			&cli.StringFlag{Name: "to", Usage: "arrival, free text"},
			&cli.BoolFlag{Name: "last-of-day", Usage: "only the last journeys of the day"},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			store := usecase.NewJourneyStore(e.repo, e.logger, usecase.StoreOptions{
				DiscardStale: e.cfg.Store.DiscardStale,
			})
			store.SetQueries(c.String("from"), c.String("to"))
			store.Search(c.Context, domain.SearchOptions{LastOfDay: c.Bool("last-of-day")})

			state := store.State()
			if err := writeJSON(c.App.Writer, state); err != nil {
				return err
			}
			if state.Error != nil {
				return errSearchFailed
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
