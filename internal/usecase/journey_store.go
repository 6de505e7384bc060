package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/journey-planner/internal/domain"
	"github.com/journey-planner/internal/domain/repository"
	"github.com/journey-planner/internal/pkg/errors"
)

const (
	// storeSearchCount is used for both search modes; the store does not
	// fall back to the repository's per-endpoint defaults.
	storeSearchCount = 5

	unknownErrorMessage = "Unknown error"
)

// StoreOptions tunes JourneyStore behaviour.
type StoreOptions struct {
	// DiscardStale applies only the most recently issued search. When false,
	// overlapping searches race and whichever response arrives last wins.
	DiscardStale bool
}

// JourneyStore holds the search form state and the outcome of the latest
// search for a single user. It is mutated only by SetQueries and Search and
// may be read by any number of observers.
type JourneyStore struct {
	repo         repository.JourneyRepository
	logger       *zap.Logger
	discardStale bool

	// notifyMu is held from applying a change until its subscribers have
	// seen it, so snapshots are delivered in the order they were taken.
	notifyMu sync.Mutex

	mu          sync.Mutex
	state       domain.SearchState
	issued      uint64
	nextSubID   int
	subscribers map[int]func(domain.SearchState)
}

// NewJourneyStore - создание нового JourneyStore
func NewJourneyStore(repo repository.JourneyRepository, logger *zap.Logger, opts StoreOptions) *JourneyStore {
	return &JourneyStore{
		repo:         repo,
		logger:       logger,
		discardStale: opts.DiscardStale,
		state: domain.SearchState{
			Results: domain.EmptyResults(),
		},
		subscribers: make(map[int]func(domain.SearchState)),
	}
}

// State returns a snapshot of the current state. The snapshot owns its
// bytes and may be modified freely.
func (s *JourneyStore) State() domain.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Subscribe registers fn to receive every state change. The returned func
// removes the subscription. fn must not call SetQueries or Search.
func (s *JourneyStore) Subscribe(fn func(domain.SearchState)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// SetQueries updates the free-text departure and arrival inputs.
func (s *JourneyStore) SetQueries(fromQ, toQ string) {
	s.update(func(st *domain.SearchState) {
		st.FromQ = fromQ
		st.ToQ = toQ
	})
}

// Search runs one journey search with the current inputs and returns once
// the terminal state has been applied. It never fails: errors land in
// State().Error.
func (s *JourneyStore) Search(ctx context.Context, opts domain.SearchOptions) {
	searchID := uuid.NewString()

	var (
		seq    uint64
		params domain.QueryParams
	)
	s.update(func(st *domain.SearchState) {
		s.issued++
		seq = s.issued
		st.Loading = true
		st.Error = nil
		params = domain.QueryParams{
			FromQ:    strings.TrimSpace(st.FromQ),
			ToQ:      strings.TrimSpace(st.ToQ),
			Count:    storeSearchCount,
			Realtime: domain.Bool(true),
		}
	})

	log := s.logger.With(
		zap.String("search_id", searchID),
		zap.Uint64("seq", seq),
		zap.Bool("last_of_day", opts.LastOfDay))
	log.Debug("Journey search started",
		zap.String("from_q", params.FromQ),
		zap.String("to_q", params.ToQ))

	results, err := s.run(ctx, params, opts)

	s.update(func(st *domain.SearchState) {
		if s.discardStale && seq != s.issued {
			log.Debug("Discarding superseded search result", zap.Uint64("latest_seq", s.issued))
			return
		}
		if err != nil {
			st.Error = errorValue(err)
			st.Results = domain.EmptyResults()
		} else {
			st.Results = results
		}
		st.Loading = false
	})

	if err != nil {
		log.Warn("Journey search failed", zap.Error(err))
		return
	}
	log.Info("Journey search completed", zap.Int("bytes", len(results)))
}

func (s *JourneyStore) run(ctx context.Context, params domain.QueryParams, opts domain.SearchOptions) (domain.JourneyResults, error) {
	if params.FromQ == "" || params.ToQ == "" {
		return nil, errors.ErrMissingEndpoints
	}
	if opts.LastOfDay {
		return s.repo.LastJourneysOfDay(ctx, params)
	}
	return s.repo.ResolveJourneys(ctx, params)
}

// update applies fn under the lock and then notifies subscribers with the
// resulting snapshot. Each subscriber gets its own copy.
func (s *JourneyStore) update(fn func(st *domain.SearchState)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state
	subs := make([]func(domain.SearchState), 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(cloneState(snapshot))
	}
}

func cloneState(st domain.SearchState) domain.SearchState {
	st.Results = bytes.Clone(st.Results)
	if raw, ok := st.Error.(json.RawMessage); ok {
		st.Error = json.RawMessage(bytes.Clone(raw))
	}
	return st
}

// errorValue picks what the UI shows for err: the backend's structured
// payload if it sent one, else the message, else a generic fallback.
func errorValue(err error) interface{} {
	var payloadErr domain.PayloadError
	if stderrors.As(err, &payloadErr) {
		if payload, ok := payloadErr.Payload(); ok {
			return payload
		}
	}
	if appErr, ok := errors.AsAppError(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return unknownErrorMessage
}
