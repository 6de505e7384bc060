package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/journey-planner/internal/domain"
	"github.com/journey-planner/internal/domain/repository"
	"github.com/journey-planner/internal/pkg/errors"
	"github.com/journey-planner/internal/pkg/utils"
	"github.com/journey-planner/internal/pkg/validator"
	"github.com/journey-planner/internal/usecase"
	"github.com/journey-planner/internal/usecase/dto"
	"go.uber.org/zap"
)

// JourneyHandler - обработчик для поиска маршрутов
type JourneyHandler struct {
	repo      repository.JourneyRepository
	storeOpts usecase.StoreOptions
	logger    *zap.Logger
}

// NewJourneyHandler - создание нового JourneyHandler
func NewJourneyHandler(repo repository.JourneyRepository, storeOpts usecase.StoreOptions, logger *zap.Logger) *JourneyHandler {
	return &JourneyHandler{
		repo:      repo,
		storeOpts: storeOpts,
		logger:    logger,
	}
}

// Search godoc
// @Summary Search journeys between two free-text places
// @Description Runs a journey search for the given departure/arrival inputs and returns the terminal search state. Each request gets its own state. Failures are reported in the state's error field, not as an HTTP error.
// @Tags Journeys
// @Accept json
// @Produce json
// @Param request body dto.SearchRequest true "Departure, arrival and search mode"
// @Success 200 {object} utils.SuccessResponse{data=dto.SearchStateResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/search [post]
func (h *JourneyHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "invalid request body",
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidFields(err))
	}

	// The store is one user's form state, so it never outlives the request.
	store := usecase.NewJourneyStore(h.repo, h.logger, h.storeOpts)
	store.SetQueries(req.FromQ, req.ToQ)
	store.Search(c.UserContext(), domain.SearchOptions{LastOfDay: req.LastOfDay})

	return utils.SendSuccess(c, dto.NewSearchStateResponse(store.State()), requestMeta(c))
}

// GetJourneys godoc
// @Summary Journeys between two resolved places
// @Tags Journeys
// @Produce json
// @Param from query string false "Origin place id"
// @Param to query string false "Destination place id"
// @Param count query int false "Number of journeys" default(5)
// @Param datetime query string false "RFC3339 departure time"
// @Param realtime query bool false "Use live schedule adjustments" default(true)
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/journeys [get]
func (h *JourneyHandler) GetJourneys(c *fiber.Ctx) error {
	req := dto.JourneysRequest{
		From:     c.Query("from"),
		To:       c.Query("to"),
		Count:    c.QueryInt("count", 0),
		Datetime: c.Query("datetime"),
	}
	if raw := c.Query("realtime"); raw != "" {
		rt := c.QueryBool("realtime", true)
		req.Realtime = &rt
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidFields(err))
	}

	params := domain.JourneyParams{
		From:     req.From,
		To:       req.To,
		Count:    req.Count,
		Realtime: req.Realtime,
	}
	if req.Datetime != "" {
		dt, err := time.Parse(time.RFC3339, req.Datetime)
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"fields": []string{"Datetime"},
			}))
		}
		params.Datetime = &dt
	}

	journeys, err := h.repo.GetJourneys(c.UserContext(), params)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, journeys, requestMeta(c))
}

func invalidFields(err error) error {
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"fields": validator.FailedFields(err),
	})
}
