package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/journey-planner/internal/domain"
	"github.com/journey-planner/internal/domain/repository"
	"github.com/journey-planner/internal/pkg/utils"
	"github.com/journey-planner/internal/pkg/validator"
	"github.com/journey-planner/internal/usecase/dto"
	"go.uber.org/zap"
)

// PlaceHandler - обработчик для поиска мест
type PlaceHandler struct {
	repo   repository.JourneyRepository
	logger *zap.Logger
}

// NewPlaceHandler - создание нового PlaceHandler
func NewPlaceHandler(repo repository.JourneyRepository, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{
		repo:   repo,
		logger: logger,
	}
}

// Search godoc
// @Summary Place autocomplete
// @Description Looks up stops, addresses and points of interest. Queries shorter than two characters return an empty list without calling the backend.
// @Tags Places
// @Produce json
// @Param q query string true "Free-text query"
// @Param types query string false "Comma-separated place types" default(stop_area,stop_point,address,poi)
// @Param count query int false "Maximum number of candidates" default(5)
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/places [get]
func (h *PlaceHandler) Search(c *fiber.Ctx) error {
	req := dto.PlacesRequest{
		Query: c.Query("q"),
		Types: c.Query("types"),
		Count: c.QueryInt("count", 0),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidFields(err))
	}

	places, err := h.repo.SearchPlaces(c.UserContext(), req.Query, domain.PlaceOptions{
		Types: req.Types,
		Count: req.Count,
	})
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, places, requestMeta(c))
}
