package utils

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/journey-planner/internal/domain"
	"github.com/journey-planner/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total     int     `json:"total,omitempty"`
	RequestID string  `json:"request_id,omitempty"`
	TimeMSec  float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Backend failures keep their payload so the UI can show it.
	var payloadErr domain.PayloadError
	if stderrors.As(err, &payloadErr) {
		details := map[string]interface{}{"message": payloadErr.Error()}
		if payload, ok := payloadErr.Payload(); ok {
			details["upstream"] = payload
		}
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: errors.ErrUpstream.WithDetails(details),
		})
	}

	// Network failures and timeouts
	return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
		Error: errors.ErrUpstream.WithDetails(map[string]interface{}{
			"message": err.Error(),
		}),
	})
}
