package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/journey-planner/internal/delivery/http/middleware"
	"github.com/journey-planner/internal/pkg/utils"
)

func requestMeta(c *fiber.Ctx) *utils.Meta {
	id, _ := c.Locals(middleware.RequestIDKey).(string)
	if id == "" {
		return nil
	}
	return &utils.Meta{RequestID: id}
}
