package controller

import (
	"cv-insight-be/internal/dto"
	"cv-insight-be/internal/pkg/serverutils"
	"cv-insight-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRAGController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	CVDetail(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
}

type ragController struct {
	service service.IRAGService
}

func NewRAGController(service service.IRAGService) IRAGController {
	return &ragController{service: service}
}

func (c *ragController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1")
	h.Post("/query", c.Query)
	h.Get("/cv/detail", c.CVDetail)
	h.Delete("/sessions/:id", c.ClearSession)
}

func (c *ragController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Query(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer query", res))
}

func (c *ragController) CVDetail(ctx *fiber.Ctx) error {
	name := ctx.Query("name")
	if name == "" {
		return serverutils.NewBadRequestError("name query parameter is required")
	}

	res, err := c.service.CVDetail(ctx.Context(), name)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get CV detail", res))
}

func (c *ragController) ClearSession(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("id")

	res, err := c.service.ClearSession(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear session", res))
}
