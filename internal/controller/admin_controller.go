package controller

import (
	"github.com/YarinTwito/whatsapp-smart-agent/internal/dto"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/serverutils"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, adminKeyMiddleware fiber.Handler)
	ListFeedback(ctx *fiber.Ctx) error
	ListReports(ctx *fiber.Ctx) error
	UpdateReportStatus(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{
		adminService: adminService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router, adminKeyMiddleware fiber.Handler) {
	h := r.Group("/admin/v1")
	h.Use(adminKeyMiddleware)
	h.Get("feedback", c.ListFeedback)
	h.Get("reports", c.ListReports)
	h.Put("reports/:id/status", c.UpdateReportStatus)
	h.Get("logs", c.GetLogs)
}

func (c *adminController) ListFeedback(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.adminService.ListFeedback(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list feedback", res))
}

func (c *adminController) ListReports(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.adminService.ListReports(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list reports", res))
}

func (c *adminController) UpdateReportStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid report id"))
	}

	var req dto.UpdateReportStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminService.UpdateReportStatus(ctx.Context(), id, req.Status)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update report status", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level", "")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	logs, err := c.adminService.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", logs))
}
