package controller

import (
	"encoding/json"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/logger"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/serverutils"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/service"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/whatsapp"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Verify(ctx *fiber.Ctx) error
	Receive(ctx *fiber.Ctx) error
}

type webhookController struct {
	publisherService service.IPublisherService
	verifyToken      string
	logger           logger.ILogger
}

func NewWebhookController(publisherService service.IPublisherService, verifyToken string, logger logger.ILogger) IWebhookController {
	return &webhookController{
		publisherService: publisherService,
		verifyToken:      verifyToken,
		logger:           logger,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	r.Get("/webhook", c.Verify)
	r.Post("/webhook", c.Receive)
}

// Verify answers the Cloud API subscription handshake.
func (c *webhookController) Verify(ctx *fiber.Ctx) error {
	mode := ctx.Query("hub.mode")
	token := ctx.Query("hub.verify_token")
	challenge := ctx.Query("hub.challenge")

	if mode == "subscribe" && token == c.verifyToken && challenge != "" {
		return ctx.SendString(challenge)
	}
	return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(fiber.StatusForbidden, "Verification failed"))
}

// Receive acknowledges the webhook immediately and pushes each normalized
// event onto the internal bus. The dispatcher does the real work async.
func (c *webhookController) Receive(ctx *fiber.Ctx) error {
	inboundEvents, err := whatsapp.ParsePayload(ctx.Body())
	if err != nil {
		c.logger.Warn("webhook", "unparseable webhook payload", map[string]interface{}{
			"error": err.Error(),
		})
		// Still 200: Meta retries aggressively on errors and the payload
		// won't get better.
		return ctx.JSON(serverutils.SuccessResponse[any]("ignored", nil))
	}

	for _, event := range inboundEvents {
		payload, err := json.Marshal(event)
		if err != nil {
			continue
		}
		if err := c.publisherService.Publish(ctx.Context(), payload); err != nil {
			c.logger.Error("webhook", "failed to publish inbound event", map[string]interface{}{
				"message_id": event.MessageId,
				"error":      err.Error(),
			})
		}
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("received", nil))
}
