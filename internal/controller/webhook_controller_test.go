package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (r *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
	return nil
}

type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error                                                  { return nil }
func (testLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

func setupWebhookApp(publisher *recordingPublisher) *fiber.App {
	app := fiber.New()
	ctrl := NewWebhookController(publisher, "secret-token", testLogger{})
	ctrl.RegisterRoutes(app)
	return app
}

func TestWebhookVerifySuccess(t *testing.T) {
	app := setupWebhookApp(&recordingPublisher{})

	req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "12345", string(body))
}

func TestWebhookVerifyWrongToken(t *testing.T) {
	app := setupWebhookApp(&recordingPublisher{})

	req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestWebhookVerifyMissingChallenge(t *testing.T) {
	app := setupWebhookApp(&recordingPublisher{})

	req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=secret-token", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestWebhookReceivePublishesEvents(t *testing.T) {
	publisher := &recordingPublisher{}
	app := setupWebhookApp(publisher)

	body := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"changes": [{
				"value": {
					"contacts": [{"wa_id": "15551234567", "profile": {"name": "Dana"}}],
					"messages": [{"id": "wamid.1", "from": "15551234567", "type": "text", "text": {"body": "hi"}}]
				}
			}]
		}]
	}`

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	assert.Len(t, publisher.payloads, 1)
	assert.Contains(t, string(publisher.payloads[0]), "wamid.1")
}

func TestWebhookReceiveMalformedBodyStill200(t *testing.T) {
	publisher := &recordingPublisher{}
	app := setupWebhookApp(publisher)

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, publisher.payloads)
}
