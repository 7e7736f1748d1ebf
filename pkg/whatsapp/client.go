package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sender delivers outbound text messages to a user.
type Sender interface {
	SendText(ctx context.Context, to, body string) error
}

// MediaFetcher downloads inbound media by its Cloud API media id.
type MediaFetcher interface {
	FetchMedia(ctx context.Context, mediaId string) ([]byte, error)
}

// Client talks to the WhatsApp Cloud API (Graph API).
type Client struct {
	Token         string
	PhoneNumberId string
	BaseURL       string
	HttpClient    *http.Client
}

var (
	_ Sender       = &Client{}
	_ MediaFetcher = &Client{}
)

func NewClient(token, phoneNumberId string) *Client {
	return &Client{
		Token:         token,
		PhoneNumberId: phoneNumberId,
		BaseURL:       "https://graph.facebook.com/v18.0",
		HttpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type sendTextRequest struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             sendTextBody `json:"text"`
}

type sendTextBody struct {
	PreviewUrl bool   `json:"preview_url"`
	Body       string `json:"body"`
}

func (c *Client) SendText(ctx context.Context, to, body string) error {
	payload := sendTextRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text: sendTextBody{
			Body: NormalizeText(body),
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.BaseURL, c.PhoneNumberId)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		resBody, _ := io.ReadAll(res.Body)
		return fmt.Errorf("whatsapp send error: status %d, body: %s", res.StatusCode, string(resBody))
	}

	return nil
}

type mediaInfoResponse struct {
	Url      string `json:"url"`
	MimeType string `json:"mime_type"`
}

// FetchMedia resolves the media id to a download URL, then fetches the
// bytes. Both calls require the bearer token.
func (c *Client) FetchMedia(ctx context.Context, mediaId string) ([]byte, error) {
	infoUrl := fmt.Sprintf("%s/%s", c.BaseURL, mediaId)
	req, err := http.NewRequestWithContext(ctx, "GET", infoUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("create media info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	res, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch media info: %w", err)
	}
	defer res.Body.Close()

	infoBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read media info: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media info error: status %d, body: %s", res.StatusCode, string(infoBody))
	}

	var info mediaInfoResponse
	if err := json.Unmarshal(infoBody, &info); err != nil {
		return nil, fmt.Errorf("unmarshal media info: %w", err)
	}

	dlReq, err := http.NewRequestWithContext(ctx, "GET", info.Url, nil)
	if err != nil {
		return nil, fmt.Errorf("create media download request: %w", err)
	}
	dlReq.Header.Set("Authorization", "Bearer "+c.Token)

	dlRes, err := c.HttpClient.Do(dlReq)
	if err != nil {
		return nil, fmt.Errorf("download media: %w", err)
	}
	defer dlRes.Body.Close()

	if dlRes.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media download error: status %d", dlRes.StatusCode)
	}

	return io.ReadAll(dlRes.Body)
}
