package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: http.DefaultClient,
	}
}

// Send posts one text message to the WhatsApp API. When mediaURL is set the
// message goes out as an image with the text as caption. The result is always
// a SendResult; see dto.go for the failure contract.
func (c *Client) Send(ctx context.Context, to, text, mediaURL string) SendResult {
	if c.cfg.AccessToken == "" || c.cfg.PhoneID == "" {
		log.Println("⚠️ WhatsApp: ACCESS_TOKEN or PHONE_ID not configured")
		return SendResult{Error: "whatsapp client not configured"}
	}

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
	}
	if mediaURL != "" {
		payload["type"] = "image"
		payload["image"] = map[string]string{
			"link":    mediaURL,
			"caption": text,
		}
	} else {
		payload["type"] = "text"
		payload["text"] = map[string]string{
			"body": text,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return SendResult{Error: fmt.Sprintf("failed to serialize payload: %v", err)}
	}

	url := fmt.Sprintf("%s/%s/messages", c.cfg.BaseURL, c.cfg.PhoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return SendResult{Error: fmt.Sprintf("failed to build request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ WhatsApp: request failed for %s: %v", to, err)
		return SendResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var result SendMessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil && len(respBody) > 0 {
		log.Printf("❌ WhatsApp: unparseable response (%d): %s", resp.StatusCode, string(respBody))
		return SendResult{Error: fmt.Sprintf("whatsapp api status %d", resp.StatusCode)}
	}

	if result.Error != nil {
		log.Printf("❌ WhatsApp: API error for %s: %s (code %d)", to, result.Error.Message, result.Error.Code)
		return SendResult{Error: result.Error.Message}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("❌ WhatsApp: API returned status %d: %s", resp.StatusCode, string(respBody))
		return SendResult{Error: fmt.Sprintf("whatsapp api status %d", resp.StatusCode)}
	}

	log.Printf("✅ WhatsApp: message sent to %s", to)
	return SendResult{Success: true, Data: &result}
}
