package infrastructure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"davebot/internal/interfaces"

	"github.com/rs/zerolog"
)

const graphAPIBase = "https://graph.facebook.com/v19.0"

// WhatsAppBusinessClient sends text messages through the WhatsApp Cloud
// API. It is fire-and-forget from the caller's perspective: transport
// failures are logged here and the returned error is informational only.
type WhatsAppBusinessClient struct {
	accessToken   string
	phoneNumberID string
	baseURL       string
	httpClient    *http.Client
	log           zerolog.Logger
}

func NewWhatsAppBusinessClient(accessToken, phoneNumberID string, log zerolog.Logger) interfaces.Messenger {
	return &WhatsAppBusinessClient{
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		baseURL:       graphAPIBase,
		httpClient:    http.DefaultClient,
		log:           log,
	}
}

func (w *WhatsAppBusinessClient) SendMessage(to, content string) error {
	if w.accessToken == "" || w.phoneNumberID == "" {
		w.log.Error().Msg("WA_ACCESS_TOKEN or WA_PHONE_ID not configured, dropping outbound message")
		return fmt.Errorf("whatsapp credentials not configured")
	}
	if content == "" {
		// Nothing to send; the Cloud API rejects empty text bodies.
		return nil
	}

	url := fmt.Sprintf("%s/%s/messages", w.baseURL, w.phoneNumberID)
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text": map[string]string{
			"body": content,
		},
	}
	data, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		w.log.Error().Err(err).Str("to", to).Msg("WhatsApp send failed")
		return fmt.Errorf("send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		w.log.Error().
			Int("status", resp.StatusCode).
			Str("to", to).
			Str("response", string(body)).
			Msg("WhatsApp API rejected message")
		return fmt.Errorf("whatsapp API status %d", resp.StatusCode)
	}

	w.log.Info().Str("to", to).Msg("reply sent")
	return nil
}
