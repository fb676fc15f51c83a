package telegram

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/config"
)

// RegisterWebhook points the Bot API at the configured public URL so
// Telegram delivers updates to this process.
func RegisterWebhook(cfg *config.Config) error {
	type setWebhookResponse struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}

	client := resty.New().SetBaseURL(fmt.Sprintf("https://api.telegram.org/bot%s", cfg.TelegramToken))

	resp, err := client.R().
		SetQueryParams(map[string]string{
			"url":             cfg.WebhookURL,
			"allowed_updates": `["message"]`,
		}).
		SetResult(&setWebhookResponse{}).
		Post("/setWebhook")
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d %s", resp.StatusCode(), string(resp.Body()))
	}

	if result := resp.Result().(*setWebhookResponse); !result.OK {
		return fmt.Errorf("setWebhook rejected: %s", result.Description)
	}

	return nil
}
