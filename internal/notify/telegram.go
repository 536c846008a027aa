package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BrunoTulio/logr"
)

const telegramAPI = "https://api.telegram.org"

type TelegramNotifier struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
	log      logr.Logger
}

func NewTelegramNotifier(botToken, chatID string, log logr.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  telegramAPI,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

func (t *TelegramNotifier) Notify(ctx context.Context, event Event) error {
	text := fmt.Sprintf("%s\n\n%s", event.Title(), event.Summary())
	if tail := event.OutputTail(); tail != "" && !event.Success {
		text += "\n\nOutput:\n" + tail
	}
	return t.sendMessage(ctx, text)
}

func (t *TelegramNotifier) sendMessage(ctx context.Context, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.botToken)

	body, err := json.Marshal(map[string]string{
		"chat_id": t.chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("sendMessage: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		t.log.Errorf("Telegram failed: %d", resp.StatusCode)
		return fmt.Errorf("telegram API returned status %s", resp.Status)
	}

	return nil
}
