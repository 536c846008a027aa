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

type DiscordNotifier struct {
	webhookURL string
	log        logr.Logger
	client     *http.Client
}

func NewDiscord(webhookURL string, log logr.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: webhookURL,
		log:        log,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (d *DiscordNotifier) Notify(ctx context.Context, event Event) error {
	msg := fmt.Sprintf("**%s** `%s`", event.Title(), event.Summary())
	if tail := event.OutputTail(); tail != "" && !event.Success {
		msg += fmt.Sprintf("\n```\n%s\n```", tail)
	}
	return d.send(ctx, msg)
}

func (d *DiscordNotifier) send(ctx context.Context, msg string) error {
	type Payload struct {
		Content string `json:"content"`
	}
	jsonData, err := json.Marshal(Payload{Content: msg})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		d.log.Errorf("Discord webhook failed: %d", resp.StatusCode)
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	return nil
}
