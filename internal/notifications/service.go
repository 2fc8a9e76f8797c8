package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"marquee/internal/config"
)

const userAgent = "Marquee-Go/0.1.0"

// Service defines the notification surface exposed to pipeline components.
type Service interface {
	NotifyScheduleRefreshed(ctx context.Context, movies, showtimes int) error
	NotifyRefreshFailed(ctx context.Context, err error) error
	NotifyCalendarExported(ctx context.Context, movies, events int) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:      topic,
		client:        &http.Client{Timeout: timeout},
		sendRefreshes: cfg.Notifications.Refresh,
		sendErrors:    cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint      string
	client        *http.Client
	sendRefreshes bool
	sendErrors    bool
}

func (n *ntfyService) NotifyScheduleRefreshed(ctx context.Context, movies, showtimes int) error {
	if !n.sendRefreshes {
		return nil
	}
	data := payload{
		title:   "Marquee - Schedule Refreshed",
		message: fmt.Sprintf("Fetched %d movies with %d showtimes", movies, showtimes),
		tags:    []string{"marquee", "schedule", "refreshed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRefreshFailed(ctx context.Context, err error) error {
	if !n.sendErrors {
		return nil
	}
	message := "Schedule refresh failed: unknown"
	if err != nil {
		message = fmt.Sprintf("Schedule refresh failed: %s", strings.TrimSpace(err.Error()))
	}
	data := payload{
		title:    "Marquee - Error",
		message:  message,
		tags:     []string{"marquee", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyCalendarExported(ctx context.Context, movies, events int) error {
	if !n.sendRefreshes {
		return nil
	}
	data := payload{
		title:   "Marquee - Calendar Exported",
		message: fmt.Sprintf("Exported %d events for %d movies", events, movies),
		tags:    []string{"marquee", "calendar", "exported"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Marquee - Test",
		message:  "Notification system test",
		tags:     []string{"marquee", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyScheduleRefreshed(context.Context, int, int) error { return nil }
func (noopService) NotifyRefreshFailed(context.Context, error) error        { return nil }
func (noopService) NotifyCalendarExported(context.Context, int, int) error  { return nil }
func (noopService) TestNotification(context.Context) error                  { return nil }
