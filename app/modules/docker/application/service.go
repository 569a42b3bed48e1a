// Package dockerservice relays Docker Hub push events to Discord and
// acknowledges them back to the registry.
package dockerservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel/trace"

	dockerdomain "github.com/ZRunner/Axobot-API-V2/app/modules/docker/domain"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// embedColor is the Discord blurple used on push embeds.
const embedColor = 0x7289DA

// callbackURLPrefix is the only host acknowledgements may be posted to.
// Docker Hub supplies the callback URL in the payload, so anything else is
// a forgery attempt.
const callbackURLPrefix = "https://registry.hub.docker.com/"

// ErrInvalidCallbackURL marks callback URLs pointing outside Docker Hub.
var ErrInvalidCallbackURL = fmt.Errorf("invalid callback domain")

// WebhookSender posts a prepared message through a Discord webhook.
type WebhookSender interface {
	ExecuteWebhook(ctx context.Context, webhookID types.Snowflake, webhookToken string, params *discordgo.WebhookParams) error
}

// Service relays push events to Discord.
type Service struct {
	sender     WebhookSender
	httpClient *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewService creates a Service. The http client is injected so the Docker
// Hub acknowledgement can be tested without the network.
func NewService(sender WebhookSender, httpClient *http.Client, logger *slog.Logger, tracer trace.Tracer) *Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Service{
		sender:     sender,
		httpClient: httpClient,
		logger:     logger,
		tracer:     tracer,
	}
}

// BuildPushEmbed renders a push event as a Discord embed.
func BuildPushEmbed(event *dockerdomain.PushEvent) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("New push on %s:%s", event.Repository.RepoName, event.PushData.Tag),
		Description: fmt.Sprintf("Pushed by %s\n\nLink: %s", event.PushData.Pusher, event.Repository.RepoURL),
		Color:       embedColor,
	}
}

// ProcessPushNotification posts the push embed to the Discord webhook and
// acknowledges the event back to Docker Hub.
func (s *Service) ProcessPushNotification(ctx context.Context, webhookID types.Snowflake, webhookToken string, event *dockerdomain.PushEvent) error {
	ctx, span := s.tracer.Start(ctx, "ProcessDockerPushNotification")
	defer span.End()

	err := s.sender.ExecuteWebhook(ctx, webhookID, webhookToken, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{BuildPushEmbed(event)},
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("relaying push notification: %w", err)
	}

	if err := s.acknowledgeCallback(ctx, event.CallbackURL); err != nil {
		span.RecordError(err)
		return err
	}

	s.logger.InfoContext(ctx, "docker push relayed",
		attr.String("repository", event.Repository.RepoName),
		attr.String("tag", event.PushData.Tag),
	)
	return nil
}

// acknowledgeCallback confirms handling to Docker Hub through the
// payload's callback URL.
func (s *Service) acknowledgeCallback(ctx context.Context, callbackURL string) error {
	if !strings.HasPrefix(callbackURL, callbackURLPrefix) {
		return ErrInvalidCallbackURL
	}

	body, err := json.Marshal(map[string]string{
		"state":       "success",
		"description": "The webhook has been forwarded to Discord",
		"context":     "Discord webhook forwarder",
	})
	if err != nil {
		return fmt.Errorf("encoding callback body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, callbackURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building callback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting docker hub callback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("docker hub callback rejected with status %d", resp.StatusCode)
	}
	return nil
}
