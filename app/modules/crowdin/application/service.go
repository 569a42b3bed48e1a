// Package crowdinservice turns Crowdin webhook events into Discord embeds
// and relays them through the bot's webhook executor.
package crowdinservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	crowdindomain "github.com/ZRunner/Axobot-API-V2/app/modules/crowdin/domain"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// WebhookSender posts a prepared message through a Discord webhook.
type WebhookSender interface {
	ExecuteWebhook(ctx context.Context, webhookID types.Snowflake, webhookToken string, params *discordgo.WebhookParams) error
}

// Service relays Crowdin events to Discord.
type Service struct {
	sender WebhookSender
	logger *slog.Logger
	tracer trace.Tracer
}

// NewService creates a Service.
func NewService(sender WebhookSender, logger *slog.Logger, tracer trace.Tracer) *Service {
	return &Service{
		sender: sender,
		logger: logger,
		tracer: tracer,
	}
}

// ProcessNotification decodes a webhook payload and posts the resulting
// embeds to the target Discord webhook. String events are batched into one
// digest when more than one arrives together; file events each get their
// own embed.
func (s *Service) ProcessNotification(ctx context.Context, webhookID types.Snowflake, webhookToken string, payload []byte) error {
	ctx, span := s.tracer.Start(ctx, "ProcessCrowdinNotification")
	defer span.End()

	events, err := crowdindomain.ParseWebhookPayload(payload)
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(attribute.Int("events", len(events)))

	var stringEvents, fileEvents []crowdindomain.Event
	for _, event := range events {
		if event.IsFileEvent() {
			fileEvents = append(fileEvents, event)
		} else {
			stringEvents = append(stringEvents, event)
		}
	}

	var embeds []*discordgo.MessageEmbed
	switch {
	case len(stringEvents) == 1:
		if embed := buildStringEmbed(&stringEvents[0]); embed != nil {
			embeds = append(embeds, embed)
		}
	case len(stringEvents) > 1:
		embeds = append(embeds, buildBatchDigest(stringEvents))
	}
	for i := range fileEvents {
		if embed := buildFileEmbed(&fileEvents[i]); embed != nil {
			embeds = append(embeds, embed)
		}
	}

	for _, embed := range embeds {
		err := s.sender.ExecuteWebhook(ctx, webhookID, webhookToken, &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{embed},
		})
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("relaying crowdin notification: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "crowdin notification relayed",
		attr.Int("string_events", len(stringEvents)),
		attr.Int("file_events", len(fileEvents)),
	)
	return nil
}
