// Package events delivers share notifications to owning domains.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/heartmarshall/domainshare-backend/internal/adapter/httpclient"
	"github.com/heartmarshall/domainshare-backend/internal/config"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

type eventBody struct {
	Type           string    `json:"type"`
	OwnerDomainID  string    `json:"ownerDomainId"`
	ResourceKey    string    `json:"resourceKey"`
	TargetDomainID string    `json:"targetDomainId"`
	OwnerNamespace string    `json:"ownerNamespace"`
	Mode           string    `json:"mode"`
	OccurredAt     time.Time `json:"occurredAt"`
}

const eventTypeShareGranted = "share.granted"

// WebhookPublisher posts events to the owning domain's event endpoint.
type WebhookPublisher struct {
	http *httpclient.Client
	log  *slog.Logger
}

// NewWebhookPublisher creates a publisher from the events configuration.
func NewWebhookPublisher(cfg config.EventsConfig, logger *slog.Logger, opts ...httpclient.Option) *WebhookPublisher {
	log := logger.With("adapter", "events")
	return &WebhookPublisher{
		http: httpclient.New(cfg.BaseURL, cfg.Token, cfg.Timeout, log, opts...),
		log:  log,
	}
}

// PublishShareGranted sends the event once (with the client's single retry).
func (p *WebhookPublisher) PublishShareGranted(ctx context.Context, ev domain.ShareGrantedEvent) error {
	path := fmt.Sprintf("/domains/%s/events", url.PathEscape(ev.OwnerDomainID))
	if err := p.http.Do(ctx, http.MethodPost, path, toBody(ev), nil); err != nil {
		return fmt.Errorf("publish share granted: %w", err)
	}
	return nil
}

// LogPublisher writes events to the log instead of delivering them.
type LogPublisher struct {
	log *slog.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{log: logger.With("adapter", "events")}
}

// PublishShareGranted logs the event.
func (p *LogPublisher) PublishShareGranted(ctx context.Context, ev domain.ShareGrantedEvent) error {
	p.log.InfoContext(ctx, eventTypeShareGranted,
		slog.String("owner", ev.OwnerDomainID),
		slog.String("resource", ev.ResourceKey),
		slog.String("target", ev.TargetDomainID),
		slog.String("namespace", ev.OwnerNamespace),
		slog.String("mode", ev.Mode.String()),
	)
	return nil
}

func toBody(ev domain.ShareGrantedEvent) eventBody {
	return eventBody{
		Type:           eventTypeShareGranted,
		OwnerDomainID:  ev.OwnerDomainID,
		ResourceKey:    ev.ResourceKey,
		TargetDomainID: ev.TargetDomainID,
		OwnerNamespace: ev.OwnerNamespace,
		Mode:           ev.Mode.String(),
		OccurredAt:     ev.OccurredAt,
	}
}
