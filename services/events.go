package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/joanie-store/storefront/models"
	awspkg "github.com/joanie-store/storefront/pkg/aws"

	"go.uber.org/zap"
)

// MetricsRecorder is the subset of the CloudWatch client the services use.
type MetricsRecorder interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

var eventMetrics = map[string]string{
	models.EventCartItemAdded:       awspkg.MetricCartItemsAdded,
	models.EventCartItemUpdated:     awspkg.MetricCartItemsUpdated,
	models.EventCartItemRemoved:     awspkg.MetricCartItemsRemoved,
	models.EventWishlistItemAdded:   awspkg.MetricWishlistAdded,
	models.EventWishlistItemRemoved: awspkg.MetricWishlistRemoved,
}

// EventPublisher announces cart and wishlist mutations. Publishing is best
// effort: a failure is logged and counted but never fails the mutation.
// A nil *EventPublisher publishes nothing.
type EventPublisher struct {
	sns      awspkg.SNSPublisher
	topicArn string
	metrics  MetricsRecorder
	logger   *zap.Logger
}

func NewEventPublisher(sns awspkg.SNSPublisher, topicArn string, metrics MetricsRecorder, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{sns: sns, topicArn: topicArn, metrics: metrics, logger: logger}
}

func (p *EventPublisher) Publish(ctx context.Context, event models.StorefrontEvent) {
	if p == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if name, ok := eventMetrics[event.EventType]; ok {
		p.record(ctx, name)
	}

	if p.sns == nil || p.topicArn == "" {
		p.logger.Debug("SNS not configured, skipping event", zap.String("event_type", event.EventType))
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.String("event_type", event.EventType), zap.Error(err))
		return
	}
	if err := p.sns.Publish(ctx, p.topicArn, event.EventType, body); err != nil {
		p.logger.Warn("Failed to publish event",
			zap.String("event_type", event.EventType),
			zap.String("user_id", event.UserID),
			zap.Error(err))
		p.record(ctx, awspkg.MetricEventPublishFail)
		return
	}
	p.logger.Debug("Event published", zap.String("event_type", event.EventType), zap.String("user_id", event.UserID))
}

func (p *EventPublisher) record(ctx context.Context, name string) {
	if p.metrics == nil {
		return
	}
	if err := p.metrics.RecordCount(ctx, name, map[string]string{"Service": "storefront"}); err != nil {
		p.logger.Debug("Failed to record metric", zap.String("metric", name), zap.Error(err))
	}
}
