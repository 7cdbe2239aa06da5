package corpus

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/pressfeed/newsearch/pkg/config"
)

// UpdateEvent is published to the article-update topic whenever the
// upstream corpus changes.
type UpdateEvent struct {
	SectionKey string `json:"sectionKey"`
	ArticleID  string `json:"articleId"`
	Action     string `json:"action"`
}

// RefreshFunc is invoked for each update event, typically bound to the
// engine's Refresh.
type RefreshFunc func(ctx context.Context, event UpdateEvent) error

// Watcher consumes article-update events from Kafka and triggers an index
// refresh for each one. It is the push-based complement to on-demand
// refresh: the corpus owner announces changes instead of the frontend
// polling for them.
type Watcher struct {
	reader  *kafka.Reader
	refresh RefreshFunc
	logger  *slog.Logger
}

// NewWatcher creates a Watcher on the configured article-update topic.
func NewWatcher(cfg config.KafkaConfig, refresh RefreshFunc) *Watcher {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.ArticleUpdateTopic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    1e3,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return &Watcher{
		reader:  r,
		refresh: refresh,
		logger:  slog.Default().With("component", "corpus-watcher", "topic", cfg.ArticleUpdateTopic),
	}
}

// Start enters the consume loop, refreshing on each event until ctx is
// cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("corpus watcher started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("corpus watcher stopping", "reason", ctx.Err())
			return w.reader.Close()
		default:
		}

		msg, err := w.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.logger.Error("failed to fetch message", "error", err)
			continue
		}

		var event UpdateEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			w.logger.Error("malformed update event, skipping",
				"offset", msg.Offset,
				"error", err,
			)
		} else if err := w.refresh(ctx, event); err != nil {
			w.logger.Error("refresh after update event failed",
				"article_id", event.ArticleID,
				"action", event.Action,
				"error", err,
			)
			continue
		}
		if err := w.reader.CommitMessages(ctx, msg); err != nil {
			w.logger.Error("failed to commit message",
				"offset", msg.Offset,
				"error", err,
			)
		}
	}
}

// Close closes the underlying Kafka reader.
func (w *Watcher) Close() error {
	return w.reader.Close()
}
