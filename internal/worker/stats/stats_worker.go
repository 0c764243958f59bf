package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/domain/repository"
	"github.com/geo-directory/internal/pkg/metrics"
	"github.com/geo-directory/internal/worker"
)

const (
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second
	retryBackoff    = 200 * time.Millisecond
)

// Refresher пересчитывает снимок статистики
type Refresher interface {
	RefreshStatistics(ctx context.Context) (*domain.Statistics, error)
}

// StatsWorker читает события изменений коллекций и обновляет снимок
// статистики в кеше. Один пересчёт на пачку событий.
type StatsWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	refresher    Refresher
	consumerName string
	maxRetries   int
	batchSize    int
}

// NewStatsWorker создает новый StatsWorker
func NewStatsWorker(
	streamRepo repository.StreamRepository,
	refresher Refresher,
	stream, consumerGroup string,
	maxRetries, batchSize int,
	logger *zap.Logger,
) *StatsWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &StatsWorker{
		BaseWorker:   worker.NewBaseWorker("stats-refresh", stream, consumerGroup, logger),
		streamRepo:   streamRepo,
		refresher:    refresher,
		consumerName: consumerName,
		maxRetries:   maxRetries,
		batchSize:    batchSize,
	}
}

// Start запускает воркер
func (w *StatsWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting StatsWorker",
		zap.String("stream", w.Stream()),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.Stream(), w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// Снимок при старте, чтобы /stats не ждал первого события
	if _, err := w.refresher.RefreshStatistics(ctx); err != nil {
		logger.Warn("Initial statistics refresh failed", zap.Error(err))
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.ProcessBatch(ctx)
		pause := time.Duration(0)
		switch {
		case err != nil:
			logger.Error("Failed to process batch", zap.Error(err))
			pause = errorSleep
		case processed == 0:
			pause = emptyQueueSleep
		}
		if pause > 0 && !w.Sleep(ctx, pause) {
			continue
		}
	}
}

// ProcessBatch читает пачку событий, пересчитывает статистику и подтверждает
// сообщения. Возвращает количество прочитанных сообщений.
func (w *StatsWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx, w.Stream(), w.ConsumerGroup(), w.consumerName, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	messageIDs := make([]string, 0, len(messages))
	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Invalid change event, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			metrics.ChangeEventsProcessed.WithLabelValues("invalid").Inc()
			// ACK битое сообщение чтобы не застревало
			_ = w.streamRepo.AckMessage(ctx, w.Stream(), w.ConsumerGroup(), msg.ID)
			continue
		}

		logger.Debug("Change event",
			zap.String("kind", event.Kind),
			zap.String("op", string(event.Op)),
			zap.String("key", event.Key.String()))
		messageIDs = append(messageIDs, msg.ID)
	}

	if len(messageIDs) == 0 {
		return len(messages), nil
	}

	if err := w.refresh(ctx); err != nil {
		metrics.ChangeEventsProcessed.WithLabelValues("failed").Add(float64(len(messageIDs)))
		// без ACK сообщения остаются в pending группы
		return len(messages), err
	}

	if err := w.streamRepo.AckMessages(ctx, w.Stream(), w.ConsumerGroup(), messageIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}
	metrics.ChangeEventsProcessed.WithLabelValues("ok").Add(float64(len(messageIDs)))

	logger.Info("Batch processed", zap.Int("events", len(messageIDs)))
	return len(messages), nil
}

// refresh пересчитывает статистику, делая до maxRetries попыток
func (w *StatsWorker) refresh(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if _, err = w.refresher.RefreshStatistics(ctx); err == nil {
			return nil
		}

		w.Logger().Warn("Statistics refresh failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", w.maxRetries),
			zap.Error(err))

		if attempt < w.maxRetries && !w.Sleep(ctx, time.Duration(attempt)*retryBackoff) {
			break
		}
	}
	return fmt.Errorf("refresh statistics after %d attempts: %w", w.maxRetries, err)
}

func parseMessage(msg domain.StreamMessage) (*domain.ChangeEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing 'data' field")
	}

	var event domain.ChangeEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if !event.Valid() {
		return nil, fmt.Errorf("incomplete event")
	}
	return &event, nil
}
