package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/landscape-review/internal/domain"
	"github.com/landscape-review/internal/domain/repository"
	"github.com/landscape-review/internal/metrics"
	"github.com/landscape-review/internal/pkg/errors"
	"github.com/landscape-review/internal/worker"
)

const (
	workerName      = "landscape-analysis"
	maxBatchSize    = 10                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second            // пауза после ошибки чтения
	publishBackoff  = 200 * time.Millisecond
)

// LocationResolver - резолвинг локации по тексту или координате
type LocationResolver interface {
	ResolveByText(ctx context.Context, keyword string) (*domain.ResolvedLocation, error)
	ResolveByCoordinate(ctx context.Context, coord domain.Coordinate) (*domain.ResolvedLocation, error)
}

// LocationAnalyzer - анализ слоев для резолвленной локации
type LocationAnalyzer interface {
	AnalyzeLocation(ctx context.Context, loc *domain.ResolvedLocation, radiusKm *float64, layers []domain.LayerRef) (*domain.AnalysisResult, error)
}

// Worker обрабатывает stream:analysis:request и публикует результаты в stream:analysis:done
type Worker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	locations  LocationResolver
	analyzer   LocationAnalyzer
	maxRetries int
}

// NewWorker создает новый Worker
func NewWorker(
	streamRepo repository.StreamRepository,
	locations LocationResolver,
	analyzer LocationAnalyzer,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *Worker {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Worker{
		BaseWorker: worker.NewBaseWorker(workerName, consumerGroup, logger),
		streamRepo: streamRepo,
		locations:  locations,
		analyzer:   analyzer,
		maxRetries: maxRetries,
	}
}

// Start запускает воркер
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting analysis worker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamAnalysisRequest, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
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
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Pause(ctx, errorSleep)
			continue
		}

		if processed == 0 {
			w.Pause(ctx, emptyQueueSleep)
		}
	}
}

// ProcessBatch читает и обрабатывает batch сообщений.
// Возвращает количество прочитанных сообщений.
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamAnalysisRequest,
		w.ConsumerGroup(),
		w.ConsumerName(),
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	ackIDs := make([]string, 0, len(messages))
	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			metrics.WorkerMessagesTotal.WithLabelValues(workerName, "malformed").Inc()
			// битое сообщение подтверждаем, чтобы не застревало
			ackIDs = append(ackIDs, msg.ID)
			continue
		}

		done := w.handle(ctx, event)
		if err := w.publish(ctx, done); err != nil {
			// не подтверждаем: сообщение останется в pending
			logger.Error("Failed to publish done event",
				zap.String("request_id", event.RequestID.String()),
				zap.Error(err))
			metrics.WorkerMessagesTotal.WithLabelValues(workerName, metrics.OutcomeError).Inc()
			continue
		}

		outcome := metrics.OutcomeSuccess
		if done.Error != "" {
			outcome = metrics.OutcomeNotFound
		}
		metrics.WorkerMessagesTotal.WithLabelValues(workerName, outcome).Inc()
		ackIDs = append(ackIDs, msg.ID)
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamAnalysisRequest, w.ConsumerGroup(), ackIDs); err != nil {
		// Не критично - сообщения будут переобработаны
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	return len(messages), nil
}

// handle резолвит локацию и запускает анализ; ошибки попадают в поле Error
func (w *Worker) handle(ctx context.Context, event *domain.AnalysisRequestEvent) *domain.AnalysisDoneEvent {
	done := &domain.AnalysisDoneEvent{RequestID: event.RequestID}

	var (
		loc *domain.ResolvedLocation
		err error
	)
	switch {
	case event.HasCoordinates():
		loc, err = w.locations.ResolveByCoordinate(ctx, domain.Coordinate{
			Lat: *event.Latitude,
			Lon: *event.Longitude,
		})
	case event.HasKeyword():
		loc, err = w.locations.ResolveByText(ctx, *event.Keyword)
	default:
		err = errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"request": "keyword or lat/lng required",
		})
	}
	if err != nil {
		w.Logger().Info("Location resolution failed",
			zap.String("request_id", event.RequestID.String()),
			zap.Error(err))
		done.Error = err.Error()
		return done
	}
	done.Location = loc.Summary()

	result, err := w.analyzer.AnalyzeLocation(ctx, loc, event.RadiusKm, event.Layers)
	if err != nil {
		w.Logger().Warn("Analysis failed",
			zap.String("request_id", event.RequestID.String()),
			zap.Error(err))
		done.Error = err.Error()
		return done
	}
	done.Result = result

	return done
}

// publish делает до maxRetries повторов публикации результата
func (w *Worker) publish(ctx context.Context, done *domain.AnalysisDoneEvent) error {
	var err error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 && !w.Pause(ctx, publishBackoff) {
			break
		}
		if err = w.streamRepo.PublishToStream(ctx, domain.StreamAnalysisDone, done); err == nil {
			return nil
		}
	}
	return err
}

// parseMessage парсит сообщение из стрима в AnalysisRequestEvent
func parseMessage(msg domain.StreamMessage) (*domain.AnalysisRequestEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing or empty 'data' field")
	}

	var event domain.AnalysisRequestEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
