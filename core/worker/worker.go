package worker

import (
	"context"
	"encoding/json"

	"bookmeet-api/core/logger"

	"github.com/hibiken/asynq"
)

// Task types handled by the background worker.
const (
	TypeBookingCompletedSweep = "booking:sweep_completed"
	TypeBookingICSUpload      = "booking:ics_upload"
)

// ICSUploadPayload is the payload for TypeBookingICSUpload.
type ICSUploadPayload struct {
	BookingID int `json:"booking_id"`
}

// Worker owns the asynq client (for enqueueing), server (for processing) and
// scheduler (for the periodic completed-bookings sweep).
type Worker struct {
	client    *asynq.Client
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

type WorkerConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
}

func New(cfg WorkerConfig) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	return &Worker{
		client: asynq.NewClient(redisOpt),
		server: asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: concurrency,
		}),
		scheduler: asynq.NewScheduler(redisOpt, nil),
		mux:       asynq.NewServeMux(),
	}
}

// HandleFunc registers a task handler. Call before Start.
func (w *Worker) HandleFunc(taskType string, handler func(context.Context, *asynq.Task) error) {
	w.mux.HandleFunc(taskType, handler)
}

// EnqueueICSUpload queues calendar-invite generation for a booking.
func (w *Worker) EnqueueICSUpload(ctx context.Context, bookingID int) error {
	payload, err := json.Marshal(ICSUploadPayload{BookingID: bookingID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeBookingICSUpload, payload)
	if _, err := w.client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		logger.Error("Worker:EnqueueICSUpload", "error", err, "booking_id", bookingID)
		return err
	}
	return nil
}

// Start launches the task server and registers the periodic sweep that marks
// past confirmed bookings as completed. Non-blocking.
func (w *Worker) Start() error {
	if _, err := w.scheduler.Register("@every 10m", asynq.NewTask(TypeBookingCompletedSweep, nil)); err != nil {
		return err
	}

	go func() {
		if err := w.server.Run(w.mux); err != nil {
			logger.Error("Worker:Server:Run", "error", err)
		}
	}()

	go func() {
		if err := w.scheduler.Run(); err != nil {
			logger.Error("Worker:Scheduler:Run", "error", err)
		}
	}()

	logger.Info("Background worker started")
	return nil
}

// Shutdown stops task processing and closes the enqueue client.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	if err := w.client.Close(); err != nil {
		logger.Error("Worker:Shutdown:CloseClient", "error", err)
	}
}
