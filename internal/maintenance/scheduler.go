package maintenance

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -destination=../mocks/mock_cycle_runner.go -package=mocks . CycleRunner

// DefaultInterval is the time between scheduled maintenance cycles.
const DefaultInterval = time.Hour

// Cycle triggers.
const (
	TriggerStartup  = "startup"
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
	TriggerEvent    = "event"
)

// ErrCycleInProgress is returned when a cycle is requested while another one is running.
var ErrCycleInProgress = errors.New("maintenance cycle already in progress")

// CycleRunner executes one maintenance run. *Reconciler implements it.
type CycleRunner interface {
	RunMaintenance(ctx context.Context) (MaintenanceResult, error)
}

// ReportSink receives the report of every finished cycle.
type ReportSink interface {
	PublishCycleReport(ctx context.Context, report CycleReport) error
}

// State is the lifecycle state of a Scheduler.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// CycleReport describes one finished maintenance cycle.
type CycleReport struct {
	Trigger    string            `json:"trigger"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Attempts   int               `json:"attempts"`
	Result     MaintenanceResult `json:"result"`
	Error      string            `json:"error,omitempty"`
}

// Succeeded reports whether the cycle finished without error.
func (r CycleReport) Succeeded() bool { return r.Error == "" }

// Status is a point-in-time view of the scheduler.
type Status struct {
	State           string       `json:"state"`
	Interval        string       `json:"interval"`
	CycleInProgress bool         `json:"cycle_in_progress"`
	CyclesRun       int64        `json:"cycles_run"`
	LastCycle       *CycleReport `json:"last_cycle,omitempty"`
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval sets the time between scheduled cycles.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithRetryPolicy overrides the per-cycle retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(s *Scheduler) { s.retry = p }
}

// WithLocker adds a cross-instance lock on top of the in-process cycle guard.
func WithLocker(l Locker) Option {
	return func(s *Scheduler) { s.locker = l }
}

// WithReportSink publishes every cycle report to sink.
func WithReportSink(sink ReportSink) Option {
	return func(s *Scheduler) { s.sink = sink }
}

// Scheduler runs maintenance cycles on a fixed interval. It is created once per process and
// owns its timer, stop channel and cycle guard. At most one cycle runs at a time.
type Scheduler struct {
	runner   CycleRunner
	interval time.Duration
	retry    RetryPolicy
	locker   Locker
	sink     ReportSink
	logger   *zap.Logger

	mu        sync.Mutex
	state     State
	stopCh    chan struct{}
	lastCycle *CycleReport
	cyclesRun int64

	wg      sync.WaitGroup
	inCycle atomic.Bool
}

// NewScheduler creates a Scheduler in the idle state.
func NewScheduler(runner CycleRunner, logger *zap.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		runner:   runner,
		interval: DefaultInterval,
		retry:    DefaultRetryPolicy(),
		logger:   logger,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start arms the scheduler. The first cycle runs immediately on the scheduler's worker
// goroutine; later cycles follow every interval. Calling Start while running is a no-op.
// A stopped scheduler stays stopped; build a new one to resume.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateRunning:
		s.logger.Info("maintenance scheduler already running")
		return
	case StateStopped:
		s.logger.Warn("maintenance scheduler is stopped, ignoring start")
		return
	}

	s.state = StateRunning
	s.stopCh = make(chan struct{})
	s.wg.Add(1)
	go s.run(s.stopCh)

	s.logger.Info("maintenance scheduler started", zap.Duration("interval", s.interval))
}

// Stop disarms the timer. A cycle already in flight, including its retry backoff, runs to
// completion. Calling Stop when not running is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}

	s.state = StateStopped
	close(s.stopCh)
	s.logger.Info("maintenance scheduler stopped")
}

// Wait blocks until the worker goroutine has exited, including any cycle it was running.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns a snapshot of the scheduler and its most recent cycle.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		State:           s.state.String(),
		Interval:        s.interval.String(),
		CycleInProgress: s.inCycle.Load(),
		CyclesRun:       s.cyclesRun,
	}
	if s.lastCycle != nil {
		last := *s.lastCycle
		status.LastCycle = &last
	}
	return status
}

// TriggerNow runs a cycle on the caller's goroutine, outside the regular schedule. It
// returns ErrCycleInProgress when another cycle holds the guard. Cancelling ctx does not
// interrupt the cycle once started.
func (s *Scheduler) TriggerNow(ctx context.Context, trigger string) (MaintenanceResult, error) {
	if trigger == "" {
		trigger = TriggerManual
	}
	return s.runCycle(context.WithoutCancel(ctx), trigger)
}

func (s *Scheduler) run(stop <-chan struct{}) {
	defer s.wg.Done()

	s.runCycle(context.Background(), TriggerStartup)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			s.runCycle(context.Background(), TriggerSchedule)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context, trigger string) (MaintenanceResult, error) {
	if !s.inCycle.CompareAndSwap(false, true) {
		s.logger.Warn("maintenance cycle already in progress, skipping", zap.String("trigger", trigger))
		return MaintenanceResult{}, ErrCycleInProgress
	}
	defer s.inCycle.Store(false)

	if s.locker != nil {
		release, acquired, err := s.locker.TryLock(ctx)
		switch {
		case err != nil:
			s.logger.Warn("maintenance lock unavailable, relying on local guard",
				zap.String("trigger", trigger),
				zap.Error(err),
			)
		case !acquired:
			s.logger.Info("maintenance cycle held by another instance, skipping", zap.String("trigger", trigger))
			return MaintenanceResult{}, ErrCycleInProgress
		default:
			defer release()
		}
	}

	report := CycleReport{Trigger: trigger, StartedAt: time.Now().UTC()}

	var result MaintenanceResult
	attempts, err := retry(ctx, s.retry, func(ctx context.Context) error {
		var runErr error
		result, runErr = s.runner.RunMaintenance(ctx)
		return runErr
	}, func(attempt int, err error, wait time.Duration) {
		s.logger.Warn("maintenance attempt failed, retrying",
			zap.String("trigger", trigger),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.retry.MaxAttempts),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
	})

	report.FinishedAt = time.Now().UTC()
	report.Attempts = attempts
	report.Result = result

	if err != nil {
		report.Error = err.Error()
		s.logger.Error("maintenance cycle failed",
			zap.String("trigger", trigger),
			zap.Int("attempts", attempts),
			zap.Bool("transient", IsTransientError(err)),
			zap.Error(err),
		)
	} else {
		s.logger.Info("maintenance cycle completed",
			zap.String("trigger", trigger),
			zap.Int("attempts", attempts),
			zap.Int("expired_promotions", result.ExpiredPromotions),
			zap.Int("repaired_bookings", result.RepairedBookings),
			zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
		)
	}

	s.record(report)
	s.publish(ctx, report)

	return result, err
}

func (s *Scheduler) record(report CycleReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCycle = &report
	s.cyclesRun++
}

func (s *Scheduler) publish(ctx context.Context, report CycleReport) {
	if s.sink == nil {
		return
	}
	if err := s.sink.PublishCycleReport(ctx, report); err != nil {
		s.logger.Warn("failed to publish maintenance report", zap.Error(err))
	}
}
