// Package scheduler envuelve gocron para jobs periódicos (renovaciones).
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"catbox/internal/platform/logger"
)

type Scheduler struct {
	s   gocron.Scheduler
	log logger.Logger
}

func New(log logger.Logger) (*Scheduler, error) {
	if log == nil {
		log = logger.Nop()
	}
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(gocronLogger{log: log.With(map[string]any{"component": "scheduler"})}),
	)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{s: s, log: log}, nil
}

// AddCronJob registra job con una expresión cron de 5 campos.
// Cada ejecución recibe un contexto con timeout; no se solapan ejecuciones del mismo job.
func (s *Scheduler) AddCronJob(name, cronExpr string, timeout time.Duration, job func(ctx context.Context) error) error {
	task := func() {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		start := time.Now()
		if err := job(ctx); err != nil {
			s.log.Error("job failed", map[string]any{"job": name, "err": err})
			return
		}
		s.log.Info("job done", map[string]any{"job": name, "duration_ms": time.Since(start).Milliseconds()})
	}

	_, err := s.s.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule job %q: %w", name, err)
	}

	s.log.Info("job scheduled", map[string]any{"job": name, "cron": cronExpr})
	return nil
}

func (s *Scheduler) Start() { s.s.Start() }

func (s *Scheduler) Shutdown() error {
	if err := s.s.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	return nil
}

// gocronLogger adapta logger.Logger a gocron.Logger (args clave/valor).
type gocronLogger struct {
	log logger.Logger
}

func (l gocronLogger) Debug(msg string, args ...any) { l.log.Debug(msg, kv(args)) }
func (l gocronLogger) Info(msg string, args ...any)  { l.log.Info(msg, kv(args)) }
func (l gocronLogger) Warn(msg string, args ...any)  { l.log.Warn(msg, kv(args)) }
func (l gocronLogger) Error(msg string, args ...any) { l.log.Error(msg, kv(args)) }

func kv(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]any, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 >= len(args) {
			out["extra"] = args[i]
			break
		}
		out[key] = args[i+1]
	}
	return out
}
