package stream

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/logger"
	"github.com/vnykmshr/seqflow/pkg/metrics"
)

const tracerName = "github.com/vnykmshr/seqflow/pkg/streaming/stream"

var (
	obsMu      sync.RWMutex
	obsLogger  = zerolog.Nop()
	obsMetrics *metrics.Registry
)

// SetLogger installs the logger used for evaluation events. Evaluations log at debug
// level; failures other than cancellation log at warn level.
func SetLogger(l zerolog.Logger) {
	obsMu.Lock()
	defer obsMu.Unlock()
	obsLogger = logger.WithComponent(l, "stream")
}

// EnableMetrics starts recording evaluation metrics. A config with Enabled == false
// disables them. A nil cfg.Registry uses the process-wide default registry.
func EnableMetrics(cfg metrics.Config) error {
	if !cfg.Enabled {
		DisableMetrics()
		return nil
	}

	var reg *metrics.Registry
	if cfg.Registry == nil || (cfg.Registry == prometheus.DefaultRegisterer &&
		(cfg.Namespace == "" || cfg.Namespace == metrics.DefaultNamespace) && len(cfg.Labels) == 0) {
		reg = metrics.Default()
	} else {
		reg = metrics.NewRegistryWithConfig(cfg)
	}

	obsMu.Lock()
	defer obsMu.Unlock()
	obsMetrics = reg
	return nil
}

// DisableMetrics stops recording evaluation metrics.
func DisableMetrics() {
	obsMu.Lock()
	defer obsMu.Unlock()
	obsMetrics = nil
}

// MetricsEnabled reports whether evaluation metrics are being recorded.
func MetricsEnabled() bool {
	return metricsRegistry() != nil
}

func metricsRegistry() *metrics.Registry {
	obsMu.RLock()
	defer obsMu.RUnlock()
	return obsMetrics
}

// evaluation carries the observability state of one terminal operation.
type evaluation struct {
	terminal string
	mode     string
	start    time.Time
	pulled   atomic.Int64
	chunks   int

	span    trace.Span
	log     zerolog.Logger
	metrics *metrics.Registry
}

func (p *pipeline) observe(ctx context.Context, terminal string) (context.Context, *evaluation) {
	mode := "sequential"
	if p.parallel > 0 {
		mode = "parallel"
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "stream.terminal",
		trace.WithAttributes(
			attribute.String("stream.operation", terminal),
			attribute.Int("stream.stages", len(p.stages)),
			attribute.Bool("stream.parallel", p.parallel > 0),
		))

	obsMu.RLock()
	base := obsLogger
	reg := obsMetrics
	obsMu.RUnlock()

	ev := &evaluation{
		terminal: terminal,
		mode:     mode,
		start:    time.Now(),
		span:     span,
		metrics:  reg,
		log: base.With().
			Str(logger.FieldRunID, uuid.NewString()).
			Str(logger.FieldOperation, terminal).
			Logger(),
	}
	ev.log.Debug().
		Int(logger.FieldStages, len(p.stages)).
		Bool(logger.FieldParallel, p.parallel > 0).
		Msg("evaluation started")
	return ctx, ev
}

func (ev *evaluation) end(err error) {
	elapsed := time.Since(ev.start)
	pulled := ev.pulled.Load()
	code := sferrors.Code(err)

	ev.span.SetAttributes(attribute.Int64("stream.elements", pulled))
	if err != nil {
		ev.span.RecordError(err)
		ev.span.SetStatus(codes.Error, code)
	}
	ev.span.End()

	if m := ev.metrics; m != nil {
		m.Evaluations.WithLabelValues(ev.terminal, ev.mode).Inc()
		m.ElementsPulled.WithLabelValues(ev.terminal).Add(float64(pulled))
		m.EvaluationDuration.WithLabelValues(ev.terminal).Observe(elapsed.Seconds())
		if ev.chunks > 0 {
			m.ParallelChunks.WithLabelValues(ev.terminal).Add(float64(ev.chunks))
		}
		if err != nil {
			m.Errors.WithLabelValues(ev.terminal, code).Inc()
		}
	}

	event := ev.log.Debug()
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		event = ev.log.Warn().Err(err).Str(logger.FieldCode, code)
	}
	event.Int64(logger.FieldElements, pulled).
		Dur(logger.FieldDuration, elapsed).
		Msg("evaluation finished")
}
