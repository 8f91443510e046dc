package source

import (
	"time"

	"github.com/robfig/cron/v3"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

// Standard five-field expressions, an optional leading seconds field and descriptors
// such as @hourly or @every 90s.
var parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule validates a cron expression.
func ParseSchedule(spec string) (cron.Schedule, error) {
	if err := validation.ValidateNotEmpty(module, "cron", spec); err != nil {
		return nil, err
	}
	sched, err := parser.Parse(spec)
	if err != nil {
		return nil, sferrors.NewValidationError(module, "cron", spec, err.Error())
	}
	return sched, nil
}

// Schedule returns the infinite stream of activation times of spec strictly after
// from.
func Schedule(spec string, from time.Time) (stream.Stream[time.Time], error) {
	sched, err := ParseSchedule(spec)
	if err != nil {
		return nil, err
	}
	return stream.Iterate(sched.Next(from), sched.Next), nil
}

// ScheduleBetween returns the activation times of spec strictly after from and
// before until.
func ScheduleBetween(spec string, from, until time.Time) (stream.Stream[time.Time], error) {
	sched, err := ParseSchedule(spec)
	if err != nil {
		return nil, err
	}
	return stream.IterateWhile(sched.Next(from), func(t time.Time) bool {
		return !t.IsZero() && t.Before(until)
	}, sched.Next), nil
}
