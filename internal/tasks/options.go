package tasks

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

type cronSchedule struct {
	expr string
}

func (s cronSchedule) String() string {
	return fmt.Sprintf("cron=%s", s.expr)
}

func (s cronSchedule) Type() asynq.OptionType {
	return asynq.ProcessAtOpt
}

func (s cronSchedule) Value() interface{} {
	return s.expr
}

func (s cronSchedule) Apply(opts *asynq.TaskInfo) {
	schedule, err := cron.ParseStandard(s.expr)
	if err != nil {
		// Fall back to default interval if parsing fails
		opts.NextProcessAt = time.Now().Add(1 * time.Hour)
		return
	}

	opts.NextProcessAt = schedule.Next(time.Now())
}

// CronSchedule returns an option to schedule a one-off task at the next
// match of a cron expression.
func CronSchedule(expr string) asynq.Option {
	return cronSchedule{expr: expr}
}
