package tasks

import (
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ESPSA/El-Wataneya/internal/config"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

func TestCronScheduleOption(t *testing.T) {
	opt := CronSchedule("30 2 * * *")
	assert.Equal(t, asynq.ProcessAtOpt, opt.Type())
	assert.Equal(t, "30 2 * * *", opt.Value())
	assert.Contains(t, opt.String(), "30 2 * * *")

	sched, err := cron.ParseStandard("30 2 * * *")
	require.NoError(t, err)

	info := &asynq.TaskInfo{}
	opt.(cronSchedule).Apply(info)
	assert.WithinDuration(t, sched.Next(time.Now()), info.NextProcessAt, 2*time.Second)
}

func TestCronScheduleFallsBackOnBadExpression(t *testing.T) {
	info := &asynq.TaskInfo{}
	CronSchedule("not a cron expression").(cronSchedule).Apply(info)
	assert.WithinDuration(t, time.Now().Add(time.Hour), info.NextProcessAt, 2*time.Second)
}

func TestRegisterCustomTaskValidatesSchedule(t *testing.T) {
	s := NewScheduler(config.RedisConfig{Addr: "127.0.0.1:6379"}, logger.New("test"))

	require.NoError(t, s.RegisterCustomTask("@every 1h", "noop:task", nil, asynq.Queue(QueueLow)))
	assert.Error(t, s.RegisterCustomTask("every hour or so", "noop:task", nil))
}
