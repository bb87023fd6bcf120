package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/honeycarbs/jobsync/pkg/logging"
)

func TestStopRunsEveryStoppableInOrder(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logging.FromZap(zap.New(core))

	var order []string
	first := StopFunc(func(context.Context) error { order = append(order, "server"); return errors.New("busy") })
	second := StopFunc(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		order = append(order, "store")
		return nil
	})

	Stop(time.Second, log, first, second)

	assert.Equal(t, []string{"server", "store"}, order)
	assert.Equal(t, 1, logs.FilterMessage("graceful shutdown completed with error").Len())
	assert.Equal(t, 0, logs.FilterMessage("graceful shutdown completed successfully").Len())
}

