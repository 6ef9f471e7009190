package logger

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(hook *AsyncHook) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.AddHook(hook)
	return l
}

func TestAsyncHook_FlushOnClose(t *testing.T) {
	out := &lockedBuffer{}
	hook := NewAsyncHookWithWriters([]io.Writer{out}, 10)
	l := newTestLogger(hook)

	l.Info("first")
	l.WithField("orderId", "abc").Warn("second")
	assert.NoError(t, hook.Close())

	got := out.String()
	assert.Contains(t, got, "first")
	assert.Contains(t, got, "orderId=abc")
	assert.Equal(t, int64(0), hook.Dropped())

	// Sau Close vẫn ghi được, trực tiếp
	l.Info("after close")
	assert.Contains(t, out.String(), "after close")
	assert.NoError(t, hook.Close(), "Close gọi lần hai không panic")
}

func TestAsyncHook_WritesToEveryWriter(t *testing.T) {
	a, b := &lockedBuffer{}, &lockedBuffer{}
	hook := NewAsyncHookWithWriters([]io.Writer{a, b}, 0)
	newTestLogger(hook).Error("boom")
	_ = hook.Close()

	assert.Equal(t, 1, strings.Count(a.String(), "boom"))
	assert.Equal(t, a.String(), b.String())
}

func TestDefaultConfig_FromEnv(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_OUTPUT", "stdout")
	t.Setenv("LOG_FORMAT", "")

	cfg := DefaultConfig()
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.writesStdout())
	assert.False(t, cfg.writesFile())
	assert.Equal(t, 1000, cfg.BufferSize)
}
