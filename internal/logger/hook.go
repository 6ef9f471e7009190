package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// AsyncHook ghi log bất đồng bộ qua buffered channel. Buffer đầy thì entry bị bỏ
// (đếm trong Dropped) thay vì chặn goroutine đang log
type AsyncHook struct {
	writers []io.Writer
	queue   chan *logrus.Entry
	done    chan struct{}
	once    sync.Once
	closed  atomic.Bool
	dropped atomic.Int64
}

// NewAsyncHookWithWriters tạo hook và khởi chạy goroutine ghi
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	h := &AsyncHook{
		writers: writers,
		queue:   make(chan *logrus.Entry, bufferSize),
		done:    make(chan struct{}),
	}
	go h.run()
	return h
}

// Levels hook nhận mọi level
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đưa bản sao entry vào hàng đợi, không block. Sau Close thì ghi trực tiếp
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	if h.closed.Load() {
		return h.write(entry)
	}
	select {
	case h.queue <- snapshot(entry):
	default:
		h.dropped.Add(1)
	}
	return nil
}

// snapshot: Dup() của logrus không chép Level/Message/Caller
func snapshot(entry *logrus.Entry) *logrus.Entry {
	e := entry.Dup()
	e.Level = entry.Level
	e.Message = entry.Message
	e.Caller = entry.Caller
	return e
}

// Dropped số entry đã bị bỏ do buffer đầy
func (h *AsyncHook) Dropped() int64 {
	return h.dropped.Load()
}

func (h *AsyncHook) run() {
	defer close(h.done)
	for entry := range h.queue {
		h.safeWrite(entry)
	}
}

func (h *AsyncHook) safeWrite(entry *logrus.Entry) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER PANIC] %v\n", r)
		}
	}()
	_ = h.write(entry)
}

func (h *AsyncHook) write(entry *logrus.Entry) error {
	data, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	for _, w := range h.writers {
		_, _ = w.Write(data)
	}
	return nil
}

// Close dừng nhận entry mới vào hàng đợi và chờ ghi hết phần còn lại
func (h *AsyncHook) Close() error {
	h.once.Do(func() {
		h.closed.Store(true)
		close(h.queue)
		<-h.done
	})
	return nil
}
