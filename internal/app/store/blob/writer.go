// internal/app/store/blob/writer.go
package blob

import (
	"context"
	"sync"

	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const writerQueueSize = 256

// Writer mirrors in-memory state to a Store asynchronously. Writes are
// best-effort and unacknowledged: a failed or dropped write is logged and
// forgotten, never retried and never surfaced to the caller. In-memory
// state is authoritative; the persisted copy may lag or lose the most
// recent mutations if the process dies first.
type Writer struct {
	store Store
	log   *zap.Logger

	queue chan writeOp
	wg    sync.WaitGroup // outstanding ops, for Flush
	done  chan struct{}

	closeOnce sync.Once
}

type writeOp struct {
	key    string
	value  string
	remove bool
}

// NewWriter starts a Writer draining into store.
func NewWriter(store Store, logger *zap.Logger) *Writer {
	w := &Writer{
		store: store,
		log:   logger,
		queue: make(chan writeOp, writerQueueSize),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

// Set schedules key to be overwritten with value. Never blocks: when the
// queue is full the write is dropped and logged.
func (w *Writer) Set(key, value string) {
	w.enqueue(writeOp{key: key, value: value})
}

// Remove schedules key to be deleted. Never blocks.
func (w *Writer) Remove(key string) {
	w.enqueue(writeOp{key: key, remove: true})
}

func (w *Writer) enqueue(op writeOp) {
	w.wg.Add(1)
	select {
	case w.queue <- op:
	default:
		w.wg.Done()
		w.log.Warn("blob writer queue full, dropping write", zap.String("key", op.key))
	}
}

func (w *Writer) run() {
	defer close(w.done)
	for op := range w.queue {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.Short())
		var err error
		if op.remove {
			err = w.store.Remove(ctx, op.key)
		} else {
			err = w.store.Set(ctx, op.key, op.value)
		}
		cancel()
		if err != nil {
			// Best-effort policy: persistence failures are invisible to
			// callers. Log at debug so operators can still see the gap.
			w.log.Debug("blob write failed", zap.String("key", op.key), zap.Error(err))
		}
		w.wg.Done()
	}
}

// Flush blocks until every write enqueued so far has been attempted.
func (w *Writer) Flush() {
	w.wg.Wait()
}

// Close flushes outstanding writes and stops the writer. The Writer must
// not be used after Close.
func (w *Writer) Close() {
	w.closeOnce.Do(func() {
		w.wg.Wait()
		close(w.queue)
		<-w.done
	})
}
