package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/swissround/internal/adapters/mq/queue"
	"github.com/okian/swissround/internal/adapters/mq/worker"
	"github.com/okian/swissround/internal/domain/types"
	"github.com/okian/swissround/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type recordingHandler struct {
	mu   sync.Mutex
	ids  []string
	fail map[string]error
}

func (h *recordingHandler) Handle(_ context.Context, j worker.Job) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.fail[j.Record.ID]; err != nil {
		return err
	}
	h.ids = append(h.ids, j.Record.ID)
	return nil
}

func (h *recordingHandler) handled() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.ids...)
}

func job(id string) queue.Job {
	return queue.Job{Record: types.Record{ID: id}}
}

func TestWorker(t *testing.T) {
	Convey("Given a worker on a queue", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(8))
		h := &recordingHandler{fail: map[string]error{"bad": errors.New("boom")}}
		w := worker.NewInMemoryWorker(q, h, worker.WithName("exporter"), worker.WithLogger(logger.Nop()))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)

		Convey("When jobs are queued and the queue is closed", func() {
			So(q.Enqueue(ctx, job("a")), ShouldBeNil)
			So(q.Enqueue(ctx, job("bad")), ShouldBeNil)
			So(q.Enqueue(ctx, job("b")), ShouldBeNil)
			So(q.Close(), ShouldBeNil)

			Convey("Then every job is handled and a failure does not stop the worker", func() {
				select {
				case <-w.Done():
				case <-time.After(2 * time.Second):
				}
				So(h.handled(), ShouldResemble, []string{"a", "b"})
			})
		})

		Convey("When the worker is shut down", func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
			defer shutdownCancel()

			Convey("Then it stops and a second shutdown is harmless", func() {
				So(w.Shutdown(shutdownCtx), ShouldBeNil)
				So(w.Shutdown(shutdownCtx), ShouldBeNil)
			})
		})
	})

	Convey("HandlerFunc adapts a function", t, func() {
		var got string
		h := worker.HandlerFunc(func(_ context.Context, j worker.Job) error {
			got = j.Record.ID
			return nil
		})
		So(h.Handle(context.Background(), job("x")), ShouldBeNil)
		So(got, ShouldEqual, "x")
	})
}

func TestPool(t *testing.T) {
	Convey("Given a pool of three workers", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(64))
		h := &recordingHandler{}
		pool := worker.NewPool(3, q, h, nil)
		So(pool.Size(), ShouldEqual, 3)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		pool.Start(ctx)

		Convey("When jobs are queued and the pool shuts down", func() {
			for _, id := range []string{"a", "b", "c", "d", "e"} {
				So(q.Enqueue(ctx, job(id)), ShouldBeNil)
			}
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer shutdownCancel()
			err := pool.Shutdown(shutdownCtx)

			Convey("Then the queue is drained before the workers exit", func() {
				So(err, ShouldBeNil)
				So(q.IsClosed(), ShouldBeTrue)
				So(h.handled(), ShouldHaveLength, 5)
				So(h.handled(), ShouldContain, "e")
			})
		})
	})

	Convey("Given a pool of two workers and a job that blocks", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(8))
		release := make(chan struct{})
		started := make(chan struct{})
		fast := make(chan string, 1)
		h := worker.HandlerFunc(func(_ context.Context, j worker.Job) error {
			if j.Record.ID == "slow" {
				close(started)
				<-release
				return nil
			}
			fast <- j.Record.ID
			return nil
		})
		pool := worker.NewPool(2, q, h, logger.Nop())
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		pool.Start(ctx)
		Reset(func() {
			select {
			case <-release:
			default:
				close(release)
			}
		})

		So(q.Enqueue(ctx, job("slow")), ShouldBeNil)
		<-started
		So(q.Enqueue(ctx, job("fast")), ShouldBeNil)

		Convey("Then the idle worker takes the next job", func() {
			var got string
			select {
			case got = <-fast:
			case <-time.After(2 * time.Second):
			}
			So(got, ShouldEqual, "fast")
		})

		Convey("When the pool shuts down while the job is still running", func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer shutdownCancel()
			err := pool.Shutdown(shutdownCtx)
			close(release)

			Convey("Then shutdown reports the timeout instead of hanging", func() {
				So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			})
		})
	})

	Convey("Given a non-positive worker count", t, func() {
		pool := worker.NewPool(0, queue.NewInMemoryQueue(), &recordingHandler{}, logger.Nop())

		Convey("Then at least one worker is created", func() {
			So(pool.Size(), ShouldBeGreaterThan, 0)
		})
	})
}
