package myqueue

import (
	"context"
	"os"
	"sync"
)

// fakeTaskQueue remembers enqueued tasks instead of scheduling them.
type fakeTaskQueue struct {
	mutex    sync.Mutex
	enqueued []Task
}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newFakeQueue
	}
}

func newFakeQueue(c context.Context) (TaskQueuer, func(), error) {
	return &fakeTaskQueue{}, func() {
	}, nil
}

func (q *fakeTaskQueue) Enqueue(c context.Context, task Task) error {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	q.enqueued = append(q.enqueued, task)
	return nil
}

func (q *fakeTaskQueue) IsLastAttempt(c context.Context, taskUID string) (int32, int32) {
	return 0, 0
}
