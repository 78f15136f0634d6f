package mypubsub

import (
	"context"
	"os"
	"sync"
)

// fakePubSub keeps published messages in memory so local runs and tests
// can work without a broker.
type fakePubSub struct {
	mutex     sync.Mutex
	published map[string][]string
}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newFakePubSub
	}
}

func newFakePubSub(c context.Context) (PubSub, func(), error) {
	return &fakePubSub{
		published: map[string][]string{},
	}, func() {
	}, nil
}

func (q *fakePubSub) Subscribe(c context.Context, topic string, urlToPostTo string) error {
	return nil
}

func (q *fakePubSub) CreateTopic(c context.Context, topic string) error {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if _, exists := q.published[topic]; !exists {
		q.published[topic] = []string{}
	}
	return nil
}

func (q *fakePubSub) Publish(c context.Context, topic string, data string) error {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	q.published[topic] = append(q.published[topic], data)
	return nil
}
