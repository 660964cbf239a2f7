// Package feed is a thin JSON pub/sub channel over Redis, used for
// the live notification stream. Subscribers get an unsubscribe handle
// they must call on teardown.
package feed

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

type Feed struct {
	cli     *redis.Client
	channel string
}

func New(cli *redis.Client, channel string) *Feed {
	return &Feed{cli: cli, channel: channel}
}

func (f *Feed) Publish(ctx context.Context, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return f.cli.Publish(ctx, f.channel, b).Err()
}

// Subscribe calls fn for every message until unsubscribed. The
// returned func releases the subscription exactly once however many
// times it is called.
func (f *Feed) Subscribe(ctx context.Context, fn func([]byte)) func() {
	sub := f.cli.Subscribe(ctx, f.channel)
	done := make(chan struct{})

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				fn([]byte(msg.Payload))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			if err := sub.Close(); err != nil {
				log.Printf("[feed] close subscription: %v", err)
			}
		})
	}
}
