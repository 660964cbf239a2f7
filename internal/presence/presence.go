// Package presence tracks which users are online and pushes live
// updates to subscribers over Redis pub/sub.
package presence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyOnline  = "presence:%s" // per-user record
	setOnline  = "presence:online"
	chanUpdate = "presence:updates"

	// a record older than this is considered stale even if the
	// offline write was lost (browser killed, network drop)
	recordTTL = 5 * time.Minute
)

type Record struct {
	UserID     string    `json:"userId"`
	Online     bool      `json:"online"`
	LastActive time.Time `json:"lastActive"`
}

type Store struct {
	cli *redis.Client
}

func NewStore(addr string, db int) *Store {
	return &Store{cli: redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})}
}

func NewStoreWithClient(cli *redis.Client) *Store { return &Store{cli: cli} }

func (s *Store) Ping(ctx context.Context) error { return s.cli.Ping(ctx).Err() }
func (s *Store) Close() error                   { return s.cli.Close() }

// Client exposes the underlying connection for other Redis-backed
// pieces (the notification feed shares it).
func (s *Store) Client() *redis.Client { return s.cli }

// SetOnline marks the user online and broadcasts the change.
func (s *Store) SetOnline(ctx context.Context, userID string) error {
	return s.write(ctx, Record{UserID: userID, Online: true, LastActive: time.Now()})
}

// SetOffline marks the user offline and broadcasts the change.
func (s *Store) SetOffline(ctx context.Context, userID string) error {
	return s.write(ctx, Record{UserID: userID, Online: false, LastActive: time.Now()})
}

func (s *Store) write(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal presence: %w", err)
	}
	key := fmt.Sprintf(keyOnline, rec.UserID)
	if err := s.cli.Set(ctx, key, data, recordTTL).Err(); err != nil {
		return err
	}
	if rec.Online {
		if err := s.cli.SAdd(ctx, setOnline, rec.UserID).Err(); err != nil {
			return err
		}
	} else {
		if err := s.cli.SRem(ctx, setOnline, rec.UserID).Err(); err != nil {
			return err
		}
	}
	return s.cli.Publish(ctx, chanUpdate, data).Err()
}

// Online lists the currently-online users. Stale members whose record
// expired are dropped from the set as a side effect.
func (s *Store) Online(ctx context.Context) ([]Record, error) {
	ids, err := s.cli.SMembers(ctx, setOnline).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		data, err := s.cli.Get(ctx, fmt.Sprintf(keyOnline, id)).Bytes()
		if errors.Is(err, redis.Nil) {
			_ = s.cli.SRem(ctx, setOnline, id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		if rec.Online {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Subscribe delivers every presence change to fn until the returned
// unsubscribe func runs. Unsubscribe is safe to call more than once;
// the channel is released exactly once. fn must tolerate duplicate
// deliveries.
func (s *Store) Subscribe(ctx context.Context, fn func(Record)) func() {
	sub := s.cli.Subscribe(ctx, chanUpdate)
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
				var rec Record
				if err := json.Unmarshal([]byte(msg.Payload), &rec); err != nil {
					log.Printf("[presence] bad update payload: %v", err)
					continue
				}
				fn(rec)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			_ = sub.Close()
		})
	}
}
