package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel carries change events for every key of the medium.
const DefaultChannel = "pos:events"

// Redis is the production medium: values live under their plain keys, the
// write sequence number under "<key>:version", and change events travel over
// one pub/sub channel. Each Redis handle has its own origin and drops events
// it published itself, matching the Memory medium's contract.
type Redis struct {
	client  *redis.Client
	origin  string
	channel string
}

var _ Store = (*Redis)(nil)

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, origin: uuid.NewString(), channel: DefaultChannel}
}

func versionKey(key string) string { return key + ":version" }

func (r *Redis) Get(ctx context.Context, key string) (Entry, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	version, err := r.client.Get(ctx, versionKey(key)).Uint64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Entry{}, false, err
	}
	return Entry{Value: value, Version: version}, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) (uint64, error) {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, value, 0)
	incr := pipe.Incr(ctx, versionKey(key))
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	r.publish(ctx, key, value)
	return uint64(incr.Val()), nil
}

func (r *Redis) CompareAndSwap(ctx context.Context, key string, expected uint64, value string) (uint64, error) {
	var version uint64
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey(key)).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != expected {
			return ErrVersionConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, 0)
			pipe.Incr(ctx, versionKey(key))
			return nil
		})
		version = current + 1
		return err
	}, versionKey(key))
	if errors.Is(err, redis.TxFailedErr) {
		return 0, ErrVersionConflict
	}
	if err != nil {
		return 0, err
	}
	r.publish(ctx, key, value)
	return version, nil
}

func (r *Redis) publish(ctx context.Context, key, value string) {
	payload, _ := json.Marshal(Event{Key: key, NewValue: value, Origin: r.origin})
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		log.Printf("store: failed to publish change event for %q: %v", key, err)
	}
}

func (r *Redis) Subscribe(ctx context.Context, keys ...string) (<-chan Event, func()) {
	wanted := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		wanted[k] = struct{}{}
	}

	pubsub := r.client.Subscribe(ctx, r.channel)
	out := make(chan Event, eventBuffer)

	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("store: dropping malformed change event: %v", err)
				continue
			}
			if ev.Origin == r.origin {
				continue
			}
			if _, ok := wanted[ev.Key]; !ok {
				continue
			}
			select {
			case out <- ev:
			default:
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() { _ = pubsub.Close() })
	}
	stop := context.AfterFunc(ctx, cancel)
	return out, func() { stop(); cancel() }
}
