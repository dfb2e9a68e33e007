package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/snipurl/snipurl/internal/shortlink"
)

// RedisStore is a Redis implementation of shortlink.Repository. Entry
// metadata lives as a JSON string per code; clicks live in a list per code
// so append order is preserved by RPUSH.
type RedisStore struct {
	client      *redis.Client
	entryPrefix string
	clickPrefix string
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:      client,
		entryPrefix: "link:",
		clickPrefix: "clicks:",
	}
}

type redisEntry struct {
	Code        string    `json:"code"`
	OriginalURL string    `json:"originalUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (r *RedisStore) Create(ctx context.Context, entry *shortlink.Entry) error {
	payload, err := json.Marshal(redisEntry{
		Code:        entry.Code,
		OriginalURL: entry.OriginalURL,
		CreatedAt:   entry.CreatedAt,
		ExpiresAt:   entry.ExpiresAt,
	})
	if err != nil {
		return err
	}

	// SETNX is the atomic check-and-insert: exactly one concurrent creator
	// of the same code wins.
	ok, err := r.client.SetNX(ctx, r.entryPrefix+entry.Code, payload, 0).Result()
	if err != nil {
		return err
	}

	if !ok {
		return shortlink.ErrCodeInUse
	}

	return nil
}

func (r *RedisStore) Get(ctx context.Context, code string) (*shortlink.Entry, error) {
	raw, err := r.client.Get(ctx, r.entryPrefix+code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortlink.ErrNotFound
		}

		return nil, err
	}

	var meta redisEntry
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, err
	}

	clicks, err := r.loadClicks(ctx, code)
	if err != nil {
		return nil, err
	}

	return &shortlink.Entry{
		Code:        meta.Code,
		OriginalURL: meta.OriginalURL,
		CreatedAt:   meta.CreatedAt,
		ExpiresAt:   meta.ExpiresAt,
		Clicks:      clicks,
	}, nil
}

func (r *RedisStore) List(ctx context.Context) ([]*shortlink.Entry, error) {
	var entries []*shortlink.Entry

	iter := r.client.Scan(ctx, 0, r.entryPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		code := iter.Val()[len(r.entryPrefix):]

		entry, err := r.Get(ctx, code)
		if err != nil {
			if errors.Is(err, shortlink.ErrNotFound) {
				continue
			}

			return nil, err
		}

		entries = append(entries, entry)
	}

	if err := iter.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *RedisStore) AppendClick(ctx context.Context, code string, click shortlink.Click) error {
	// Entries are never deleted, so the existence check cannot go stale
	// before the RPUSH.
	exists, err := r.client.Exists(ctx, r.entryPrefix+code).Result()
	if err != nil {
		return err
	}

	if exists == 0 {
		return shortlink.ErrNotFound
	}

	payload, err := json.Marshal(click)
	if err != nil {
		return err
	}

	return r.client.RPush(ctx, r.clickPrefix+code, payload).Err()
}

func (r *RedisStore) loadClicks(ctx context.Context, code string) ([]shortlink.Click, error) {
	raw, err := r.client.LRange(ctx, r.clickPrefix+code, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	clicks := make([]shortlink.Click, 0, len(raw))

	for _, item := range raw {
		var click shortlink.Click
		if err := json.Unmarshal([]byte(item), &click); err != nil {
			return nil, err
		}

		clicks = append(clicks, click)
	}

	return clicks, nil
}
