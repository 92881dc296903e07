package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps records as JSON values and draw offers as sets. Mutations
// run under WATCH so a racing writer aborts the transaction instead of
// producing a lost update; records carry no TTL because games are never
// deleted.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("redis url required")
	}
	opts, err := parseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func gameKey(id uint64) string   { return "arbiter:game:" + strconv.FormatUint(id, 10) }
func offersKey(id uint64) string { return gameKey(id) + ":offers" }

const seqKey = "arbiter:seq:game"

func (s *RedisStore) AllocateID(ctx context.Context) (uint64, error) {
	n, err := s.rdb.Incr(ctx, seqKey).Result()
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

func (s *RedisStore) Create(ctx context.Context, rec *Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetNX(ctx, gameKey(rec.ID), raw, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrGameAlreadyExists
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id uint64) (*Record, error) {
	raw, err := s.rdb.Get(ctx, gameKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrGameNotExist
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RedisStore) Update(ctx context.Context, id uint64, fn UpdateFunc) (*Record, error) {
	gameK, offersK := gameKey(id), offersKey(id)
	var out *Record

	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, gameK).Bytes()
		if err == redis.Nil {
			return ErrGameNotExist
		}
		if err != nil {
			return err
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}

		members, err := tx.SMembers(ctx, offersK).Result()
		if err != nil {
			return err
		}
		offers := make(map[string]struct{}, len(members))
		for _, m := range members {
			offers[m] = struct{}{}
		}

		ops, err := fn(&rec, offers)
		if err != nil {
			return err
		}

		newRaw, err := json.Marshal(&rec)
		if err != nil {
			return err
		}
		pipe := tx.TxPipeline()
		pipe.Set(ctx, gameK, newRaw, 0)
		if ops.ClearOffers {
			pipe.Del(ctx, offersK)
		} else if ops.AddOffer != "" {
			pipe.SAdd(ctx, offersK, ops.AddOffer)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
		out = &rec
		return nil
	}, gameK, offersK)

	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return out, nil
}

func (s *RedisStore) HasOffer(ctx context.Context, id uint64, player string) (bool, error) {
	return s.rdb.SIsMember(ctx, offersKey(id), player).Result()
}

func (s *RedisStore) RecordOffer(ctx context.Context, id uint64, player string) error {
	return s.rdb.SAdd(ctx, offersKey(id), player).Err()
}

func (s *RedisStore) ClearOffers(ctx context.Context, id uint64) error {
	return s.rdb.Del(ctx, offersKey(id)).Err()
}

func parseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}
