package redisadapter

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"pulse-ads/internal/core/domain"
)

// currentDateKey holds the simulated day counter shared by all processes.
const currentDateKey = "current_date"

// NewClient creates a Redis client and verifies connectivity with a short
// ping timeout. The caller must close the returned client.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctxPing).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Clock implements port.Clock over a Redis-held integer counter. A missing
// key reads as day zero and is initialised on first access.
type Clock struct {
	rdb *redis.Client
}

// NewClock returns a clock backed by the given client.
func NewClock(rdb *redis.Client) *Clock {
	return &Clock{rdb: rdb}
}

// CurrentDay returns the simulated day, initialising it to zero when the
// counter does not exist yet.
func (c *Clock) CurrentDay(ctx context.Context) (int, error) {
	val, err := c.rdb.Get(ctx, currentDateKey).Result()
	if errors.Is(err, redis.Nil) {
		if err = c.rdb.SetNX(ctx, currentDateKey, 0, 0).Err(); err != nil {
			return 0, domain.NewRepositoryError("init current day", err)
		}
		return 0, nil
	}
	if err != nil {
		return 0, domain.NewRepositoryError("get current day", err)
	}
	day, err := strconv.Atoi(val)
	if err != nil {
		return 0, domain.NewRepositoryError("parse current day", err)
	}
	return day, nil
}

// AdvanceDay sets the simulated day and returns the stored value.
func (c *Clock) AdvanceDay(ctx context.Context, day int) (int, error) {
	if err := c.rdb.Set(ctx, currentDateKey, day, 0).Err(); err != nil {
		return 0, domain.NewRepositoryError("set current day", err)
	}
	return day, nil
}
