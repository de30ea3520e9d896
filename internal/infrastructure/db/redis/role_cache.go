package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bankdemo/bank-api/internal/core/ports"
)

const defaultRoleTTL = 30 * time.Second

// RoleCache is a read-through cache for GetRoles in front of a UserStore.
// Key format: roles:<normalized username>. Every other call goes straight to
// the wrapped store. Cache errors are logged and fall back to the store.
type RoleCache struct {
	ports.UserStore

	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewRoleCache(store ports.UserStore, client *redis.Client, ttl time.Duration, log zerolog.Logger) *RoleCache {
	if ttl <= 0 {
		ttl = defaultRoleTTL
	}
	return &RoleCache{UserStore: store, client: client, ttl: ttl, log: log}
}

func (c *RoleCache) GetRoles(ctx context.Context, username string) ([]string, error) {
	key := c.key(username)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var roles []string
		if jsonErr := json.Unmarshal(raw, &roles); jsonErr == nil {
			return roles, nil
		}
		c.log.Warn().Str("key", key).Msg("discarding undecodable role cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("role cache read failed")
	}

	roles, err := c.UserStore.GetRoles(ctx, username)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(roles); err == nil {
		if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("role cache write failed")
		}
	}
	return roles, nil
}

func (c *RoleCache) AddToRole(ctx context.Context, username, role string) error {
	if err := c.UserStore.AddToRole(ctx, username, role); err != nil {
		return err
	}
	return c.Invalidate(ctx, username)
}

// Reset resets the wrapped store and drops every cached role list.
func (c *RoleCache) Reset(ctx context.Context) error {
	if err := c.UserStore.Reset(ctx); err != nil {
		return err
	}
	iter := c.client.Scan(ctx, 0, "roles:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("role cache flush: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("role cache flush: %w", err)
	}
	return nil
}

func (c *RoleCache) Invalidate(ctx context.Context, username string) error {
	if err := c.client.Del(ctx, c.key(username)).Err(); err != nil {
		return fmt.Errorf("role cache invalidate: %w", err)
	}
	return nil
}

func (c *RoleCache) key(username string) string {
	return "roles:" + normalize(username)
}

// normalize matches the stores' case-insensitive username handling.
func normalize(username string) string {
	return strings.ToUpper(strings.TrimSpace(username))
}
