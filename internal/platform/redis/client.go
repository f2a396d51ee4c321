// Package redis opens the go-redis client behind the ignore-code cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"datencheck/internal/platform/config"
)

// poolStats mirrors redis.PoolStats. Hits, misses, timeouts and stale are
// cumulative since the client was opened.
var poolStats = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "datencheck_redis_pool",
	Help: "go-redis connection pool statistics as last recorded",
}, []string{"stat"})

// Client embeds the go-redis client so it satisfies redis.Cmdable.
type Client struct {
	*redis.Client
}

// New dials and pings the server. It returns nil, nil for an empty URL so
// the cache layer can be skipped.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout+time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{Client: client}, nil
}

// RecordPoolStats publishes the current pool statistics. The CLI records
// them once before closing.
func (c *Client) RecordPoolStats() {
	st := c.PoolStats()
	for stat, v := range map[string]uint32{
		"hits":        st.Hits,
		"misses":      st.Misses,
		"timeouts":    st.Timeouts,
		"stale_conns": st.StaleConns,
		"total_conns": st.TotalConns,
		"idle_conns":  st.IdleConns,
	} {
		poolStats.WithLabelValues(stat).Set(float64(v))
	}
}

func (c *Client) Close() error {
	return c.Client.Close()
}
