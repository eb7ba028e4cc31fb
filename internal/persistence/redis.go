package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/news-service/internal/config"
	"github.com/spec-kit/news-service/internal/domain"
)

const articleCachePrefix = "article:"

// Redis wraps the go-redis client and serves as the article read cache.
type Redis struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, cacheCfg config.CacheConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client, ttl: cacheCfg.ArticleTTL()}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// GetArticle returns a cached article, or nil on miss or any cache fault.
func (r *Redis) GetArticle(ctx context.Context, id string) *domain.Article {
	if r == nil || r.Client == nil || r.ttl <= 0 {
		return nil
	}
	raw, err := r.Client.Get(ctx, articleCachePrefix+id).Bytes()
	if err != nil {
		return nil
	}
	var article domain.Article
	if err := json.Unmarshal(raw, &article); err != nil {
		return nil
	}
	return &article
}

// SetArticle stores an article under its id with the configured TTL.
func (r *Redis) SetArticle(ctx context.Context, article *domain.Article) {
	if r == nil || r.Client == nil || r.ttl <= 0 || article == nil {
		return
	}
	raw, err := json.Marshal(article)
	if err != nil {
		return
	}
	_ = r.Client.Set(ctx, articleCachePrefix+article.ID, raw, r.ttl).Err()
}

// InvalidateArticle drops a cached article after mutation.
func (r *Redis) InvalidateArticle(ctx context.Context, id string) {
	if r == nil || r.Client == nil {
		return
	}
	_ = r.Client.Del(ctx, articleCachePrefix+id).Err()
}
