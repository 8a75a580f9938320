// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed JSON response cache for the public
// read endpoints. Serialized response bodies are stored under a request
// key so repeat reads skip the DB entirely. Compile job records share the
// same client under their own prefix.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"chronicle/internal/models"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached JSON bodies.
	responseKeyPrefix = "resp:"

	// jobKeyPrefix is the Valkey key prefix for compile job records.
	jobKeyPrefix = "job:"

	// DefaultResponseTTL is how long a cached response body stays valid.
	DefaultResponseTTL = 5 * time.Minute

	// jobTTL keeps finished compile jobs queryable for a day.
	jobTTL = 24 * time.Hour
)

// ResponseCache manages JSON response caching and compile job records.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached JSON body for a request key. Returns false on miss.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores a JSON body for a request key with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if err := rc.client.Set(ctx, responseKeyPrefix+key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single cached response by key.
func (rc *ResponseCache) Invalidate(ctx context.Context, key string) {
	if err := rc.client.Del(ctx, responseKeyPrefix+key).Err(); err != nil {
		slog.Warn("response cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("response cache invalidated", "key", key)
}

// InvalidatePrefix removes all cached responses whose key starts with the
// given prefix. Mutations to posts invalidate every post listing variant
// this way.
func (rc *ResponseCache) InvalidatePrefix(ctx context.Context, prefix string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, responseKeyPrefix+prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("response cache cleared", "prefix", prefix, "deleted", deleted)
	}
}

// PostListKey returns the cache key for a post listing request.
func PostListKey(search, status string, limit, offset int) string {
	return fmt.Sprintf("posts:%s:%s:%d:%d", search, status, limit, offset)
}

// PostKey returns the cache key for a single post response.
func PostKey(id string) string {
	return "posts:" + id
}

// SetJob stores a compile job record so the status endpoint can report it.
func (rc *ResponseCache) SetJob(ctx context.Context, job *models.CompilationJob) {
	data, err := json.Marshal(job)
	if err != nil {
		slog.Warn("compile job marshal error", "jobId", job.JobID, "error", err)
		return
	}
	if err := rc.client.Set(ctx, jobKeyPrefix+job.JobID, data, jobTTL).Err(); err != nil {
		slog.Warn("compile job set error", "jobId", job.JobID, "error", err)
	}
}

// GetJob retrieves a compile job record by its ID. Returns nil on miss.
func (rc *ResponseCache) GetJob(ctx context.Context, jobID string) *models.CompilationJob {
	val, err := rc.client.Get(ctx, jobKeyPrefix+jobID).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		slog.Warn("compile job get error", "jobId", jobID, "error", err)
		return nil
	}
	var job models.CompilationJob
	if err := json.Unmarshal(val, &job); err != nil {
		slog.Warn("compile job unmarshal error", "jobId", jobID, "error", err)
		return nil
	}
	return &job
}
