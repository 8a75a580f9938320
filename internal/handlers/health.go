// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// Health reports readiness of the service's backing stores.
type Health struct {
	db     *sql.DB
	valkey *redis.Client
}

// NewHealth creates the health handler.
func NewHealth(db *sql.DB, valkey *redis.Client) *Health {
	return &Health{db: db, valkey: valkey}
}

// Check handles GET /health. Database failure makes the service unhealthy;
// the cache is optional and only reported.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	dbStatus := "ok"
	if err := h.db.PingContext(r.Context()); err != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	cacheStatus := "disabled"
	if h.valkey != nil {
		cacheStatus = "ok"
		if err := h.valkey.Ping(r.Context()).Err(); err != nil {
			cacheStatus = "down"
		}
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	respondJSON(w, status, map[string]string{
		"status":   overall,
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
