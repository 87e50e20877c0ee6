// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route pattern,
	// and status class.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chapter_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chapter_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// LoginAttemptsTotal counts login attempts by outcome
	// (success, invalid, error).
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chapter_login_attempts_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)

	// EventBucketMovesTotal counts events moved between the past and
	// upcoming collections, labeled by target bucket.
	EventBucketMovesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chapter_event_bucket_moves_total",
			Help: "Total number of events moved between buckets.",
		},
		[]string{"to"},
	)

	// CacheOperationsTotal counts cache lookups by outcome (hit, miss).
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chapter_cache_operations_total",
			Help: "Total number of cache lookups.",
		},
		[]string{"result"},
	)

	// TokensPurgedTotal counts expired auth tokens removed by the scheduler.
	TokensPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chapter_auth_tokens_purged_total",
			Help: "Total number of expired auth tokens purged.",
		},
	)
)
