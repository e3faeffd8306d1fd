// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"time"
)

// RequestObserver records served requests.
type RequestObserver interface {
	ObserveHTTPRequest(method, route string, status int, d time.Duration)
}

// Metrics reports every request to obs, labelled with the chi route
// pattern that matched it.
func Metrics(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			obs.ObserveHTTPRequest(r.Method, routePattern(r), wrapped.statusCode, time.Since(start))
		})
	}
}
