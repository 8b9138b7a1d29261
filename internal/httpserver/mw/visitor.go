package mw

import (
	"context"
	"net/http"
	"time"

	"github.com/veloria/catalog-api/internal/logger"
	"github.com/veloria/catalog-api/internal/metrics"
	"github.com/veloria/catalog-api/internal/utils"
)

// VisitRecorder is the slice of the visitor store this middleware needs.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, clientIP string, now time.Time) error
}

// VisitorCounter records a visit for every request off the hot path.
// Failures are logged and dropped so Redis trouble never slows a response.
func VisitorCounter(rec VisitRecorder, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rec == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := rec.RecordVisit(ctx, ip, time.Now()); err != nil {
					log.Warn("failed to record visit", logger.Error(err))
					return
				}
				metrics.Visits.Inc()
			}()
			next.ServeHTTP(w, r)
		})
	}
}
