package obs

import (
	"context"
	"time"

	"github.com/phuslu/log"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time measures an operation, logging its duration (and error, when the
// returned func is handed a non-nil *error) on completion.
//
//	defer obs.Time(ctx, "assemble itinerary")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		e := log.Info()
		if errp != nil && *errp != nil {
			e = log.Error().Err(*errp)
		}
		e.Str("req_id", reqID).
			Str("op", name).
			Int64("dur_ms", time.Since(start).Milliseconds()).
			Msg("op finished")
	}
}
