package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/m1z23r/drift/pkg/drift"
)

var validate = validator.New()

// requestContext bounds every database-touching handler. The SSE endpoints
// manage their own lifetimes and do not use it.
func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// timedOut maps a deadline error onto a 504 and reports whether it did so.
func timedOut(c *drift.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		c.GatewayTimeout("request timed out")
		return true
	}
	return false
}
