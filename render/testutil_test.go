package render

import (
	"context"
	"testing"
	"time"
)

// testContext bounds driver tests so a wedged loop fails instead of
// hanging the suite.
func testContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx, cancel
}
