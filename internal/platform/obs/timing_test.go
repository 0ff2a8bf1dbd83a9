package obs

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTimeLogsOperation(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	ctx := WithRequestID(context.Background(), "abc")

	func() (err error) {
		defer Time(ctx, "geocode.nominatim")(&err)
		return errors.New("boom")
	}()

	func() (err error) {
		defer Time(ctx, "geocode.cache.GetMany")(&err)
		return nil
	}()

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}

	first := entries[0].ContextMap()
	if first["op"] != "geocode.nominatim" || first["req_id"] != "abc" {
		t.Errorf("unexpected fields: %v", first)
	}
	if first["error"] != "boom" {
		t.Errorf("error field = %v, want boom", first["error"])
	}

	if _, ok := entries[1].ContextMap()["error"]; ok {
		t.Errorf("successful op should not log an error field")
	}
}
