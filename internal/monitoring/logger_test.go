package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLoggerCaptures(t *testing.T) {
	defer SetLogger(nil)

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})

	Logf("processed %d rows", 42)
	if got != "processed 42 rows" {
		t.Errorf("captured log = %q, want %q", got, "processed 42 rows")
	}
}

func TestSetLoggerNilIsNoOp(t *testing.T) {
	SetLogger(nil)
	defer SetLogger(func(format string, v ...interface{}) {})

	// Must not panic.
	Logf("ignored %v", "message")
}
