package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func TestRequestIDDefaultsToDash(t *testing.T) {
	if got := RequestID(context.Background()); got != "-" {
		t.Fatalf("expected -, got %q", got)
	}
	ctx := WithRequestID(context.Background(), "abc")
	if got := RequestID(ctx); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
}

func TestTimeLogsOpAndError(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	err := errors.New("boom")
	Time(WithRequestID(context.Background(), "r1"), "items.list")(&err)

	line := buf.String()
	for _, want := range []string{"req_id=r1", "op=items.list", "err=boom"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}
