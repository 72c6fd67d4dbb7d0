package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestFromContext_DefaultsToDiscard(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected a non-nil logger")
	}
}

func TestWithLogger_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.DebugLevel)
	ctx := WithLogger(context.Background(), l)
	FromContext(ctx).Info("placed", "item", "a1")
	if !strings.Contains(buf.String(), "placed") || !strings.Contains(buf.String(), "item=a1") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG") != log.DebugLevel {
		t.Error("DEBUG should parse to debug")
	}
	if ParseLevel("nonsense") != log.InfoLevel {
		t.Error("unknown level should default to info")
	}
}
