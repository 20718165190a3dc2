package domain

import (
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestIdentityContextRoundTrip(t *testing.T) {
	id := Identity{Subject: "usr_1001", Name: "Ada", Email: "ada@example.com", Credential: "tok-secret"}

	ctx := WithIdentity(context.Background(), id)
	got := IdentityFromContext(ctx)

	if got != id {
		t.Fatalf("IdentityFromContext = %+v, want %+v", got, id)
	}
}

func TestIdentityFromContextDefaultsToAnonymous(t *testing.T) {
	got := IdentityFromContext(context.Background())
	if !got.IsZero() {
		t.Fatalf("expected anonymous identity, got %+v", got)
	}
}

func TestIdentityLogValueRedactsCredential(t *testing.T) {
	id := Identity{Subject: "usr_1001", Name: "Ada", Email: "ada@example.com", Credential: "tok-secret"}

	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("session established", "identity", id)

	out := buf.String()
	if strings.Contains(out, "tok-secret") {
		t.Fatalf("credential leaked into log output: %s", out)
	}
	if !strings.Contains(out, "usr_1001") {
		t.Fatalf("subject missing from log output: %s", out)
	}
}

func TestIdentityLogValueAnonymous(t *testing.T) {
	v := Anonymous.LogValue()
	if v.Kind() != slog.KindString || v.String() != "anonymous" {
		t.Fatalf("LogValue() = %v, want string \"anonymous\"", v)
	}
}
