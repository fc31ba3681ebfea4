package firestore

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"finitefield.org/hanko-seo/internal/platform/config"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind Kind
	}{
		{name: "not found", err: status.Error(codes.NotFound, "missing"), kind: KindNotFound},
		{name: "unavailable", err: status.Error(codes.Unavailable, "down"), kind: KindUnavailable},
		{name: "exhausted", err: status.Error(codes.ResourceExhausted, "quota"), kind: KindUnavailable},
		{name: "aborted", err: status.Error(codes.Aborted, "contention"), kind: KindConflict},
		{name: "invalid", err: status.Error(codes.InvalidArgument, "bad"), kind: KindInvalid},
		{name: "plain", err: errors.New("boom"), kind: KindUnknown},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			wrapped := Classify("settings.get", tc.err)
			var fsErr *Error
			if !errors.As(wrapped, &fsErr) {
				t.Fatalf("expected *Error, got %T", wrapped)
			}
			if fsErr.Kind != tc.kind {
				t.Errorf("Kind = %v, want %v", fsErr.Kind, tc.kind)
			}
			if fsErr.Op != "settings.get" {
				t.Errorf("Op = %q", fsErr.Op)
			}
			if !errors.Is(wrapped, tc.err) {
				t.Errorf("expected wrapped error to unwrap to original")
			}
			if again := Classify("other", wrapped); again != wrapped {
				t.Errorf("expected classified error to pass through unchanged")
			}
		})
	}
}

func TestClassifyPassesCancellation(t *testing.T) {
	if err := Classify("op", context.Canceled); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := Classify("op", status.Error(codes.DeadlineExceeded, "slow")); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if Classify("op", nil) != nil {
		t.Fatalf("expected nil")
	}
}

func TestKindHelpers(t *testing.T) {
	if !IsNotFound(status.Error(codes.NotFound, "x")) {
		t.Errorf("expected raw status not found")
	}
	if !IsNotFound(Classify("op", status.Error(codes.NotFound, "x"))) {
		t.Errorf("expected wrapped not found")
	}
	if IsNotFound(errors.New("boom")) {
		t.Errorf("unexpected not found")
	}
	if !IsUnavailable(status.Error(codes.Unavailable, "x")) {
		t.Errorf("expected unavailable")
	}
	if got := KindOf(nil); got != KindUnknown {
		t.Errorf("KindOf(nil) = %v", got)
	}
}

func TestProviderRequiresProject(t *testing.T) {
	t.Setenv(projectEnv, "")
	p := NewProvider(config.FirestoreConfig{})
	if _, err := p.Client(context.Background()); !errors.Is(err, ErrNoProject) {
		t.Fatalf("expected ErrNoProject, got %v", err)
	}
	if _, err := p.Doc(context.Background(), "seoSettings", "default"); !errors.Is(err, ErrNoProject) {
		t.Fatalf("expected ErrNoProject from Doc, got %v", err)
	}
}

func TestProviderProjectFallsBackToEnv(t *testing.T) {
	t.Setenv(projectEnv, "env-project")
	if got := NewProvider(config.FirestoreConfig{}).ProjectID(); got != "env-project" {
		t.Fatalf("ProjectID = %q", got)
	}
	if got := NewProvider(config.FirestoreConfig{ProjectID: " cfg "}).ProjectID(); got != "cfg" {
		t.Fatalf("ProjectID = %q", got)
	}
}

func TestProviderClosed(t *testing.T) {
	p := NewProvider(config.FirestoreConfig{ProjectID: "test"})
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := p.Client(context.Background()); !errors.Is(err, ErrProviderClosed) {
		t.Fatalf("expected ErrProviderClosed, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
