// Package firestore owns the process-wide Firestore client used by the
// settings store.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"finitefield.org/hanko-seo/internal/platform/config"
)

const (
	defaultConnectTimeout = 10 * time.Second
	emulatorEnv           = "FIRESTORE_EMULATOR_HOST"
	projectEnv            = "GOOGLE_CLOUD_PROJECT"
)

var (
	// ErrProviderClosed is returned by Client after Close.
	ErrProviderClosed = errors.New("firestore: provider is closed")
	// ErrNoProject means neither the config nor GOOGLE_CLOUD_PROJECT names one.
	ErrNoProject = errors.New("firestore: project id is required")
)

// Provider connects on first use and shares the client. Failed connects are
// retried by the next caller.
type Provider struct {
	projectID string
	emulator  string
	timeout   time.Duration

	mu     sync.Mutex
	client *firestore.Client
	closed bool
}

// ProviderOption tunes a Provider.
type ProviderOption func(*Provider)

// WithDialTimeout bounds client creation. Non-positive values are ignored.
func WithDialTimeout(d time.Duration) ProviderOption {
	return func(p *Provider) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewProvider reads the project and emulator host from cfg, falling back to
// GOOGLE_CLOUD_PROJECT and FIRESTORE_EMULATOR_HOST.
func NewProvider(cfg config.FirestoreConfig, opts ...ProviderOption) *Provider {
	p := &Provider{
		projectID: envFallback(cfg.ProjectID, projectEnv),
		emulator:  envFallback(cfg.EmulatorHost, emulatorEnv),
		timeout:   defaultConnectTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// ProjectID is the project the client connects to, or "".
func (p *Provider) ProjectID() string { return p.projectID }

// Client returns the shared client.
func (p *Provider) Client(ctx context.Context) (*firestore.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.closed:
		return nil, ErrProviderClosed
	case p.client != nil:
		return p.client, nil
	case p.projectID == "":
		return nil, ErrNoProject
	}

	connectCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	client, err := firestore.NewClient(connectCtx, p.projectID, p.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("firestore: connect to %s: %w", p.projectID, err)
	}
	p.client = client
	return client, nil
}

// Doc returns a reference to collection/id on the shared client.
func (p *Provider) Doc(ctx context.Context, collection, id string) (*firestore.DocumentRef, error) {
	client, err := p.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Collection(collection).Doc(id), nil
}

func (p *Provider) clientOptions() []option.ClientOption {
	if p.emulator == "" {
		return nil
	}
	// The Go client only honours the emulator through the environment.
	if os.Getenv(emulatorEnv) == "" {
		_ = os.Setenv(emulatorEnv, p.emulator)
	}
	return []option.ClientOption{
		option.WithEndpoint(p.emulator),
		option.WithoutAuthentication(),
		option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	}
}

// Close shuts the client down; the Provider is unusable afterwards.
func (p *Provider) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}

func envFallback(value, env string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(env))
}
