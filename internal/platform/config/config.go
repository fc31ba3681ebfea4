package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile           = ".env"
	defaultPort              = "8080"
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 15 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultSiteID            = "default"
	defaultSiteName          = "Hanko Field"
	defaultSiteRootURL       = "http://localhost:8080"
	defaultMediaURL          = "/media/"
	defaultContentDir        = "content"
	defaultContentCacheTTL   = 5 * time.Minute
	defaultTitleSeparator    = "—"
	defaultSettingsBackend   = "memory"
	defaultSettingsFile      = "seo-settings.yaml"
	defaultSQLitePath        = "seo.db"
	defaultFirestoreColl     = "seoSettings"
	defaultRenditionsBackend = "static"
	defaultGCSURLExpiry      = time.Hour
	defaultSecretsFallback   = ".secrets.local"
	defaultLogLevel          = "info"
)

// Settings backends understood by Load.
const (
	BackendMemory    = "memory"
	BackendFile      = "file"
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
)

// Rendition backends understood by Load.
const (
	RenditionsStatic = "static"
	RenditionsGCS    = "gcs"
)

// Config captures runtime configuration organised by concern.
type Config struct {
	Server     ServerConfig
	Site       SiteConfig
	Content    ContentConfig
	SEO        SEOConfig
	Settings   SettingsConfig
	Renditions RenditionsConfig
	Secrets    SecretsConfig
	LogLevel   string
	Dev        bool
}

// ServerConfig configures the preview HTTP server.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SiteConfig describes the single site served by this process.
type SiteConfig struct {
	ID       string
	Name     string
	RootURL  string
	MediaURL string
}

// ContentConfig locates markdown pages.
type ContentConfig struct {
	Dir      string
	CacheTTL time.Duration
}

// SEOConfig holds engine-wide defaults.
type SEOConfig struct {
	TitleSeparator string
}

// SettingsConfig selects where per-site SEO settings are persisted.
type SettingsConfig struct {
	Backend    string
	File       string
	SQLitePath string
	Firestore  FirestoreConfig
}

// FirestoreConfig stores database parameters.
type FirestoreConfig struct {
	ProjectID    string
	EmulatorHost string
	Collection   string
}

// RenditionsConfig selects how image rendition URLs are produced.
type RenditionsConfig struct {
	Backend    string
	Bucket     string
	AccessID   string
	PrivateKey string
	URLExpiry  time.Duration
}

// SecretsConfig configures secret:// resolution.
type SecretsConfig struct {
	ProjectID    string
	FallbackFile string
}

// SecretResolver resolves references to external secrets.
type SecretResolver interface {
	ResolveSecret(ctx context.Context, ref string) (string, error)
}

// SecretResolverFunc adapts ordinary functions to SecretResolver.
type SecretResolverFunc func(context.Context, string) (string, error)

// ResolveSecret calls f.
func (f SecretResolverFunc) ResolveSecret(ctx context.Context, ref string) (string, error) {
	return f(ctx, ref)
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// SecretError describes a failure while resolving a secret reference.
type SecretError struct {
	Ref string
	Err error
}

// Error implements the error interface.
func (e *SecretError) Error() string {
	return fmt.Sprintf("secret resolution failed for ref %q: %v", e.Ref, e.Err)
}

// Unwrap exposes the underlying error.
func (e *SecretError) Unwrap() error { return e.Err }

var errSecretResolverNotConfigured = errors.New("secret resolver not configured")

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
	secret       SecretResolver
}

// WithEnvFile overrides the .env file path; "" disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) { o.envFile = path }
}

// WithEnvMap injects explicit values that take precedence over the OS environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) { o.envMap = values }
}

// WithoutSystemEnv disables os.LookupEnv.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) { o.useSystemEnv = false }
}

// WithSecretResolver sets the resolver used for secret:// and sm:// references.
func WithSecretResolver(resolver SecretResolver) Option {
	return func(o *loaderOptions) { o.secret = resolver }
}

// Lookup returns a key lookup that applies Load's precedence (.env < OS < map)
// without building a Config. The serve command uses it to bootstrap the
// secret fetcher before the real Load.
func Lookup(opts ...Option) (func(string) (string, bool), error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	dotEnv, err := loadDotEnv(options.envFile)
	if err != nil {
		return nil, err
	}
	return options.lookup(dotEnv), nil
}

// Load assembles the configuration from defaults, .env, the environment and
// an optional secret resolver, then validates it.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	dotEnv, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}
	lookup := options.lookup(dotEnv)

	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "SEO_SERVER_PORT", portDefault(lookup)),
			ReadTimeout:  durationWithDefault(lookup, "SEO_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "SEO_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "SEO_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Site: SiteConfig{
			ID:       stringWithDefault(lookup, "SEO_SITE_ID", defaultSiteID),
			Name:     stringWithDefault(lookup, "SEO_SITE_NAME", defaultSiteName),
			RootURL:  strings.TrimRight(stringWithDefault(lookup, "SEO_SITE_ROOT_URL", defaultSiteRootURL), "/"),
			MediaURL: stringWithDefault(lookup, "SEO_MEDIA_URL", defaultMediaURL),
		},
		Content: ContentConfig{
			Dir:      stringWithDefault(lookup, "SEO_CONTENT_DIR", defaultContentDir),
			CacheTTL: durationWithDefault(lookup, "SEO_CONTENT_CACHE_TTL", defaultContentCacheTTL),
		},
		SEO: SEOConfig{
			TitleSeparator: stringWithDefault(lookup, "SEO_TITLE_SEP", defaultTitleSeparator),
		},
		Settings: SettingsConfig{
			Backend:    strings.ToLower(stringWithDefault(lookup, "SEO_SETTINGS_BACKEND", defaultSettingsBackend)),
			File:       stringWithDefault(lookup, "SEO_SETTINGS_FILE", defaultSettingsFile),
			SQLitePath: stringWithDefault(lookup, "SEO_SETTINGS_SQLITE_PATH", defaultSQLitePath),
			Firestore: FirestoreConfig{
				ProjectID:    stringWithDefault(lookup, "SEO_FIRESTORE_PROJECT_ID", ""),
				EmulatorHost: stringWithDefault(lookup, "SEO_FIRESTORE_EMULATOR_HOST", ""),
				Collection:   stringWithDefault(lookup, "SEO_FIRESTORE_COLLECTION", defaultFirestoreColl),
			},
		},
		Renditions: RenditionsConfig{
			Backend:    strings.ToLower(stringWithDefault(lookup, "SEO_RENDITIONS_BACKEND", defaultRenditionsBackend)),
			Bucket:     stringWithDefault(lookup, "SEO_GCS_BUCKET", ""),
			AccessID:   stringWithDefault(lookup, "SEO_GCS_ACCESS_ID", ""),
			PrivateKey: stringWithDefault(lookup, "SEO_GCS_PRIVATE_KEY", ""),
			URLExpiry:  durationWithDefault(lookup, "SEO_GCS_URL_EXPIRY", defaultGCSURLExpiry),
		},
		Secrets: SecretsConfig{
			ProjectID:    stringWithDefault(lookup, "SEO_SECRETS_PROJECT_ID", ""),
			FallbackFile: stringWithDefault(lookup, "SEO_SECRETS_FALLBACK_FILE", defaultSecretsFallback),
		},
		LogLevel: strings.ToLower(stringWithDefault(lookup, "SEO_LOG_LEVEL", defaultLogLevel)),
		Dev:      boolWithDefault(lookup, "SEO_DEV", false),
	}

	if cfg.Secrets.ProjectID == "" {
		cfg.Secrets.ProjectID = cfg.Settings.Firestore.ProjectID
	}

	key, err := resolveSecret(ctx, cfg.Renditions.PrivateKey, options.secret)
	if err != nil {
		return Config{}, err
	}
	cfg.Renditions.PrivateKey = key

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaultOptions() loaderOptions {
	return loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
		secret: SecretResolverFunc(func(_ context.Context, ref string) (string, error) {
			return "", &SecretError{Ref: ref, Err: errSecretResolverNotConfigured}
		}),
	}
}

func (o loaderOptions) lookup(dotEnv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if o.envMap != nil {
			if value, ok := o.envMap[key]; ok {
				return value, true
			}
		}
		if o.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnv != nil {
			if value, ok := dotEnv[key]; ok {
				return value, true
			}
		}
		return "", false
	}
}

// portDefault honours Cloud Run's PORT when SEO_SERVER_PORT is unset.
func portDefault(lookup func(string) (string, bool)) string {
	if value, ok := lookup("PORT"); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultPort
}

func resolveSecret(ctx context.Context, value string, resolver SecretResolver) (string, error) {
	if value == "" || !IsSecretReference(value) {
		return value, nil
	}
	normalized := normalizeSecretReference(value)
	if resolver == nil {
		return "", &SecretError{Ref: normalized, Err: errSecretResolverNotConfigured}
	}
	secret, err := resolver.ResolveSecret(ctx, normalized)
	if err != nil {
		return "", &SecretError{Ref: normalized, Err: err}
	}
	return secret, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	}
	if strings.TrimSpace(cfg.Site.ID) == "" {
		missing = append(missing, "Site.ID")
	}
	if u, err := url.Parse(cfg.Site.RootURL); err != nil || u.Scheme == "" || u.Host == "" {
		missing = append(missing, "Site.RootURL")
	}
	if cfg.Content.CacheTTL <= 0 {
		missing = append(missing, "Content.CacheTTL")
	}
	switch cfg.Settings.Backend {
	case BackendMemory:
	case BackendFile:
		if strings.TrimSpace(cfg.Settings.File) == "" {
			missing = append(missing, "Settings.File")
		}
	case BackendSQLite:
		if strings.TrimSpace(cfg.Settings.SQLitePath) == "" {
			missing = append(missing, "Settings.SQLitePath")
		}
	case BackendFirestore:
		if cfg.Settings.Firestore.ProjectID == "" {
			missing = append(missing, "Settings.Firestore.ProjectID")
		}
	default:
		missing = append(missing, "Settings.Backend")
	}
	switch cfg.Renditions.Backend {
	case RenditionsStatic:
	case RenditionsGCS:
		if cfg.Renditions.Bucket == "" {
			missing = append(missing, "Renditions.Bucket")
		}
		if cfg.Renditions.AccessID == "" {
			missing = append(missing, "Renditions.AccessID")
		}
		if cfg.Renditions.PrivateKey == "" {
			missing = append(missing, "Renditions.PrivateKey")
		}
		if cfg.Renditions.URLExpiry <= 0 {
			missing = append(missing, "Renditions.URLExpiry")
		}
	default:
		missing = append(missing, "Renditions.Backend")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

// IsSecretReference reports whether value points at a secret store.
func IsSecretReference(value string) bool {
	trimmed := strings.TrimSpace(value)
	return strings.HasPrefix(trimmed, "secret://") || strings.HasPrefix(trimmed, "sm://")
}

func normalizeSecretReference(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "sm://") {
		return "secret://" + strings.TrimPrefix(trimmed, "sm://")
	}
	return trimmed
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return fallback
}
