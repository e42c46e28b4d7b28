package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

const (
	DefaultUploadDir      = "./tmp/uploads"
	DefaultUploadMaxSize  = 2 * 1024 * 1024
	DefaultUploadField    = "profilePic"
	DefaultUploadTimeout  = 30 * time.Second
	DefaultSweepInterval  = 10 * time.Minute
	DefaultTokenExpiresIn = 24 * time.Hour
)

var (
	DefaultAllowedTypes      = []string{"image/png", "image/jpg", "image/jpeg"}
	DefaultAllowedExtensions = []string{".png", ".jpg", ".jpeg"}
)

// Config holds server configuration
type Config struct {
	Port           int           // Port to listen on
	Secret         string        // Secret key for JWT signing
	Env            string        // Environment (development | production)
	LogLevel       string        // Optional override of the environment log level
	BaseURL        string        // Base URL for the server
	CORSOrigins    []string      // Origins allowed to send credentialed requests
	TokenExpiresIn time.Duration // Lifetime of the session cookie
	Upload         UploadConfig
}

// UploadConfig configures the profile picture upload pipeline
type UploadConfig struct {
	Dir               string        // Storage root directory
	MaxSize           int64         // Maximum file size in bytes
	AllowedTypes      []string      // Accepted declared media types
	AllowedExtensions []string      // Accepted lower-cased filename extensions, with leading dot
	Field             string        // Multipart form field carrying the file
	Timeout           time.Duration // Upper bound for streaming one upload
	SweepInterval     time.Duration // How often stale partial files are removed
}

func (c *Config) Log() {
	log.Info().
		Int("port", c.Port).
		Str("env", c.Env).
		Str("base_url", c.BaseURL).
		Strs("cors_origins", c.CORSOrigins).
		Dur("token_expires_in", c.TokenExpiresIn).
		Str("upload_dir", c.Upload.Dir).
		Str("upload_max_size", humanize.IBytes(uint64(c.Upload.MaxSize))).
		Strs("upload_allowed_types", c.Upload.AllowedTypes).
		Strs("upload_allowed_extensions", c.Upload.AllowedExtensions).
		Dur("upload_timeout", c.Upload.Timeout).
		Msg("server configuration")
}

// NewConfig creates a server configuration from environment variables
func NewConfig() (*Config, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port <= 0 {
		log.Error().Err(err).Msg("invalid PORT environment variable")
		return nil, fmt.Errorf("invalid PORT: %q", os.Getenv("PORT"))
	}

	secret := os.Getenv("SECRET")
	if secret == "" {
		log.Error().Msg("SECRET environment variable is required")
		return nil, fmt.Errorf("SECRET is required")
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "production"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	corsOrigins := parseList(os.Getenv("CORS_ORIGINS"))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"http://localhost:5173"}
	}

	tokenExpiresIn, err := parseDuration("TOKEN_EXPIRES_IN", DefaultTokenExpiresIn)
	if err != nil {
		return nil, err
	}

	upload, err := newUploadConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:           port,
		Secret:         secret,
		Env:            env,
		LogLevel:       os.Getenv("LOG_LEVEL"),
		BaseURL:        baseURL,
		CORSOrigins:    corsOrigins,
		TokenExpiresIn: tokenExpiresIn,
		Upload:         *upload,
	}, nil
}

func newUploadConfig() (*UploadConfig, error) {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = DefaultUploadDir
	}

	maxSize := int64(DefaultUploadMaxSize)
	if raw := os.Getenv("UPLOAD_MAX_SIZE"); raw != "" {
		size, err := parseSize(raw)
		if err != nil {
			log.Error().Err(err).Msg("invalid UPLOAD_MAX_SIZE configuration")
			return nil, err
		}
		maxSize = size
	}

	allowedTypes := parseList(os.Getenv("UPLOAD_ALLOWED_TYPES"))
	if len(allowedTypes) == 0 {
		allowedTypes = append([]string(nil), DefaultAllowedTypes...)
	}
	for i, t := range allowedTypes {
		allowedTypes[i] = strings.ToLower(t)
	}

	allowedExtensions := parseList(os.Getenv("UPLOAD_ALLOWED_EXTENSIONS"))
	if len(allowedExtensions) == 0 {
		allowedExtensions = append([]string(nil), DefaultAllowedExtensions...)
	}
	for i, ext := range allowedExtensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowedExtensions[i] = ext
	}

	field := os.Getenv("UPLOAD_FIELD")
	if field == "" {
		field = DefaultUploadField
	}

	timeout, err := parseDuration("UPLOAD_TIMEOUT", DefaultUploadTimeout)
	if err != nil {
		return nil, err
	}

	sweepInterval, err := parseDuration("UPLOAD_SWEEP_INTERVAL", DefaultSweepInterval)
	if err != nil {
		return nil, err
	}

	return &UploadConfig{
		Dir:               dir,
		MaxSize:           maxSize,
		AllowedTypes:      allowedTypes,
		AllowedExtensions: allowedExtensions,
		Field:             field,
		Timeout:           timeout,
		SweepInterval:     sweepInterval,
	}, nil
}

// maxUploadSize leaves headroom so the upload limits derived from it
// (one extra byte, multipart overhead) cannot overflow int64.
const maxUploadSize = math.MaxInt64 - 1<<20

// parseSize parses a human readable size such as "2MiB", "500KB" or "2097152".
// A bare number is a byte count. Note that "MB" is decimal (10^6) while "MiB" is binary.
func parseSize(size string) (int64, error) {
	value, err := humanize.ParseBytes(size)
	if err != nil {
		return 0, fmt.Errorf("invalid UPLOAD_MAX_SIZE: %w", err)
	}
	if value == 0 {
		return 0, fmt.Errorf("invalid UPLOAD_MAX_SIZE: must be greater than zero")
	}
	if value > maxUploadSize {
		return 0, fmt.Errorf("invalid UPLOAD_MAX_SIZE: must be at most %s", humanize.IBytes(maxUploadSize))
	}
	return int64(value), nil
}

// parseDuration reads a Go duration from key, falling back to def when unset.
// Plain integers are interpreted as seconds.
func parseDuration(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	if secs, err := strconv.Atoi(raw); err == nil {
		raw = fmt.Sprintf("%ds", secs)
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Error().Err(err).Str("key", key).Msg("invalid duration environment variable")
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
