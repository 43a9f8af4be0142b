package connection

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/treelist/treelist.go/pkg/logger"
)

// Config carries everything the HTTP store needs. It is not absolutely
// necessary to build one through NewConfig, but doing so fills in the
// defaults for timeout, retry policy and logging.
type Config struct {
	BaseURL string
	Token   string

	// Timeout bounds one HTTP round trip, not one logical call: a call
	// that retries transient failures may take up to Attempts * Timeout
	// plus backoff.
	Timeout time.Duration

	// Attempts and Backoff control the internal transient-failure retry
	// (HTTP 429 and 5xx). Backoff grows linearly: the Nth retry waits
	// N * Backoff.
	Attempts int
	Backoff  time.Duration

	Logger logger.Logger
}

// NewConfig creates a Config for the service endpoint specified by the URL,
// such as "https://api.example.com/v1".
func NewConfig(u *url.URL, token string) *Config {
	return &Config{
		BaseURL:  strings.TrimSuffix(u.String(), "/"),
		Token:    token,
		Timeout:  10 * time.Second,
		Attempts: 4,
		Backoff:  250 * time.Millisecond,
		Logger:   logger.New(os.Stdout),
	}
}
