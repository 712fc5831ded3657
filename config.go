package shopsync

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// configService wraps viper for environment/.env lookups.
type configService struct {
	v *viper.Viper
}

func newConfigService() *configService {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading Config file: %v\n", err)
	}

	return &configService{v: v}
}

func (c *configService) EnvString(envName string, defaultValue ...string) string {
	value := c.v.Get(envName)
	if value != nil && fmt.Sprint(value) != "" {
		return fmt.Sprint(value)
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}

	return ""
}

func (c *configService) EnvInt(envName string, defaultValue int) int {
	value := c.v.Get(envName)
	if value == nil {
		return defaultValue
	}
	n, err := strconv.Atoi(fmt.Sprint(value))
	if err != nil {
		return defaultValue
	}
	return n
}

func (c *configService) EnvBool(envName string, defaultValue bool) bool {
	value := c.v.Get(envName)
	if value == nil {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(fmt.Sprint(value)))
	if err != nil {
		return defaultValue
	}
	return b
}

// Config is built once at process start and handed to every component.
// Nothing below this layer reads the environment directly.
type Config struct {
	LogLevel         string
	RateLimitDelay   time.Duration
	MaxRetryAttempts int
	RequestTimeout   time.Duration
	SyncTimeout      time.Duration
	DeleteTimeout    time.Duration
	OutputDir        string

	APIURL      string
	AuthURL     string
	AuthAnonKey string

	SyncBatchSize int

	// Invalid variants are dropped with a log line by default, matching the
	// product feed's lenient shape. Flip to collect them next to product
	// failures in the run artifact.
	RecordVariantFailures bool

	// When set, a batch whose reported created-count differs from the number
	// of products submitted counts as a batch error even if the remote says
	// success.
	StrictBatchAccounting bool

	CheckRobotsTxt bool

	GCSBucket          string
	GCPCredentialsPath string

	UserAgent string
}

// NewConfig reads the environment (and an optional .env file) into an
// immutable Config.
func NewConfig() Config {
	c := newConfigService()

	return Config{
		LogLevel:         c.EnvString("LOG_LEVEL", "info"),
		RateLimitDelay:   time.Duration(c.EnvInt("SCRAPE_DELAY_MS", 2000)) * time.Millisecond,
		MaxRetryAttempts: c.EnvInt("MAX_RETRY_ATTEMPTS", 3),
		RequestTimeout:   time.Duration(c.EnvInt("REQUEST_TIMEOUT_MS", 30000)) * time.Millisecond,
		SyncTimeout:      time.Duration(c.EnvInt("SYNC_TIMEOUT_MS", 120000)) * time.Millisecond,
		DeleteTimeout:    time.Duration(c.EnvInt("DELETE_TIMEOUT_MS", 60000)) * time.Millisecond,
		OutputDir:        c.EnvString("OUTPUT_DIR", "storage/data"),

		APIURL:      c.EnvString("API_URL"),
		AuthURL:     c.EnvString("SUPABASE_URL"),
		AuthAnonKey: c.EnvString("SUPABASE_ANON_KEY"),

		SyncBatchSize: c.EnvInt("SYNC_BATCH_SIZE", 20),

		RecordVariantFailures: c.EnvBool("RECORD_VARIANT_FAILURES", false),
		StrictBatchAccounting: c.EnvBool("STRICT_BATCH_ACCOUNTING", false),

		CheckRobotsTxt: c.EnvBool("CHECK_ROBOTS_TXT", true),

		GCSBucket:          c.EnvString("GCS_BUCKET"),
		GCPCredentialsPath: c.EnvString("GCP_CREDENTIALS_PATH"),

		UserAgent: c.EnvString("USER_AGENT", "shopsync/1.0 (+https://github.com/lazuli-inc/shopsync)"),
	}
}
