package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type Config struct {
	//===============
	// Cache
	//===============
	// Whether conversion results are memoized unless a request opts out
	cacheEnabled bool
	// TTL applied when a request does not specify one
	cacheDefaultTTL time.Duration
	// Per-request TTLs are clamped into [cacheMinTTL, cacheMaxTTL]
	cacheMinTTL time.Duration
	cacheMaxTTL time.Duration

	//===============
	// Fetch
	//===============
	// Default timeout of a single fetch request
	fetchTimeout time.Duration
	// Per-request timeouts are clamped into [fetchMinTimeout, fetchMaxTimeout]
	fetchMinTimeout time.Duration
	fetchMaxTimeout time.Duration
	// Default maximum response size in bytes
	maxFetchSize int64
	// Per-request size caps are clamped into [minFetchSize, maxFetchSizeCap]
	minFetchSize    int64
	maxFetchSizeCap int64
	// User agent used in request headers. Raw string
	userAgent string
	// Retry budget for transient transport failures
	maxAttempts int
	// Initial delay for backoff
	backoffInitialDuration time.Duration
	// Multiplier during exponential backoff
	backoffMultiplier float64
	// Capped maximum delay for backoff
	backoffMaxDuration time.Duration
	// Randomized variation added on top of the backoff delay
	jitter time.Duration
	// Controls the random number generator
	randomSeed int64

	//===============
	// Response shaping
	//===============
	// Token budget above which a summary is returned instead of full content
	maxTokens int
	// Per-request budgets are clamped into [minMaxTokens, maxMaxTokens]
	minMaxTokens int
	maxMaxTokens int
	// Directory for saved full-content files on the summary path.
	// Empty means the OS temp directory
	summaryDir string
}

type configDTO struct {
	CacheEnabled           bool          `json:"cacheEnabled,omitempty"`
	CacheDefaultTTL        time.Duration `json:"cacheDefaultTtl,omitempty"`
	CacheMinTTL            time.Duration `json:"cacheMinTtl,omitempty"`
	CacheMaxTTL            time.Duration `json:"cacheMaxTtl,omitempty"`
	FetchTimeout           time.Duration `json:"fetchTimeout,omitempty"`
	FetchMinTimeout        time.Duration `json:"fetchMinTimeout,omitempty"`
	FetchMaxTimeout        time.Duration `json:"fetchMaxTimeout,omitempty"`
	MaxFetchSize           int64         `json:"maxFetchSize,omitempty"`
	MinFetchSize           int64         `json:"minFetchSize,omitempty"`
	MaxFetchSizeCap        int64         `json:"maxFetchSizeCap,omitempty"`
	UserAgent              string        `json:"userAgent,omitempty"`
	MaxAttempts            int           `json:"maxAttempts,omitempty"`
	BackoffInitialDuration time.Duration `json:"backoffInitialDuration,omitempty"`
	BackoffMultiplier      float64       `json:"backoffMultiplier,omitempty"`
	BackoffMaxDuration     time.Duration `json:"backoffMaxDuration,omitempty"`
	Jitter                 time.Duration `json:"jitter,omitempty"`
	RandomSeed             int64         `json:"randomSeed,omitempty"`
	MaxTokens              int           `json:"maxTokens,omitempty"`
	MinMaxTokens           int           `json:"minMaxTokens,omitempty"`
	MaxMaxTokens           int           `json:"maxMaxTokens,omitempty"`
	SummaryDir             string        `json:"summaryDir,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	// Start with default config
	cfg, err := WithDefault().Build()
	if err != nil {
		return Config{}, err
	}

	// CacheEnabled is a boolean, use the DTO value as-is
	cfg.cacheEnabled = dto.CacheEnabled

	// For other fields, only override if non-zero value is provided
	if dto.CacheDefaultTTL != 0 {
		cfg.cacheDefaultTTL = dto.CacheDefaultTTL
	}
	if dto.CacheMinTTL != 0 {
		cfg.cacheMinTTL = dto.CacheMinTTL
	}
	if dto.CacheMaxTTL != 0 {
		cfg.cacheMaxTTL = dto.CacheMaxTTL
	}
	if dto.FetchTimeout != 0 {
		cfg.fetchTimeout = dto.FetchTimeout
	}
	if dto.FetchMinTimeout != 0 {
		cfg.fetchMinTimeout = dto.FetchMinTimeout
	}
	if dto.FetchMaxTimeout != 0 {
		cfg.fetchMaxTimeout = dto.FetchMaxTimeout
	}
	if dto.MaxFetchSize != 0 {
		cfg.maxFetchSize = dto.MaxFetchSize
	}
	if dto.MinFetchSize != 0 {
		cfg.minFetchSize = dto.MinFetchSize
	}
	if dto.MaxFetchSizeCap != 0 {
		cfg.maxFetchSizeCap = dto.MaxFetchSizeCap
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.MaxAttempts != 0 {
		cfg.maxAttempts = dto.MaxAttempts
	}
	if dto.BackoffInitialDuration != 0 {
		cfg.backoffInitialDuration = dto.BackoffInitialDuration
	}
	if dto.BackoffMultiplier != 0 {
		cfg.backoffMultiplier = dto.BackoffMultiplier
	}
	if dto.BackoffMaxDuration != 0 {
		cfg.backoffMaxDuration = dto.BackoffMaxDuration
	}
	if dto.Jitter != 0 {
		cfg.jitter = dto.Jitter
	}
	if dto.RandomSeed != 0 {
		cfg.randomSeed = dto.RandomSeed
	}
	if dto.MaxTokens != 0 {
		cfg.maxTokens = dto.MaxTokens
	}
	if dto.MinMaxTokens != 0 {
		cfg.minMaxTokens = dto.MinMaxTokens
	}
	if dto.MaxMaxTokens != 0 {
		cfg.maxMaxTokens = dto.MaxMaxTokens
	}
	if dto.SummaryDir != "" {
		cfg.summaryDir = dto.SummaryDir
	}

	return cfg.validate()
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	err = json.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfg, err := newConfigFromDTO(cfgDTO)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithDefault creates a new Config with default values for all fields.
// The defaults mirror the tool's parameter schema.
func WithDefault() *Config {
	defaultConfig := Config{
		cacheEnabled:           false,
		cacheDefaultTTL:        time.Hour,
		cacheMinTTL:            time.Minute,
		cacheMaxTTL:            24 * time.Hour,
		fetchTimeout:           30 * time.Second,
		fetchMinTimeout:        5 * time.Second,
		fetchMaxTimeout:        120 * time.Second,
		maxFetchSize:           10 * 1024 * 1024,
		minFetchSize:           1 * 1024 * 1024,
		maxFetchSizeCap:        50 * 1024 * 1024,
		userAgent:              "Mozilla/5.0 (compatible; html2md/1.0; +https://github.com/rohmanhakim/html2md)",
		maxAttempts:            3,
		backoffInitialDuration: 500 * time.Millisecond,
		backoffMultiplier:      2.0,
		backoffMaxDuration:     5 * time.Second,
		jitter:                 100 * time.Millisecond,
		randomSeed:             time.Now().UnixNano(),
		maxTokens:              25000,
		minMaxTokens:           1000,
		maxMaxTokens:           100000,
		summaryDir:             "",
	}
	return &defaultConfig
}

func (c *Config) WithCacheEnabled(enabled bool) *Config {
	c.cacheEnabled = enabled
	return c
}

func (c *Config) WithCacheDefaultTTL(ttl time.Duration) *Config {
	c.cacheDefaultTTL = ttl
	return c
}

func (c *Config) WithCacheTTLBounds(min, max time.Duration) *Config {
	c.cacheMinTTL = min
	c.cacheMaxTTL = max
	return c
}

func (c *Config) WithFetchTimeout(timeout time.Duration) *Config {
	c.fetchTimeout = timeout
	return c
}

func (c *Config) WithMaxFetchSize(size int64) *Config {
	c.maxFetchSize = size
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithMaxAttempts(attempts int) *Config {
	c.maxAttempts = attempts
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithMaxTokens(tokens int) *Config {
	c.maxTokens = tokens
	return c
}

func (c *Config) WithSummaryDir(dir string) *Config {
	c.summaryDir = dir
	return c
}

func (c *Config) Build() (Config, error) {
	return c.validate()
}

func (c *Config) validate() (Config, error) {
	if c.cacheDefaultTTL <= 0 {
		return Config{}, fmt.Errorf("%w: cache default ttl must be positive", ErrInvalidConfig)
	}
	if c.cacheMinTTL <= 0 || c.cacheMaxTTL < c.cacheMinTTL {
		return Config{}, fmt.Errorf("%w: cache ttl bounds must be positive and ordered", ErrInvalidConfig)
	}
	if c.fetchTimeout <= 0 {
		return Config{}, fmt.Errorf("%w: fetch timeout must be positive", ErrInvalidConfig)
	}
	if c.fetchMinTimeout <= 0 || c.fetchMaxTimeout < c.fetchMinTimeout {
		return Config{}, fmt.Errorf("%w: fetch timeout bounds must be positive and ordered", ErrInvalidConfig)
	}
	if c.maxFetchSize <= 0 {
		return Config{}, fmt.Errorf("%w: max fetch size must be positive", ErrInvalidConfig)
	}
	if c.minFetchSize <= 0 || c.maxFetchSizeCap < c.minFetchSize {
		return Config{}, fmt.Errorf("%w: fetch size bounds must be positive and ordered", ErrInvalidConfig)
	}
	if c.maxAttempts < 1 {
		return Config{}, fmt.Errorf("%w: max attempts must be at least 1", ErrInvalidConfig)
	}
	if c.maxTokens <= 0 || c.minMaxTokens <= 0 || c.maxMaxTokens < c.minMaxTokens {
		return Config{}, fmt.Errorf("%w: token budgets must be positive and ordered", ErrInvalidConfig)
	}
	return *c, nil
}

func (c Config) CacheEnabled() bool {
	return c.cacheEnabled
}

func (c Config) CacheDefaultTTL() time.Duration {
	return c.cacheDefaultTTL
}

func (c Config) FetchTimeout() time.Duration {
	return c.fetchTimeout
}

func (c Config) MaxFetchSize() int64 {
	return c.maxFetchSize
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) MaxAttempts() int {
	return c.maxAttempts
}

func (c Config) BackoffInitialDuration() time.Duration {
	return c.backoffInitialDuration
}

func (c Config) BackoffMultiplier() float64 {
	return c.backoffMultiplier
}

func (c Config) BackoffMaxDuration() time.Duration {
	return c.backoffMaxDuration
}

func (c Config) Jitter() time.Duration {
	return c.jitter
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) MaxTokens() int {
	return c.maxTokens
}

func (c Config) SummaryDir() string {
	return c.summaryDir
}

// The cache store performs no bound enforcement; requests are clamped here,
// before key derivation and before any Put.

func (c Config) ClampTTL(ttl time.Duration) time.Duration {
	if ttl < c.cacheMinTTL {
		return c.cacheMinTTL
	}
	if ttl > c.cacheMaxTTL {
		return c.cacheMaxTTL
	}
	return ttl
}

func (c Config) ClampTimeout(timeout time.Duration) time.Duration {
	if timeout < c.fetchMinTimeout {
		return c.fetchMinTimeout
	}
	if timeout > c.fetchMaxTimeout {
		return c.fetchMaxTimeout
	}
	return timeout
}

func (c Config) ClampFetchSize(size int64) int64 {
	if size < c.minFetchSize {
		return c.minFetchSize
	}
	if size > c.maxFetchSizeCap {
		return c.maxFetchSizeCap
	}
	return size
}

func (c Config) ClampMaxTokens(tokens int) int {
	if tokens < c.minMaxTokens {
		return c.minMaxTokens
	}
	if tokens > c.maxMaxTokens {
		return c.maxMaxTokens
	}
	return tokens
}
