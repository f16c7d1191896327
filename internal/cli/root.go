package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/html2md/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	cacheEnabled bool
	cacheTTL     time.Duration
	timeout      time.Duration
	maxSize      int64
	userAgent    string
	summaryDir   string
	maxAttempts  int
	randomSeed   int64
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "html2md",
	Short: "Convert web pages to clean Markdown.",
	Long: `html2md fetches web pages, strips the page chrome, and converts the
remaining content into clean Markdown optimized for LLM context windows.

It runs either as a one-shot converter (the convert command) or as a
stdio tool server exposing the conversion as a callable tool (the serve
command). Results can be memoized in an in-process TTL cache.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Usage()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().BoolVar(&cacheEnabled, "cache", false, "memoize conversion results for repeated URLs")
	rootCmd.PersistentFlags().DurationVar(&cacheTTL, "cache-ttl", 0, "default time-to-live for cached conversions")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for HTTP requests")
	rootCmd.PersistentFlags().Int64Var(&maxSize, "max-size", 0, "maximum response size in bytes")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().StringVar(&summaryDir, "summary-dir", "", "directory for saved full-content files (defaults to the OS temp dir)")
	rootCmd.PersistentFlags().IntVar(&maxAttempts, "max-attempts", 0, "retry budget for transient fetch failures")
	rootCmd.PersistentFlags().Int64Var(&randomSeed, "random-seed", 0, "seed for random number generation (0 for current time)")
}

// InitConfig reads in config file and flags if set.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in config file and flags if set, returning any
// errors. This makes it easier to test error cases.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	// Build config from CLI flags using the With... functions with method chaining
	configBuilder := config.WithDefault()

	if cacheEnabled {
		configBuilder = configBuilder.WithCacheEnabled(cacheEnabled)
	}

	if cacheTTL > 0 {
		configBuilder = configBuilder.WithCacheDefaultTTL(cacheTTL)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithFetchTimeout(timeout)
	}

	if maxSize > 0 {
		configBuilder = configBuilder.WithMaxFetchSize(maxSize)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if summaryDir != "" {
		configBuilder = configBuilder.WithSummaryDir(summaryDir)
	}

	if maxAttempts > 0 {
		configBuilder = configBuilder.WithMaxAttempts(maxAttempts)
	}

	if randomSeed != 0 {
		configBuilder = configBuilder.WithRandomSeed(randomSeed)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ResetFlags() {
	cfgFile = ""
	cacheEnabled = false
	cacheTTL = 0
	timeout = 0
	maxSize = 0
	userAgent = ""
	summaryDir = ""
	maxAttempts = 0
	randomSeed = 0
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetCacheEnabledForTest(enabled bool) {
	cacheEnabled = enabled
}

func SetCacheTTLForTest(ttl time.Duration) {
	cacheTTL = ttl
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetMaxSizeForTest(size int64) {
	maxSize = size
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetSummaryDirForTest(dir string) {
	summaryDir = dir
}

func SetMaxAttemptsForTest(attempts int) {
	maxAttempts = attempts
}

func SetRandomSeedForTest(seed int64) {
	randomSeed = seed
}
