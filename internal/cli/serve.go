package cmd

import (
	"fmt"
	"os"

	"github.com/rohmanhakim/html2md/internal/browser"
	"github.com/rohmanhakim/html2md/internal/build"
	"github.com/rohmanhakim/html2md/internal/cache"
	"github.com/rohmanhakim/html2md/internal/config"
	"github.com/rohmanhakim/html2md/internal/convert"
	"github.com/rohmanhakim/html2md/internal/fetcher"
	"github.com/rohmanhakim/html2md/internal/metadata"
	"github.com/rohmanhakim/html2md/internal/sections"
	"github.com/rohmanhakim/html2md/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion tool over stdio.",
	Long: `serve runs the stdio tool server. Tool calls arrive on stdin and
responses leave on stdout, so all logging goes to stderr.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := InitConfig()

		srv, err := newServer(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		if err := srv.ServeStdio(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// newServer wires the full pipeline behind a stdio server.
func newServer(cfg config.Config) (*server.Server, error) {
	service, err := newService(cfg)
	if err != nil {
		return nil, err
	}
	return server.New(service, cfg, build.FullVersion()), nil
}

// newService builds the conversion service from configuration. Logging goes
// to stderr; stdout belongs to the tool protocol.
func newService(cfg config.Config) (*server.Service, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	recorder := metadata.NewRecorder(logger)
	sink := metadata.MetadataSink(&recorder)

	store, storeErr := cache.New(cfg.CacheEnabled(), cfg.CacheDefaultTTL(), sink)
	if storeErr != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", storeErr)
	}

	httpFetcher := fetcher.NewHtmlFetcher(sink)
	browserFetcher := browser.NewPlaywrightFetcher(sink)
	converter := convert.NewHtmlConverter(sink)
	summarizer := sections.NewSummarizer(sink, cfg.SummaryDir())

	return server.NewService(
		cfg,
		store,
		&httpFetcher,
		&browserFetcher,
		converter,
		summarizer,
		sink,
	), nil
}
