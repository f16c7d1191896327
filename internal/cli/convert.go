package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/html2md/internal/browser"
	"github.com/rohmanhakim/html2md/internal/server"
	"github.com/rohmanhakim/html2md/pkg/urlutil"
	"github.com/spf13/cobra"
)

var (
	convertFetchMethod    string
	convertBrowserType    string
	convertWaitFor        string
	convertHeadless       bool
	convertUserProfile    bool
	convertNoImages       bool
	convertNoTables       bool
	convertNoLinks        bool
	convertSummary        bool
	convertMaxTokens      int
	convertSectionID      string
	convertSectionHeading string
)

var convertCmd = &cobra.Command{
	Use:   "convert <url>",
	Short: "Convert a single URL to Markdown and print it.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := InitConfig()

		fetchURL, err := urlutil.Validate(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid URL format: %s\n", args[0])
			os.Exit(1)
		}

		browserType, err := browser.ParseBrowserType(convertBrowserType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		waitFor, err := browser.ParseWaitStrategy(convertWaitFor)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		fetchMethod := server.FetchMethod(convertFetchMethod)
		if fetchMethod != server.MethodFetch && fetchMethod != server.MethodPlaywright {
			fmt.Fprintf(os.Stderr, "Error: unknown fetch method: %q\n", convertFetchMethod)
			os.Exit(1)
		}
		if convertSectionID != "" && convertSectionHeading != "" {
			fmt.Fprintln(os.Stderr, "Error: --section-id and --section-heading are mutually exclusive")
			os.Exit(1)
		}

		service, err := newService(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		req := server.Request{
			URL:            fetchURL,
			IncludeImages:  !convertNoImages,
			IncludeTables:  !convertNoTables,
			IncludeLinks:   !convertNoLinks,
			Timeout:        cfg.ClampTimeout(cfg.FetchTimeout()),
			MaxSize:        cfg.ClampFetchSize(cfg.MaxFetchSize()),
			UseCache:       cfg.CacheEnabled(),
			CacheTTL:       cfg.ClampTTL(cfg.CacheDefaultTTL()),
			FetchMethod:    fetchMethod,
			BrowserType:    browserType,
			Headless:       convertHeadless,
			WaitFor:        waitFor,
			UseUserProfile: convertUserProfile,
			ReturnSummary:  convertSummary,
			MaxTokens:      cfg.ClampMaxTokens(convertMaxTokens),
			SectionID:      convertSectionID,
			SectionHeading: convertSectionHeading,
		}

		ctx, cancel := context.WithTimeout(context.Background(), req.Timeout+30*time.Second)
		defer cancel()

		outcome, convErr := service.Convert(ctx, req)
		if convErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", convErr)
			os.Exit(1)
		}

		fmt.Println(server.FormatOutcome(outcome))
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertFetchMethod, "fetch-method", "fetch", "fetch method: fetch (fast) or playwright (JS, auth)")
	convertCmd.Flags().StringVar(&convertBrowserType, "browser-type", "chromium", "browser to use with playwright")
	convertCmd.Flags().StringVar(&convertWaitFor, "wait-for", "networkidle", "page load wait strategy")
	convertCmd.Flags().BoolVar(&convertHeadless, "headless", true, "run browser in headless mode")
	convertCmd.Flags().BoolVar(&convertUserProfile, "use-user-profile", false, "use browser profile with cookies (requires playwright)")
	convertCmd.Flags().BoolVar(&convertNoImages, "no-images", false, "exclude images from the Markdown output")
	convertCmd.Flags().BoolVar(&convertNoTables, "no-tables", false, "exclude tables from the Markdown output")
	convertCmd.Flags().BoolVar(&convertNoLinks, "no-links", false, "exclude links from the Markdown output")
	convertCmd.Flags().BoolVar(&convertSummary, "summary", false, "return a summary with metadata instead of full content")
	convertCmd.Flags().IntVar(&convertMaxTokens, "max-tokens", 25000, "maximum tokens before auto-returning a summary")
	convertCmd.Flags().StringVar(&convertSectionID, "section-id", "", "extract only the section with this HTML anchor ID")
	convertCmd.Flags().StringVar(&convertSectionHeading, "section-heading", "", "extract only the section with this heading text")
}
