package cli

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tplfill/tpl-fill/internal/fetch"
	"github.com/tplfill/tpl-fill/internal/scan"
)

// Config holds the options for a headless run
type Config struct {
	MaxParallel  int
	Retries      int
	RetryDelay   time.Duration
	MaxFileSize  int64
	UserAgent    string
	FollowMarkup bool
	Overwrite    bool
}

const defaultMaxParallel = 4

var rootCmd = &cobra.Command{
	Use:   "tpl-fill",
	Short: "Fill a local web template with images from its demo site",
}

var scanCmd = &cobra.Command{
	Use:   "scan <template-root>",
	Short: "List the image files a template is missing",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		result, err := newScanner(cfg).Scan(args[0])
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}

		for _, c := range result.Candidates {
			fmt.Printf("%-12s %s\n", c.Reason, c.RelPath)
		}
		fmt.Printf("%d image files, %d healthy, %d to fetch\n",
			result.TotalImages, result.Healthy, len(result.Candidates))
	},
}

var fillCmd = &cobra.Command{
	Use:   "fill <template-root> <base-url>",
	Short: "Download missing and placeholder images from the demo site",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		result, err := newScanner(cfg).Scan(args[0])
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}

		if len(result.Candidates) == 0 {
			fmt.Println("All images are in place, nothing to fetch")
			return
		}

		client := fetch.NewClient(fetch.ClientConfig{
			Retries:     cfg.Retries,
			RetryDelay:  cfg.RetryDelay,
			MaxFileSize: cfg.MaxFileSize,
			UserAgent:   cfg.UserAgent,
		})
		service := fetch.NewService(client, cfg.MaxParallel)

		if err := service.Start(result.Root, args[1], result.Candidates); err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		service.Wait()

		if service.Summary().Failed > 0 {
			os.Exit(1)
		}
	},
}

// newScanner builds a scanner from the CLI config
func newScanner(cfg Config) *scan.Scanner {
	scanner := scan.NewScanner()
	scanner.FollowMarkup = cfg.FollowMarkup
	scanner.ReplacePlaceholders = cfg.Overwrite
	return scanner
}

// loadConfig merges defaults, config.yaml, and bound flags
func loadConfig() Config {
	viper.SetDefault("max_parallel", defaultMaxParallel)
	viper.SetDefault("retries", fetch.DefaultRetries)
	viper.SetDefault("retry_delay", fetch.DefaultRetryDelay)
	viper.SetDefault("max_file_size", fetch.DefaultMaxFileSize)
	viper.SetDefault("user_agent", fetch.DefaultUserAgent)
	viper.SetDefault("follow_markup", true)
	viper.SetDefault("overwrite_placeholders", true)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Missing config file is fine

	return Config{
		MaxParallel:  viper.GetInt("max_parallel"),
		Retries:      viper.GetInt("retries"),
		RetryDelay:   viper.GetDuration("retry_delay"),
		MaxFileSize:  viper.GetInt64("max_file_size"),
		UserAgent:    viper.GetString("user_agent"),
		FollowMarkup: viper.GetBool("follow_markup"),
		Overwrite:    viper.GetBool("overwrite_placeholders"),
	}
}

func init() {
	// Scanner flags apply to both scan and fill
	rootCmd.PersistentFlags().Bool("follow-markup", true, "Scan HTML/CSS for missing references")
	rootCmd.PersistentFlags().Bool("overwrite-placeholders", true, "Replace non-empty stub images")

	fillCmd.Flags().Int("max-parallel", defaultMaxParallel, "Number of concurrent downloads")
	fillCmd.Flags().Int("retries", fetch.DefaultRetries, "Retry attempts per file")
	fillCmd.Flags().Duration("retry-delay", fetch.DefaultRetryDelay, "Delay between retries")
	fillCmd.Flags().Int64("max-file-size", fetch.DefaultMaxFileSize, "Maximum file size in bytes")
	fillCmd.Flags().String("user-agent", fetch.DefaultUserAgent, "HTTP User-Agent header")

	viper.BindPFlag("follow_markup", rootCmd.PersistentFlags().Lookup("follow-markup"))
	viper.BindPFlag("overwrite_placeholders", rootCmd.PersistentFlags().Lookup("overwrite-placeholders"))
	viper.BindPFlag("max_parallel", fillCmd.Flags().Lookup("max-parallel"))
	viper.BindPFlag("retries", fillCmd.Flags().Lookup("retries"))
	viper.BindPFlag("retry_delay", fillCmd.Flags().Lookup("retry-delay"))
	viper.BindPFlag("max_file_size", fillCmd.Flags().Lookup("max-file-size"))
	viper.BindPFlag("user_agent", fillCmd.Flags().Lookup("user-agent"))

	rootCmd.AddCommand(scanCmd, fillCmd)
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}
