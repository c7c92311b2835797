package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "billsift",
	Short: "Billsift - sift likely spam calls out of PDF phone bills",
	Long: `Billsift extracts the call records for one phone number from a
multi-page PDF phone bill and reports the short, non-whitelisted calls
that are likely spam.

The bill mixes unrelated billing content with call tables for many
numbers; billsift localizes the exact page and offset range belonging to
the target number, including blocks that begin or end mid-page, then
parses only that range.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("billsift v0.2.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.billsift/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads the .env file, the config file and environment
// variables. The .env names match the original report tooling so an
// existing .env keeps working.
func initConfig() {
	// A missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.billsift")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("BILLSIFT")
	viper.AutomaticEnv()

	// Legacy env names from the .env contract.
	_ = viper.BindEnv("pdf_path", "PDF_PATH")
	_ = viper.BindEnv("search_number", "SEARCH_NUMBER")
	_ = viper.BindEnv("search_key", "SEARCH_KEY")
	_ = viper.BindEnv("max_search_pages", "MAX_SEARCH_PAGES")
	_ = viper.BindEnv("section_header_rows", "SECTION_HEADER_ROWS")
	_ = viper.BindEnv("whitelisted_numbers", "WHITELISTED_NUMBERS")
	_ = viper.BindEnv("numverify_api_key", "NUMVERIFY_API_KEY")

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// baseConfig assembles the configuration from defaults, config file and
// environment. Command flags are layered on top by each command.
func baseConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("search_number"); v != "" {
		cfg.Search.Number = v
	}
	if v := viper.GetString("search_key"); v != "" {
		cfg.Search.Key = v
	}
	if v := viper.GetInt("max_search_pages"); v > 0 {
		cfg.Search.MaxPages = v
	}
	if v := viper.GetInt("section_header_rows"); v > 0 {
		cfg.Search.SectionHeaderRows = v
	}
	if v := viper.GetString("whitelisted_numbers"); v != "" {
		cfg.Filter.Whitelist = strings.Split(v, ",")
	}
	cfg.Carrier.APIKey = viper.GetString("numverify_api_key")
	cfg.Output.Verbose = verbose

	return cfg
}
