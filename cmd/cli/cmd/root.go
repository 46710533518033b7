package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/angelospk/streailer"
	"github.com/angelospk/streailer/internal/constants"
)

// Define configuration keys
const (
	CfgKeyTMDBAPIKey       = "tmdb.apikey"
	CfgKeyTMDBBaseURL      = "tmdb.baseurl"
	CfgKeyYouTubeBaseURL   = "youtube.baseurl"
	CfgKeyHTTPTimeout      = "http.timeout"
	CfgKeyHTTPUserAgent    = "http.useragent"
	CfgKeyServerHost       = "server.host"
	CfgKeyServerPort       = "server.port"
	CfgKeyRateLimitRequest = "server.ratelimit.requests"
	CfgKeyRateLimitWindow  = "server.ratelimit.window"
	CfgKeyDefaultLanguage  = "defaults.language"
	CfgKeyLogLevel         = "log.level"
	CfgKeyLogFormat        = "log.format"
	CfgKeyLogFile          = "log.file"
	CfgKeyLogMaxSizeMB     = "log.max_size_mb"
	CfgKeyLogMaxBackups    = "log.max_backups"
	CfgKeyLogMaxAgeDays    = "log.max_age_days"
)

// envPrefix maps e.g. tmdb.apikey to STREAILER_TMDB_APIKEY.
const envPrefix = "STREAILER"

var (
	// Used for flags.
	cfgFile string

	// log is shared by all commands; setupLogging configures it.
	log = logrus.New()

	// RootCmd represents the base command when called without any subcommands
	// Exported for use in tests
	RootCmd = &cobra.Command{
		Use:   "streailer",
		Short: "Trailer and recap stream provider for Stremio.",
		Long: `streailer resolves trailers and season recaps for movies and series,
in the viewer's language, using TMDB with a YouTube search fallback.

Run "streailer serve" to start the addon, or "streailer resolve" for a one-off lookup.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd.ErrOrStderr())
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.streailer/config.yaml or ./config.yaml)")

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(CfgKeyTMDBBaseURL, constants.DefaultTMDBBaseURL)
	v.SetDefault(CfgKeyYouTubeBaseURL, constants.DefaultYouTubeBaseURL)
	v.SetDefault(CfgKeyHTTPTimeout, 15*time.Second)
	v.SetDefault(CfgKeyHTTPUserAgent, constants.DefaultUserAgent)
	v.SetDefault(CfgKeyServerHost, "0.0.0.0")
	v.SetDefault(CfgKeyServerPort, 7020)
	v.SetDefault(CfgKeyRateLimitRequest, 120)
	v.SetDefault(CfgKeyRateLimitWindow, time.Minute)
	v.SetDefault(CfgKeyDefaultLanguage, constants.DefaultLanguage)
	v.SetDefault(CfgKeyLogLevel, "info")
	v.SetDefault(CfgKeyLogFormat, "text")
	v.SetDefault(CfgKeyLogMaxSizeMB, 50)
	v.SetDefault(CfgKeyLogMaxBackups, 3)
	v.SetDefault(CfgKeyLogMaxAgeDays, 28)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".streailer"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file; env vars and defaults apply.
		} else if os.IsNotExist(err) {
			// Config directory does not exist yet.
		} else {
			fmt.Fprintf(os.Stderr, "Error reading config file (%s): %v\n", viper.ConfigFileUsed(), err)
		}
	}
}

// setupLogging applies log.level and log.format, and redirects output to a
// rotating file when log.file is set.
func setupLogging(stderr io.Writer) error {
	level, err := logrus.ParseLevel(viper.GetString(CfgKeyLogLevel))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", CfgKeyLogLevel, err)
	}
	log.SetLevel(level)

	switch strings.ToLower(viper.GetString(CfgKeyLogFormat)) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid %s %q: must be text or json", CfgKeyLogFormat, viper.GetString(CfgKeyLogFormat))
	}

	if file := viper.GetString(CfgKeyLogFile); file != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    viper.GetInt(CfgKeyLogMaxSizeMB),
			MaxBackups: viper.GetInt(CfgKeyLogMaxBackups),
			MaxAge:     viper.GetInt(CfgKeyLogMaxAgeDays),
			Compress:   true,
		})
		return nil
	}
	log.SetOutput(stderr)
	return nil
}

// clientConfig builds the library configuration from viper.
func clientConfig() streailer.Config {
	return streailer.Config{
		APIKey:        viper.GetString(CfgKeyTMDBAPIKey),
		BaseURL:       viper.GetString(CfgKeyTMDBBaseURL),
		SearchBaseURL: viper.GetString(CfgKeyYouTubeBaseURL),
		UserAgent:     viper.GetString(CfgKeyHTTPUserAgent),
		HTTPClient:    &http.Client{Timeout: viper.GetDuration(CfgKeyHTTPTimeout)},
		Logger:        log,
	}
}
