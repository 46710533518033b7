package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/angelospk/streailer/internal/addon"
	"github.com/angelospk/streailer/pkg/core/metadata"
)

var (
	resolveType       string
	resolveIMDbID     string
	resolveTMDbID     int
	resolveLang       string
	resolveSeason     int
	resolveExternal   bool
	resolveRecaps     bool
	resolveRecapsOnly bool
	resolveJSON       bool
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the trailer and recap streams for a title",
	Long: `Runs the same resolution as the addon's stream route and prints the result.
Requires exactly one of --imdbid or --tmdbid.

Examples:
  streailer resolve --imdbid tt0133093
  streailer resolve --type series --imdbid tt0944947 --season 3 --lang de-DE --recaps
  streailer resolve --type series --tmdbid 1399 --season 2 --recaps-only --json`,
	RunE: runResolve,
}

func init() {
	RootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&resolveType, "type", "movie", "Type of title (movie, series)")
	resolveCmd.Flags().StringVar(&resolveIMDbID, "imdbid", "", "IMDb ID (e.g., tt0133093)")
	resolveCmd.Flags().IntVar(&resolveTMDbID, "tmdbid", 0, "TMDB ID")
	resolveCmd.Flags().StringVarP(&resolveLang, "lang", "l", "", "Language tag (e.g., it-IT); defaults to defaults.language")
	resolveCmd.Flags().IntVarP(&resolveSeason, "season", "s", 0, "Season number (series only)")
	resolveCmd.Flags().BoolVar(&resolveExternal, "external", false, "Return external watch links instead of embedded video ids")
	resolveCmd.Flags().BoolVar(&resolveRecaps, "recaps", false, "Include recaps of the seasons before --season")
	resolveCmd.Flags().BoolVar(&resolveRecapsOnly, "recaps-only", false, "Return only recaps when any are found")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Print the stream list as JSON")

	resolveCmd.MarkFlagsMutuallyExclusive("imdbid", "tmdbid")
}

func runResolve(cmd *cobra.Command, args []string) error {
	if resolveType != string(metadata.Movie) && resolveType != string(metadata.Series) {
		return fmt.Errorf("invalid --type: %s. Must be one of: movie, series", resolveType)
	}
	kind := metadata.MediaKind(resolveType)

	var id string
	switch {
	case resolveIMDbID != "":
		id = resolveIMDbID
	case resolveTMDbID > 0:
		id = "tmdb:" + strconv.Itoa(resolveTMDbID)
	default:
		return fmt.Errorf("one of --imdbid or --tmdbid must be provided")
	}
	ref, err := addon.ParseContentID(kind, id)
	if err != nil {
		return err
	}
	if kind == metadata.Series && resolveSeason > 0 {
		ref.Season = resolveSeason
	} else if resolveSeason > 0 {
		log.Warn("--season is ignored when --type is not 'series'")
	}

	cfg := metadata.ResolutionConfig{
		Language:           resolveLang,
		PreferExternalLink: resolveExternal,
		IncludeRecaps:      resolveRecaps,
		RecapsOnly:         resolveRecapsOnly,
	}
	if cfg.Language == "" {
		cfg.Language = viper.GetString(CfgKeyDefaultLanguage)
	}

	client, err := NewClientFunc(clientConfig())
	if err != nil {
		log.WithError(err).Error("Failed to initialize client")
		return fmt.Errorf("failed to initialize client: %w", err)
	}
	if !client.Available() {
		return fmt.Errorf("TMDB API key not configured. Set via key '%s' or env %s_TMDB_APIKEY", CfgKeyTMDBAPIKey, envPrefix)
	}

	log.WithFields(logrus.Fields{
		"ref":      ref,
		"language": cfg.Language,
	}).Info("Resolving streams...")

	streams := client.Streams(cmd.Context(), ref, cfg)

	out := cmd.OutOrStdout()
	if resolveJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{"streams": streams})
	}

	if len(streams) == 0 {
		fmt.Fprintln(out, "No streams found.")
		return nil
	}

	fmt.Fprintf(out, "Found %d stream(s):\n", len(streams))
	fmt.Fprintln(out, "--------------------------------------------------")
	for _, s := range streams {
		fmt.Fprintf(out, "%s\n", s.Name)
		fmt.Fprintf(out, "  Title: %s\n", s.Title)
		if s.ExternalURL != "" {
			fmt.Fprintf(out, "  Link: %s\n", s.ExternalURL)
		} else {
			fmt.Fprintf(out, "  Video: %s (%s)\n", s.YtID, metadata.WatchURL(s.YtID))
		}
		fmt.Fprintf(out, "  Group: %s\n", s.BehaviorHints.BingeGroup)
		fmt.Fprintln(out, "--------------------------------------------------")
	}
	return nil
}
