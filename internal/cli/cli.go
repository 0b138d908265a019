// Package cli wires cobra command definitions to internal/pipeline
// operations. Flag values live in package-level vars, registered on each
// command by its constructor function (newCacheCmd, newViewCmd, ...).
package cli

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zeebeeCoder/slack-tool/internal/chatapi"
	"github.com/zeebeeCoder/slack-tool/internal/clock"
	"github.com/zeebeeCoder/slack-tool/internal/config"
	"github.com/zeebeeCoder/slack-tool/internal/issueapi"
	"github.com/zeebeeCoder/slack-tool/internal/model"
	"github.com/zeebeeCoder/slack-tool/internal/pipeline"
	"github.com/zeebeeCoder/slack-tool/internal/ratelimit"
)

var (
	cfgFile string
	logger  logrus.FieldLogger

	cacheDays          int
	cacheHours         int
	cacheDryRun        bool
	cacheChannels      []string
	cacheCachePath     string
	cacheEnrichTickets bool
	cacheDate          string
	viewDate           string
	viewSince          string
	viewUntil          string
	queryChannel       string
)

// Root builds the top-level command with cache/view/stats/query wired in.
// newIssueClient is nil unless a caller has a real ticket-tracker
// integration to inject (none ships in this module — concrete HTTP
// collaborators are out of scope).
func Root(log logrus.FieldLogger, newIssueClient func(*config.Config) issueapi.Client) *cobra.Command {
	logger = log

	root := &cobra.Command{
		Use:   "slacktool",
		Short: "Ingest and query a chat workspace's message history",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")

	root.AddCommand(newCacheCmd(newIssueClient))
	root.AddCommand(newViewCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newQueryCmd())
	return root
}

func newCacheCmd(newIssueClient func(*config.Config) issueapi.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Fetch and persist messages for the configured channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			tokenKind := chatapi.TokenKindUser
			token := cfg.UserToken
			if token == "" {
				tokenKind = chatapi.TokenKindBot
				token = cfg.BotToken
			}
			_ = token // selection recorded for logging only; NotImplemented ignores it

			client := ratelimit.NewDefault(chatapi.NotImplemented{}, tokenKind)

			storageRoot := cfg.Storage.Root
			if cacheCachePath != "" {
				storageRoot = cacheCachePath
			}

			channels := make([]model.Channel, 0, len(cfg.Channels)+len(cacheChannels))
			for _, c := range cfg.Channels {
				channels = append(channels, c.Channel())
			}
			for _, id := range cacheChannels {
				channels = append(channels, model.Channel{ID: id})
			}
			if len(channels) == 0 {
				return fmt.Errorf("no channels to cache: set channels in the config file or pass --channel")
			}

			end := time.Now().UTC()
			if cacheDate != "" {
				end, err = clock.ParseDate(cacheDate)
				if err != nil {
					return err
				}
			}
			window := clock.Window(cacheDays, cacheHours, end)

			var issueClient issueapi.Client
			if (cfg.Jira.Enabled() || cacheEnrichTickets) && newIssueClient != nil {
				issueClient = newIssueClient(cfg)
			}

			p := pipeline.New(client, issueClient, storageRoot, logger)

			result, err := p.Cache(cmd.Context(), channels, window, cacheDryRun)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cached %d messages across %d channels", result.MessageCount, len(result.Channels))
			if result.TicketCount > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), ", %d tickets enriched", result.TicketCount)
			}
			if result.DryRun {
				fmt.Fprint(cmd.OutOrStdout(), " (dry run, nothing written)")
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().IntVar(&cacheDays, "days", 1, "number of days to look back from the end of the window")
	cmd.Flags().IntVar(&cacheHours, "hours", 0, "additional hours to look back, added to --days")
	cmd.Flags().BoolVar(&cacheDryRun, "dry-run", false, "fetch (and enrich) without writing to storage")
	cmd.Flags().StringArrayVar(&cacheChannels, "channel", nil, "channel id to cache (repeatable); adds to the channels configured in the config file")
	cmd.Flags().StringVar(&cacheCachePath, "cache-path", "", "override storage.root from the config file")
	cmd.Flags().BoolVar(&cacheEnrichTickets, "enrich-tickets", false, "enrich with ticket metadata even if jira.server is unset")
	cmd.Flags().StringVar(&cacheDate, "date", "", "end the window at this date (YYYY-MM-DD) instead of now")
	return cmd
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <channel>",
		Short: "Render a channel's reconstructed threads as text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			window, err := resolveViewWindow()
			if err != nil {
				return err
			}

			p := pipeline.New(chatapi.NotImplemented{}, nil, cfg.Storage.Root, logger)
			out, err := p.View(args[0], window)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&viewDate, "date", "", "single date to view (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&viewSince, "since", "", "range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&viewUntil, "until", "", "range end date (YYYY-MM-DD)")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show row/byte counts for every stored partition",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			p := pipeline.New(chatapi.NotImplemented{}, nil, cfg.Storage.Root, logger)
			stats, err := p.Stats()
			if err != nil {
				return err
			}
			for _, info := range stats.Partitions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d messages\t%d bytes\n", info.Date, info.Channel, info.MessageCount, info.Bytes)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "total\t%d partitions\t%d messages\t%d bytes\n", len(stats.Partitions), stats.TotalRows, stats.TotalBytes)
			return nil
		},
	}
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a SQL query over the stored Parquet dataset",
		Long: `Accepts a SQL string and a --channel flag, then returns an error:
this module ships no SQL execution engine and resolves no partition globs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("query: no QueryEngine configured (out of scope for this module)")
		},
	}
	cmd.Flags().StringVar(&queryChannel, "channel", "", "restrict the glob to one channel's partitions")
	return cmd
}

func resolveViewWindow() (window model.Window, err error) {
	switch {
	case viewSince != "" || viewUntil != "":
		since, until := viewSince, viewUntil
		if since == "" {
			since = clock.PartitionDate(time.Now().UTC())
		}
		if until == "" {
			until = clock.PartitionDate(time.Now().UTC())
		}
		start, serr := clock.ParseDate(since)
		if serr != nil {
			return window, serr
		}
		end, eerr := clock.ParseDate(until)
		if eerr != nil {
			return window, eerr
		}
		return clock.WindowForRange(start, end), nil
	case viewDate != "":
		d, derr := clock.ParseDate(viewDate)
		if derr != nil {
			return window, derr
		}
		return clock.WindowForDate(d), nil
	default:
		return clock.WindowForDate(time.Now().UTC()), nil
	}
}
