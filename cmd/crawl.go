package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"collab-notifier/domain/dto"
	"collab-notifier/infrastructure/configuration"
	"collab-notifier/infrastructure/logger"

	"github.com/spf13/cobra"
)

const crawlTimeout = 2 * time.Minute

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl listing and channel pages",
}

// crawlListingCmd stores a snapshot of every configured listing source
var crawlListingCmd = &cobra.Command{
	Use:   "listing [SOURCE...]",
	Short: "Snapshot listing pages",
	Long: `Fetch the configured listing sources, store a snapshot of each and publish
a snapshot event. Without arguments every source is crawled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), crawlTimeout)
		defer cancel()

		sources, err := selectSources(configuration.C.Crawler.Sources, args)
		if err != nil {
			return err
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		process, _ := cmd.Flags().GetBool("process")
		failed := 0
		for _, source := range sources {
			event, err := a.crawlerUsecase.CrawlListing(ctx, source.URL, source.Prefix)
			if err != nil {
				logger.GetLogger().WithFields(map[string]interface{}{"error": err, "source": source.Name}).Error("Failed to crawl listing")
				failed++
				continue
			}
			fmt.Printf("%s: stored %s\n", source.Name, event.Key)

			if process {
				videos, err := a.videoUsecase.HandleSnapshotStored(ctx, *event)
				if err != nil {
					logger.GetLogger().WithFields(map[string]interface{}{"error": err, "key": event.Key}).Error("Failed to process snapshot")
					failed++
					continue
				}
				fmt.Printf("%s: %d new video(s)\n", source.Name, len(videos))
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d source(s) failed", failed, len(sources))
		}
		return nil
	},
}

// crawlChannelsCmd refreshes the channel registry
var crawlChannelsCmd = &cobra.Command{
	Use:   "channels [URL]",
	Short: "Refresh the channel registry",
	Long:  `Fetch the channel list page and upsert every channel it lists. Blacklist flags are kept.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), crawlTimeout)
		defer cancel()

		listURL := configuration.C.Crawler.ChannelListURL
		if len(args) > 0 {
			listURL = args[0]
		}
		if listURL == "" {
			return fmt.Errorf("no channel list URL configured")
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		stored, err := a.channelUsecase.CrawlChannels(ctx, listURL)
		if err != nil {
			return fmt.Errorf("failed to crawl channels: %w", err)
		}
		fmt.Printf("Stored %d channel(s)\n", stored)
		return nil
	},
}

// crawlSnapshotCmd reprocesses a stored snapshot without crawling
var crawlSnapshotCmd = &cobra.Command{
	Use:   "snapshot [KEY]",
	Short: "Diff and enrich a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), crawlTimeout)
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		videos, err := a.videoUsecase.HandleSnapshotStored(ctx, dto.SnapshotStoredEvent{
			Bucket: configuration.C.Crawler.Bucket,
			Key:    args[0],
		})
		if err != nil {
			return fmt.Errorf("failed to process snapshot: %w", err)
		}
		result, err := json.MarshalIndent(videos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}
		fmt.Printf("Stored %d new video(s):\n%s\n", len(videos), string(result))
		return nil
	},
}

func selectSources(sources []configuration.Source, names []string) ([]configuration.Source, error) {
	if len(names) == 0 {
		if len(sources) == 0 {
			return nil, fmt.Errorf("no listing sources configured")
		}
		return sources, nil
	}
	byName := make(map[string]configuration.Source, len(sources))
	for _, s := range sources {
		byName[s.Name] = s
	}
	selected := make([]configuration.Source, 0, len(names))
	for _, name := range names {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown listing source %q", name)
		}
		selected = append(selected, s)
	}
	return selected, nil
}

func init() {
	crawlListingCmd.Flags().Bool("process", false, "Diff and enrich each snapshot right away instead of waiting for the event")

	crawlCmd.AddCommand(crawlListingCmd)
	crawlCmd.AddCommand(crawlChannelsCmd)
	crawlCmd.AddCommand(crawlSnapshotCmd)
	rootCmd.AddCommand(crawlCmd)
}
