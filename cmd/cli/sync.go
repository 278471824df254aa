package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/formlift-io/iform/internal/client"
	"github.com/formlift-io/iform/internal/syncstore"
)

var recordsSyncCmd = &cobra.Command{
	Use:   "sync <page-id-or-name>",
	Short: "Incrementally pull new records into the local sync store",
	Long: `Pulls every record with an id above the stored watermark, caches
them locally and advances the watermark, so repeated runs only transfer
new submissions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		profileID, err := requireProfile()
		if err != nil {
			return err
		}

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		pageID, err := resolvePage(cmd, api, profileID, args[0])
		if err != nil {
			return err
		}

		store, err := syncstore.Open(cfg.Sync.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		reset, _ := cmd.Flags().GetBool("reset")
		if reset {
			if err := store.Reset(cfg.ServerHostname(), profileID, pageID); err != nil {
				return err
			}
			fmt.Println(warningStyle.Render("Watermark reset, next sync starts from scratch"))
		}

		fetched, err := syncPage(cmd.Context(), api, store, profileID, pageID)
		if err != nil {
			return err
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Synced %d new records", fetched)))
		return nil
	},
}

var recordsWatchCmd = &cobra.Command{
	Use:   "watch <page-id-or-name>",
	Short: "Continuously sync a page on a schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		profileID, err := requireProfile()
		if err != nil {
			return err
		}

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		pageID, err := resolvePage(cmd, api, profileID, args[0])
		if err != nil {
			return err
		}

		store, err := syncstore.Open(cfg.Sync.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		interval, err := watchInterval(cmd)
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Watching page %d every %s", pageID, interval)))

		scheduler := gocron.NewScheduler(time.UTC)

		_, err = scheduler.Every(interval).Do(func() {
			fetched, err := syncPage(cmd.Context(), api, store, profileID, pageID)
			if err != nil {
				logrus.WithError(err).Error("Sync run failed")
				return
			}
			if fetched > 0 {
				logrus.WithFields(logrus.Fields{
					"page":    pageID,
					"records": fetched,
				}).Info("Synced new records")
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule sync: %w", err)
		}

		scheduler.StartAsync()
		defer scheduler.Stop()

		// Block until interrupted
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		fmt.Println()
		fmt.Println(infoStyle.Render("Stopping watch"))
		return nil
	},
}

func watchInterval(cmd *cobra.Command) (time.Duration, error) {

	every, _ := cmd.Flags().GetString("every")
	if len(every) == 0 {
		every = cfg.Sync.Interval
	}

	interval, err := time.ParseDuration(every)
	if err != nil {
		return 0, fmt.Errorf("invalid sync interval %q: %w", every, err)
	}
	if interval < time.Second {
		return 0, fmt.Errorf("sync interval must be at least 1s")
	}

	return interval, nil
}

// syncPage runs one incremental pull and advances the watermark.
func syncPage(ctx context.Context, api *client.Client, store *syncstore.Store, profileID, pageID int64) (int, error) {

	server := cfg.ServerHostname()

	sinceID, err := store.LastRecordID(server, profileID, pageID)
	if err != nil {
		return 0, err
	}

	records, err := api.FetchAllRecords(ctx, profileID, pageID, sinceID)
	if err != nil {
		return 0, err
	}

	lastID := sinceID
	for _, record := range records {

		recordID := record.ID()
		if recordID > lastID {
			lastID = recordID
		}

		payload, err := json.Marshal(record)
		if err != nil {
			return 0, fmt.Errorf("failed to encode record %d: %w", recordID, err)
		}

		if err := store.CacheRecord(server, profileID, pageID, recordID, string(payload)); err != nil {
			return 0, err
		}
	}

	if err := store.Advance(server, profileID, pageID, lastID, len(records)); err != nil {
		return 0, err
	}

	return len(records), nil
}

func init() {
	recordsSyncCmd.Flags().Bool("reset", false, "Drop the watermark and cached records first")
	recordsWatchCmd.Flags().String("every", "", "Sync interval (default from config, e.g. 5m)")

	recordsCmd.AddCommand(recordsSyncCmd)
	recordsCmd.AddCommand(recordsWatchCmd)
}
