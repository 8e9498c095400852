package cmd

import (
	"context"
	"fmt"

	"github.com/pders01/checkpoint/internal/config"
	"github.com/pders01/checkpoint/internal/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var watchNoFsnotify bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Save checkpoints automatically",
	Long: `Run in the foreground and save a checkpoint whenever the game writes
a new save, and optionally on a schedule. Stop with Ctrl-C.

A change is saved once the primary save file has stopped changing for the
debounce window and kept its modification time over the stability window.

Examples:
  checkpoint watch
  checkpoint watch --schedule "@every 15m"
  checkpoint watch --no-fsnotify --schedule "*/30 * * * *"`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().String("schedule", "", "Cron schedule for periodic saves (e.g. \"@every 15m\")")
	watchCmd.Flags().Duration("debounce", 0, "Quiet period after a file event before saving (default from config, 2s)")
	watchCmd.Flags().Duration("stability", 0, "How long the save must stay unchanged before saving (default from config, 1s)")
	watchCmd.Flags().BoolVar(&watchNoFsnotify, "no-fsnotify", false, "Do not react to file changes")

	_ = viper.BindPFlag("watch.schedule", watchCmd.Flags().Lookup("schedule"))
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if cmd != nil && cmd.Context() != nil {
		ctx = cmd.Context()
	}

	cfg := watch.Config{
		Fsnotify:  config.GetWatchFsnotify() && !watchNoFsnotify,
		Debounce:  config.GetWatchDebounce(),
		Stability: config.GetWatchStability(),
		Schedule:  config.GetWatchSchedule(),
	}
	if cmd != nil {
		if d, err := cmd.Flags().GetDuration("debounce"); err == nil && d > 0 {
			cfg.Debounce = d
		}
		if d, err := cmd.Flags().GetDuration("stability"); err == nil && d > 0 {
			cfg.Stability = d
		}
	}

	sess := newSession()
	log := newLogger().Named("watch")

	log.Info("starting", "active", sess.Locations().Active, "backup", sess.Locations().Backup)

	if err := watch.New(sess, cfg, log).Run(ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	log.Info("stopped")
	return nil
}
