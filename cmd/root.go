package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/pders01/checkpoint/internal/config"
	"github.com/pders01/checkpoint/internal/logging"
	"github.com/pders01/checkpoint/internal/session"
	"github.com/pders01/checkpoint/internal/store"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes returned by the checkpoint binary
const (
	exitFailure       = 1
	exitAlreadyExists = 3
	exitNotFound      = 4
)

var (
	cfgFile string

	// appFs is the filesystem every command works on
	appFs afero.Fs = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Timestamped save-game checkpoints",
	Long: `checkpoint creates immutable backups of a game's save files and
restores them on demand:
  - each snapshot is named after the save's modification time
    (save_YYYY-MM-DD_HH-MM-SS)
  - saving the same state twice is a no-op
  - snapshots are listed most recent first

Save files live in <active>/SaveGames, snapshots in <backup>/save_<timestamp>.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps command errors to process exit codes
func exitCode(err error) int {
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return exitAlreadyExists
	case errors.Is(err, store.ErrNotFound):
		return exitNotFound
	default:
		return exitFailure
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/checkpoint/config.toml)")
	rootCmd.PersistentFlags().String("active", "", "active save location containing SaveGames/")
	rootCmd.PersistentFlags().String("backup", "", "snapshot root (default is <active>/Backup)")
	rootCmd.PersistentFlags().String("log-level", "info", "diagnostic log level: trace|debug|info|warn|error")

	_ = viper.BindPFlag("paths.active", rootCmd.PersistentFlags().Lookup("active"))
	_ = viper.BindPFlag("paths.backup", rootCmd.PersistentFlags().Lookup("backup"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitFailure)
		}

		viper.AddConfigPath(filepath.Join(home, ".config", "checkpoint"))
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("checkpoint")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("watch.debounce", "2s")
	viper.SetDefault("watch.stability", "1s")
	viper.SetDefault("watch.schedule", "")
	viper.SetDefault("watch.fsnotify", true)
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err == nil {
		newLogger().Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// newSession builds a session from the current configuration
func newSession() *session.Session {
	return session.New(appFs, config.Load(), config.GetFileSet())
}

// newLogger builds the diagnostic logger on stderr
func newLogger() hclog.Logger {
	return logging.New("checkpoint", config.GetLogLevel(), os.Stderr)
}
