package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pders01/checkpoint/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration",
	Long: `Write a default config file and create the snapshot root.

This command:
  - Writes ~/.config/checkpoint/config.toml (or --config) if it doesn't exist
  - Creates the snapshot root directory

Run this once to see and adjust the paths checkpoint works with.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

// fileConfig is the layout of config.toml
type fileConfig struct {
	Paths struct {
		Active string `toml:"active"`
		Backup string `toml:"backup"`
	} `toml:"paths"`
	Snapshot struct {
		Files []string `toml:"files"`
	} `toml:"snapshot"`
	Watch struct {
		Debounce  string `toml:"debounce"`
		Stability string `toml:"stability"`
		Schedule  string `toml:"schedule"`
		Fsnotify  bool   `toml:"fsnotify"`
	} `toml:"watch"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

func defaultFileConfig() fileConfig {
	var cfg fileConfig
	locs := config.Load()
	cfg.Paths.Active = locs.Active
	cfg.Paths.Backup = locs.Backup
	cfg.Snapshot.Files = config.GetFileSet()
	cfg.Watch.Debounce = "2s"
	cfg.Watch.Stability = "1s"
	cfg.Watch.Fsnotify = true
	cfg.Log.Level = "info"
	return cfg
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "checkpoint", "config.toml"), nil
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	cfg := defaultFileConfig()

	exists, err := afero.Exists(appFs, path)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if exists && !initForce {
		fmt.Printf("Config already exists: %s\n", path)
	} else {
		if err := appFs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		f, err := appFs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			f.Close()
			return fmt.Errorf("failed to write config file: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Printf("✓ Created config: %s\n", path)
	}

	if err := appFs.MkdirAll(cfg.Paths.Backup, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot root: %w", err)
	}
	fmt.Printf("✓ Snapshot root: %s\n", cfg.Paths.Backup)

	fmt.Println("\n✓ checkpoint initialized successfully!")
	fmt.Println("  You can now use: checkpoint save")

	return nil
}
