package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	// Version is the current version of PyBryt
	Version = "1.0.0"
)

// Config holds the global configuration for the PyBryt CLI
type Config struct {
	ConfigDir string
	Debug     bool
}

// GlobalConfig is the shared configuration instance
var GlobalConfig = &Config{}

// NewRootCommand creates the root cobra command for PyBryt
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pybryt",
		Short: "PyBryt - Automated correctness and plagiarism checking for submissions",
		Long: `PyBryt checks student program submissions by capturing the memory footprint
of an execution (the time-ordered values the program produced) and matching it
against reference implementations that encode expected computational behavior,
independent of the submission's exact code structure.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize configuration
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			// Setup logging
			if GlobalConfig.Debug {
				log.SetOutput(os.Stderr)
				log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			} else {
				log.SetOutput(io.Discard)
			}

			return nil
		},
	}

	// Persistent flags (available to all subcommands)
	cmd.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&GlobalConfig.ConfigDir, "config-dir", "", "Configuration directory (default: ~/.pybryt)")

	// Add subcommands
	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewCompareCommand())
	cmd.AddCommand(NewExportCommand())
	cmd.AddCommand(NewImportCommand())
	cmd.AddCommand(NewReferencesCommand())
	cmd.AddCommand(NewResultsCommand())

	return cmd
}

// initConfig initializes the PyBryt configuration directory and files
func initConfig() error {
	// Determine config directory
	// Environment variable always takes priority (for testing)
	if envDir := os.Getenv("PYBRYT_CONFIG_DIR"); envDir != "" {
		GlobalConfig.ConfigDir = envDir
	} else if GlobalConfig.ConfigDir == "" {
		// Use default ~/.pybryt
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		GlobalConfig.ConfigDir = filepath.Join(homeDir, ".pybryt")
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(GlobalConfig.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create subdirectories
	dirs := []string{"references", "artifacts"}
	for _, dir := range dirs {
		dirPath := filepath.Join(GlobalConfig.ConfigDir, dir)
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Load or create config file
	configFile := filepath.Join(GlobalConfig.ConfigDir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		// Create default config
		defaultConfig := map[string]interface{}{
			"version": "1.0",
		}
		data, err := yaml.Marshal(defaultConfig)
		if err != nil {
			return fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err := os.WriteFile(configFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
	}

	return nil
}

// GetConfigDir returns the configuration directory path
// Priority order: 1) PYBRYT_CONFIG_DIR env var (for testing), 2) GlobalConfig.ConfigDir, 3) ~/.pybryt
func GetConfigDir() string {
	// Check environment variable first (for testing)
	if envDir := os.Getenv("PYBRYT_CONFIG_DIR"); envDir != "" {
		return envDir
	}
	if GlobalConfig.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory if home dir cannot be determined
			return ".pybryt"
		}
		return filepath.Join(homeDir, ".pybryt")
	}
	return GlobalConfig.ConfigDir
}

// GetReferencesDir returns the stored references directory path
func GetReferencesDir() string {
	return filepath.Join(GetConfigDir(), "references")
}

// GetDatabasePath returns the path to the check history database
func GetDatabasePath() string {
	return filepath.Join(GetConfigDir(), "pybryt.db")
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
