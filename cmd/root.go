// Package cmd provides the command-line interface for ulmake.
// ulmake manages PlayStation 2 games stored in the USBExtreme/USBAdvance
// format read by Open PS2 Loader: a ul.cfg catalog plus ul.* fragment files.
package cmd

import (
	"fmt"
	"os"

	"github.com/hansbonini/ulmake/pkg/common"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	// config is loaded before any subcommand runs
	config = common.DefaultConfig()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ulmake",
	Short: "Manage PlayStation 2 games in USBExtreme/USBAdvance format",
	Long: `ulmake - A utility that manages PlayStation 2 games in USBExtreme/USBAdvance
format (similarly to USB Util), as read by Open PS2 Loader.

Games are split into ul.<hash>.<serial>.NN fragment files and registered in the
ul.cfg catalog of the target directory.

Examples:
  ulmake add "Game.iso" /media/usb -n "My Game"
  ulmake list /media/usb
  ulmake delete /media/usb --index 0
  ulmake delete /media/usb --name "My Game"
  ulmake serial Game.iso

Use 'ulmake [command] --help' for more information about a command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration file and applies flag overrides on top of it.
func loadConfig(cmd *cobra.Command) error {
	common.SetVerboseMode(verbose)

	path := configPath
	required := cmd.Flags().Changed("config")
	if path == "" {
		defaultPath, err := common.DefaultConfigPath()
		if err != nil {
			common.LogDebug("No configuration directory: %v", err)
			config = common.DefaultConfig()
			return nil
		}
		path = defaultPath
	}

	cfg, err := common.LoadConfig(path, required)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	common.SetVerboseMode(cfg.Verbose)

	config = cfg
	return nil
}

// init initializes the root command with the flags shared by every subcommand.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default is $XDG_CONFIG_HOME/ulmake/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (show debug messages)")
}
