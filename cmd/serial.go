// This file contains the command reading the serial of a disc image.
package cmd

import (
	"fmt"

	"github.com/hansbonini/ulmake/pkg"
	"github.com/spf13/cobra"
)

// serialCmd prints the serial found in an image's SYSTEM.CNF.
var serialCmd = &cobra.Command{
	Use:   "serial [image]",
	Short: "Print the serial of a PlayStation 2 disc image",
	Long: `Print the serial of a PlayStation 2 disc image, read from the boot line of
its SYSTEM.CNF. Cooked ISO images and raw 2352-byte sector images are supported.

Example:
  ulmake serial Game.iso`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serial, err := pkg.NewImageChunk(args[0]).Serial()
		if err != nil {
			return fmt.Errorf("failed to read serial: %w", err)
		}
		fmt.Println(serial)
		return nil
	},
}

// init initializes the serial command.
func init() {
	rootCmd.AddCommand(serialCmd)
}
