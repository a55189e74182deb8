// This file contains the command registering a disc image in ul.cfg.
package cmd

import (
	"fmt"

	"github.com/hansbonini/ulmake/pkg"
	"github.com/spf13/cobra"
)

var (
	addName         string
	addFragmentSize int64
)

// addCmd splits a disc image into fragments and appends it to ul.cfg.
var addCmd = &cobra.Command{
	Use:   "add [image] [ul_directory]",
	Short: "Create a USBExtreme game from an .iso and register it in ul.cfg",
	Long: `Create a USBExtreme/USBAdvance format PlayStation 2 game from a disc image
and register it in the ul.cfg file of the target directory.

If ul.cfg is not found there, a new one is created. The directory defaults to
ul_path from the configuration file.

The game name is shown by Open PS2 Loader and must be at most 32 bytes.
When not specified, the image file name is used.

Examples:
  ulmake add Game.iso /media/usb
  ulmake add Game.iso /media/usb -n "My Game"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath := args[0]
		ulDir := resolveULDir(args, 1)

		processor := newProcessor(pkg.WithFragmentSize(addFragmentSize))

		fmt.Printf("Processing image: %s\n", imagePath)
		fmt.Printf("Target directory: %s\n", ulDir)

		game, err := processor.AddGame(imagePath, ulDir, addName)
		if err != nil {
			return err
		}

		fmt.Printf("Added %s (%s) in %d chunks\n", game.Name, displaySerial(game), game.NumChunks())
		return nil
	},
}

// displaySerial returns the game's serial, or a placeholder when it cannot be read.
func displaySerial(game *pkg.Game) string {
	serial, err := game.Serial()
	if err != nil {
		return pkg.SerialNotFound
	}
	return serial
}

// init initializes the add command and its flags.
func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addName, "name", "n", "", "name under which the game is shown in OPL (default is the image file name)")
	addFragmentSizeFlag(addCmd.Flags(), &addFragmentSize)
}
