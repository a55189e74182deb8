// This file contains the command removing a game from ul.cfg.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	deleteIndex int
	deleteName  string
)

// deleteCmd removes a game's fragments and its ul.cfg record.
var deleteCmd = &cobra.Command{
	Use:   "delete [ul_directory]",
	Short: "Remove a game from ul.cfg along with its ul.* fragments",
	Long: `Remove a PlayStation 2 game from ul.cfg along with its ul.* fragments.

The game is selected either by its ul.cfg index or by its OPL name.
Use 'ulmake list' to get valid indices and names.

Examples:
  ulmake delete /media/usb --index 2
  ulmake delete /media/usb --name "My Game"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ulDir := resolveULDir(args, 0)
		processor := newProcessor()

		if cmd.Flags().Changed("index") {
			if err := processor.DeleteGameByIndex(ulDir, deleteIndex); err != nil {
				return err
			}
			fmt.Printf("Deleted game at index %d\n", deleteIndex)
			return nil
		}

		if err := processor.DeleteGameByName(ulDir, deleteName); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", deleteName)
		return nil
	},
}

// init initializes the delete command and its flags.
func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().IntVarP(&deleteIndex, "index", "i", 0, "ul.cfg index of the game to delete")
	deleteCmd.Flags().StringVarP(&deleteName, "name", "n", "", "OPL name of the game to delete")
	deleteCmd.MarkFlagsMutuallyExclusive("index", "name")
	deleteCmd.MarkFlagsOneRequired("index", "name")
}
