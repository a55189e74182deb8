// This file contains the command listing ul.cfg entries.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hansbonini/ulmake/pkg"
	"github.com/hansbonini/ulmake/pkg/common"
	"github.com/spf13/cobra"
)

var listFormat string

// listCmd prints the games registered in ul.cfg with their status.
var listCmd = &cobra.Command{
	Use:   "list [ul_directory]",
	Short: "List current entries in ul.cfg",
	Long: `List current entries in ul.cfg together with the state of their fragments.

Status is OK when every fragment is present, NO DATA when none is found and
LOST DATA when the number of fragments differs from ul.cfg.

Examples:
  ulmake list
  ulmake list /media/usb
  ulmake list /media/usb --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ulDir := resolveULDir(args, 0)

		format := listFormat
		if format == "" {
			format = config.ListFormat
		}

		if format == common.ListFormatTable {
			printLocation(ulDir)
		}

		_, err := newProcessor().ListGames(os.Stdout, ulDir, format)
		return err
	},
}

// printLocation shows where ul.cfg lives and how much space is left there.
func printLocation(ulDir string) {
	realPath, err := filepath.Abs(pkg.CatalogPath(ulDir))
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(realPath); err == nil {
			realPath = resolved
		}
		fmt.Printf("ul.cfg at %s\n", realPath)
	}

	free, err := common.AvailableSpace(ulDir)
	if err != nil {
		common.LogWarn("%v", common.FormatError(common.ErrFailedToQueryFreeSpace, err))
		return
	}
	fmt.Printf("Available space: %.2fGB\n", float64(free)/1_000_000_000.0)
}

// init initializes the list command and its flags.
func init() {
	rootCmd.AddCommand(listCmd)

	addFormatFlag(listCmd.Flags(), &listFormat)
}
