package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/wkalt/tileland/cli/util"
	"github.com/wkalt/tileland/coverage"
	"github.com/wkalt/tileland/spiral"
)

var mintOwner string

func printTiles(w io.Writer, tiles []coverage.Tile) {
	rows := make([][]string, 0, len(tiles))
	for _, tile := range tiles {
		c := spiral.Decode(tile.ID)
		rows = append(rows, []string{
			spiral.FormatID(tile.ID),
			fmt.Sprintf("%d", c.X),
			fmt.Sprintf("%d", c.Y),
			fmt.Sprintf("%d", tile.Width),
			fmt.Sprintf("%d", tile.Height),
		})
	}
	util.PrintTable(w, []string{"id", "x", "y", "width", "height"}, rows)
}

var mintCmd = &cobra.Command{
	Use:   "mint ID [WIDTH HEIGHT]",
	Short: "Mint a tile or a rectangle of tiles",
	Args:  cobra.RangeArgs(1, 3),
	Run: func(_ *cobra.Command, args []string) {
		if len(args) == 2 {
			bailf("width and height must be supplied together")
		}
		width, height := uint8(1), uint8(1)
		if len(args) == 3 {
			var err error
			width, err = parseExtent(args[1])
			checkErr(err)
			height, err = parseExtent(args[2])
			checkErr(err)
		}
		owner := mintOwner
		if owner == "" {
			owner = account
		}
		ids, err := newClient().Mint(context.Background(), args[0], width, height, owner)
		checkErr(err)
		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge ID WIDTH HEIGHT",
	Short: "Merge a rectangle of tiles into its anchor",
	Args:  cobra.ExactArgs(3),
	Run: func(_ *cobra.Command, args []string) {
		width, err := parseExtent(args[1])
		checkErr(err)
		height, err := parseExtent(args[2])
		checkErr(err)
		checkErr(newClient().Merge(context.Background(), args[0], width, height))
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer ID RECEIVER",
	Short: "Transfer a tile to another account",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		checkErr(newClient().Transfer(context.Background(), args[0], args[1]))
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token ID",
	Short: "Show a tile with its owner and extents",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		info, err := newClient().Token(context.Background(), args[0])
		checkErr(err)
		util.PrintTable(os.Stdout,
			[]string{"id", "owner", "x", "y", "width", "height", "covered by"},
			[][]string{{
				spiral.FormatID(info.ID),
				info.Owner,
				fmt.Sprintf("%d", info.Coord.X),
				fmt.Sprintf("%d", info.Coord.Y),
				fmt.Sprintf("%d", info.Width),
				fmt.Sprintf("%d", info.Height),
				info.CoveredBy,
			}},
		)
	},
}

var uncoveredCmd = &cobra.Command{
	Use:   "uncovered",
	Short: "List tiles not covered by another tile's merge",
	Run: func(*cobra.Command, []string) {
		tiles, err := newClient().Uncovered(context.Background())
		checkErr(err)
		printTiles(os.Stdout, tiles)
	},
}

func init() {
	rootCmd.AddCommand(mintCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(uncoveredCmd)

	mintCmd.Flags().StringVarP(&mintOwner, "owner", "", "", "receiving account (defaults to --account)")
}
