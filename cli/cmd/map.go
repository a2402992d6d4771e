package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/wkalt/tileland/cli/util"
)

var mapRadius int32

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Draw the uncovered tiles around the origin",
	Run: func(*cobra.Command, []string) {
		tiles, err := newClient().Uncovered(context.Background())
		checkErr(err)
		checkErr(util.RenderMap(os.Stdout, tiles, mapRadius))
	},
}

func init() {
	rootCmd.AddCommand(mapCmd)
	mapCmd.Flags().Int32VarP(&mapRadius, "radius", "r", 8, "half the width of the drawn square")
}
