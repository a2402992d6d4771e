package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/wkalt/tileland/area"
	"github.com/wkalt/tileland/spiral"
)

func parseExtent(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid extent %q: must be between 1 and 255", s)
	}
	return uint8(n), nil
}

func parseCoord(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q", s)
	}
	return int32(n), nil
}

func encode(x, y string) (string, error) {
	cx, err := parseCoord(x)
	if err != nil {
		return "", err
	}
	cy, err := parseCoord(y)
	if err != nil {
		return "", err
	}
	return spiral.EncodeString(spiral.Coord{X: cx, Y: cy}), nil
}

func enumerate(id, width, height string) ([]string, error) {
	anchor, err := spiral.ParseID(id)
	if err != nil {
		return nil, err
	}
	w, err := parseExtent(width)
	if err != nil {
		return nil, err
	}
	h, err := parseExtent(height)
	if err != nil {
		return nil, err
	}
	ids, err := area.Collect(anchor, w, h)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = spiral.FormatID(id)
	}
	return out, nil
}

var encodeCmd = &cobra.Command{
	Use:   "encode X Y",
	Short: "Print the identifier of the tile at (X, Y)",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		id, err := encode(args[0], args[1])
		checkErr(err)
		fmt.Println(id)
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode ID",
	Short: "Print the coordinate of a tile",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		c, err := spiral.DecodeString(args[0])
		checkErr(err)
		fmt.Println(c.X, c.Y)
	},
}

var areaCmd = &cobra.Command{
	Use:   "area ID WIDTH HEIGHT",
	Short: "Print the identifiers of a rectangle, columns first",
	Args:  cobra.ExactArgs(3),
	Run: func(_ *cobra.Command, args []string) {
		ids, err := enumerate(args[0], args[1], args[2])
		checkErr(err)
		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(areaCmd)
}
