package util

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

/*
PrintTable writes rows under a header line, padding each column to its widest
cell. Tables wider than the terminal are written one record at a time instead:

	-[ RECORD 1 ]-----
	id     | 7
	width  | 2
*/

////////////////////////////////////////////////////////////////////////////////

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}
	return widths
}

func tableWidth(widths []int) int {
	total := 1
	for _, width := range widths {
		total += width + 3
	}
	return total
}

func printGrid(w io.Writer, headers []string, rows [][]string, widths []int) {
	line := func(cells []string) {
		fmt.Fprint(w, "|")
		for i, cell := range cells {
			fmt.Fprintf(w, " %-*s |", widths[i], cell)
		}
		fmt.Fprintln(w)
	}
	line(headers)
	fmt.Fprint(w, "|")
	for _, width := range widths {
		fmt.Fprintf(w, "%s|", strings.Repeat("-", width+2))
	}
	fmt.Fprintln(w)
	for _, row := range rows {
		line(row)
	}
}

func printRecords(w io.Writer, headers []string, rows [][]string) {
	keyWidth := 0
	for _, header := range headers {
		keyWidth = max(keyWidth, len(header))
	}
	for i, row := range rows {
		label := fmt.Sprintf("-[ RECORD %d ]", i+1)
		fmt.Fprintf(w, "%s%s\n", label, strings.Repeat("-", max(0, keyWidth+8-len(label))))
		for j, cell := range row {
			fmt.Fprintf(w, "%-*s | %s\n", keyWidth, headers[j], cell)
		}
	}
}

func termWidth() int {
	cmd := exec.Command("stty", "size")
	cmd.Stdin = os.Stdin
	out, err := cmd.Output()
	if err != nil {
		return 80
	}
	var rows, cols int
	if _, err := fmt.Sscanf(string(out), "%d %d", &rows, &cols); err != nil {
		return 80
	}
	return cols
}

// PrintTable writes rows as a table sized to the terminal.
func PrintTable(w io.Writer, headers []string, rows [][]string) {
	writeTable(w, termWidth(), headers, rows)
}

func writeTable(w io.Writer, limit int, headers []string, rows [][]string) {
	widths := columnWidths(headers, rows)
	if tableWidth(widths) > limit {
		printRecords(w, headers, rows)
		return
	}
	printGrid(w, headers, rows, widths)
}
