package main

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// printTable writes two aligned columns. Widths are display widths, so wide runes
// in keys do not break the alignment.
func printTable(w io.Writer, rows [][2]string) error {
	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r[0]))
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(r[0], width), r[1]); err != nil {
			return err
		}
	}
	return nil
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
