package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/zephyrtronium/beval"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	textStyle   = cellStyle.Foreground(lipgloss.Color("170"))
)

// printTokens writes a table of tokens to w.
func printTokens(w io.Writer, toks []beval.Token, plain bool) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "KIND", "COL", "TEXT").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case plain:
				return cellStyle
			case row == table.HeaderRow:
				return headerStyle
			case col == 3:
				return textStyle
			default:
				return cellStyle
			}
		})
	for i, tok := range toks {
		t.Row(strconv.Itoa(i), tok.Kind.String(), strconv.Itoa(tok.Col), tok.Text)
	}
	fmt.Fprintln(w, t.Render())
}
