package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/justyntemme/dfxparam/pkg/framework/param"
	"github.com/justyntemme/dfxparam/pkg/framework/plugin"
)

const defaultWidth = 80

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	changedStyle = cellStyle.
			Foreground(lipgloss.Color("#98FB98"))

	hiddenStyle = cellStyle.
			Foreground(lipgloss.Color("#666666"))

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))
)

// terminalWidth returns the width of stdout, or defaultWidth when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// nameWidth is the name column budget for a terminal width.
func nameWidth(width int) int {
	return min(max(width/4, 4), param.MaxNameLength)
}

// renderParameters draws one row per parameter. Names are fitted to the column,
// and rows whose changed flag is set are highlighted.
func renderParameters(b *plugin.Base, width int) string {
	names := nameWidth(width)

	rows := make([][]string, 0, b.NumParameters())
	changed := make([]bool, 0, b.NumParameters())
	hidden := make([]bool, 0, b.NumParameters())
	for i := 0; i < b.NumParameters(); i++ {
		p := b.Parameter(i)
		rows = append(rows, []string{
			strconv.Itoa(i),
			p.NameFitting(names),
			p.DisplayString(),
			rangeString(p),
			p.Curve().String(),
			attributeString(p),
		})
		changed = append(changed, p.Changed())
		hidden = append(hidden, p.IsHidden())
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("#", "Name", "Value", "Range", "Curve", "Flags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row < 0 || row >= len(rows):
				return cellStyle
			case hidden[row]:
				return hiddenStyle
			case changed[row]:
				return changedStyle
			default:
				return cellStyle
			}
		})

	title := titleStyle.Render(fmt.Sprintf("%s (%s)", b.Info.Name, b.Info.ID))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}

// renderPresets lists every preset, marking the current one.
func renderPresets(b *plugin.Base) string {
	rows := make([][]string, 0, b.NumPresets())
	for i := 0; i < b.NumPresets(); i++ {
		mark := ""
		if i == b.CurrentPreset() {
			mark = "*"
		}
		name := b.PresetName(i)
		if name == "" {
			name = "(empty)"
		}
		rows = append(rows, []string{mark, strconv.Itoa(i), name})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("", "#", "Preset").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

func rangeString(p *param.Parameter) string {
	if p.UseValueStrings() {
		return strings.Join(p.ValueStrings(), " | ")
	}
	return p.FormatValue(p.Min()) + " .. " + p.FormatValue(p.Max())
}

func attributeString(p *param.Parameter) string {
	var flags []string
	if p.HasAttributes(param.AttributeHidden) {
		flags = append(flags, "hidden")
	}
	if p.HasAttributes(param.AttributeUnused) {
		flags = append(flags, "unused")
	}
	if p.HasAttributes(param.AttributeOmitFromRandomizeAll) {
		flags = append(flags, "fixed")
	}
	if p.EnforceValueLimits() {
		flags = append(flags, "limited")
	}
	return strings.Join(flags, ",")
}
