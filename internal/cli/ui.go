package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pyprac/profilesvg/pkg/errors"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for names and ids inside a message.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleRowNumber   = lipgloss.NewStyle().Foreground(colorGray).Width(4).Align(lipgloss.Right)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Status lines
// =============================================================================

// status is an icon and the style it is drawn in.
type status struct {
	icon  string
	style lipgloss.Style
	tint  bool // also colour the message
}

var (
	statusSuccess = status{icon: "✓", style: lipgloss.NewStyle().Foreground(colorGreen)}
	statusError   = status{icon: "✗", style: lipgloss.NewStyle().Foreground(colorRed)}
	statusWarning = status{icon: "!", style: lipgloss.NewStyle().Foreground(colorYellow), tint: true}
	statusInfo    = status{icon: "›", style: lipgloss.NewStyle().Foreground(colorGray)}
)

func (s status) print(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.tint {
		msg = s.style.Render(msg)
	}
	fmt.Fprintln(w, s.style.Render(s.icon)+" "+msg)
}

func printSuccess(w io.Writer, format string, args ...any) { statusSuccess.print(w, format, args...) }
func printError(w io.Writer, format string, args ...any) { statusError.print(w, format, args...) }
func printWarning(w io.Writer, format string, args ...any) { statusWarning.print(w, format, args...) }
func printInfo(w io.Writer, format string, args ...any) { statusInfo.print(w, format, args...) }

// printDetail prints an indented secondary line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written file.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

// printKeyValue prints a labelled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleLabel.Render(key)+" "+styleValue.Render(value))
}

// printLines prints wrapped rows, numbered from 1.
func printLines(w io.Writer, lines []string) {
	for i, line := range lines {
		fmt.Fprintln(w, styleRowNumber.Render(fmt.Sprint(i+1))+"  "+styleValue.Render(line))
	}
}

// printNextStep suggests a command to run.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// PrintErr reports a command failure: the message without code prefixes,
// then the code when there is one.
func PrintErr(w io.Writer, err error) {
	printError(w, "%s", errors.UserMessage(err))
	if code := errors.GetCode(err); code != "" {
		printDetail(w, "code: %s", code)
	}
}

// =============================================================================
// Tables
// =============================================================================

// headerRow is the row index lipgloss passes to style functions for headers.
const headerRow = -1

// newTable builds a rounded table with dim borders and bold grey headers.
// cell styles body cells; row is the index into rows.
func newTable(headers []string, rows [][]string, cell func(row, col int) lipgloss.Style) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			return cell(row, col)
		})
}
