package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vcfheader/internal/header"
	"vcfheader/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

func (m AppModel) View() string {
	if m.Loading {
		return fmt.Sprintf("\n  Reading VCF headers for %s... please wait.\n", m.Pattern)
	}
	if m.Err != nil {
		return renderError(m.Err)
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height

	// Subtracting 6 for horizontal margin (borders x2 + buffer)
	netWidth := width - 6
	if netWidth < 40 {
		netWidth = 40
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2

	// LEFT PANEL: field list
	var left strings.Builder
	title := fmt.Sprintf("Fields (%d files)", len(m.Result.Files))
	if m.KindFilter != "" {
		title = fmt.Sprintf("%s fields (%d files)", m.KindFilter, len(m.Result.Files))
	}
	left.WriteString(titleStyle.Render(title))
	left.WriteString("\n\n")

	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx, endIdx := window(m.SelectedIdx, len(m.FilteredIndices), visibleItems)

	if len(m.FilteredIndices) == 0 {
		left.WriteString(dimStyle.Render("  No declarations"))
		left.WriteString("\n")
	}
	for i := startIdx; i < endIdx; i++ {
		row := m.Rows[m.FilteredIndices[i]]
		line := fmt.Sprintf("%s %s %-4s %s", model.KindIcon(row.Kind), model.NumberIcon(row.Def.Number),
			row.Def.Number, row.Def.ID)
		line = lipgloss.NewStyle().MaxWidth(leftWidth - 2).Render(line)
		if i == m.SelectedIdx {
			left.WriteString(selectedStyle.Render(line))
		} else {
			left.WriteString(normalStyle.Render(line))
		}
		left.WriteString("\n")
	}

	// RIGHT PANEL: details
	var right strings.Builder
	right.WriteString(titleStyle.Render("Details"))
	right.WriteString("\n\n")
	if m.SelectedIdx < len(m.FilteredIndices) {
		row := m.Rows[m.FilteredIndices[m.SelectedIdx]]
		vp := m.DetailsViewport
		vp.Width = rightWidth - 2
		vp.Height = interiorHeight - 2
		vp.SetContent(renderDetails(row, rightWidth-4))
		right.WriteString(vp.View())
	}

	leftBox := panelStyle.Width(leftWidth).Height(interiorHeight).Render(left.String())
	rightBox := panelStyle.Width(rightWidth).Height(interiorHeight).Render(right.String())

	var footer string
	if m.InputMode {
		footer = "Search: " + m.InputBuffer.View()
	} else {
		footer = dimStyle.Render("↑/↓ move • / search • tab INFO/FORMAT • esc clear • q quit")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox) + "\n" + footer
}

func renderDetails(row Row, width int) string {
	var sb strings.Builder
	field := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(" ")
		sb.WriteString(value)
		sb.WriteString("\n")
	}
	field("Kind:", string(row.Kind))
	field("ID:", row.Def.ID)
	field("Number:", row.Def.Number.String())
	field("Type:", row.Def.Type.String())
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Width(max(width, 10)).Render(row.Def.Description))
	sb.WriteString("\n\n")
	if row.Def.Source != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("First declared in %s:%d", row.Def.Source, row.Def.Line)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderError(err error) string {
	var sb strings.Builder
	sb.WriteString("\n  ")
	sb.WriteString(adviceStyle.Render("Error: " + err.Error()))
	sb.WriteString("\n")

	var ie *header.IncompatibleHeaderError
	if errors.As(err, &ie) {
		sb.WriteString(fmt.Sprintf("\n  %s %s is declared as %s in %s\n", model.IconConflict, ie.ID, ie.First.Signature(), ie.First.Source))
		sb.WriteString(fmt.Sprintf("  %s %s is declared as %s in %s\n", model.IconConflict, ie.ID, ie.Second.Signature(), ie.Second.Source))
	}
	sb.WriteString(dimStyle.Render("\n  Press q to quit."))
	sb.WriteString("\n")
	return sb.String()
}

// window returns the [start, end) slice of n items to show so that selected
// stays near the middle of a panel holding visible rows.
func window(selected, n, visible int) (int, int) {
	if n <= visible {
		return 0, n
	}
	start := 0
	if selected >= visible/2 {
		start = selected - visible/2
	}
	if start+visible > n {
		start = n - visible
	}
	return start, start + visible
}
