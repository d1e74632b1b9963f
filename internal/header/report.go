package header

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vcfheader/internal/model"
)

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	reportIDStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	reportDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// GenerateReport renders a merged run as text. verbose adds descriptions
// and the file each definition was first read from.
func GenerateReport(res Result, verbose bool) string {
	var sb strings.Builder

	sb.WriteString(reportTitleStyle.Render("VCF Header Fields"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Files: %d\n", len(res.Files)))
	if verbose {
		for _, f := range res.Files {
			sb.WriteString(reportDimStyle.Render("  " + f))
			sb.WriteString("\n")
		}
	}

	if res.Fields.Len() == 0 {
		sb.WriteString("\nNo INFO or FORMAT declarations found.\n")
		return sb.String()
	}

	for _, kind := range model.Kinds {
		ids := res.Fields.IDs(kind)
		sb.WriteString("\n")
		sb.WriteString(reportTitleStyle.Render(fmt.Sprintf("%s (%d)", kind, len(ids))))
		sb.WriteString("\n")

		width := 0
		for _, id := range ids {
			width = max(width, len(id))
		}
		for _, id := range ids {
			def := res.Fields.Fields(kind)[id]
			sb.WriteString(fmt.Sprintf("  %s %s  Number=%-3s Type=%s\n",
				model.NumberIcon(def.Number),
				reportIDStyle.Render(fmt.Sprintf("%-*s", width, id)),
				def.Number, def.Type))
			if verbose {
				sb.WriteString(fmt.Sprintf("      %s\n", def.Description))
				if def.Source != "" {
					sb.WriteString(reportDimStyle.Render(fmt.Sprintf("      from %s:%d", def.Source, def.Line)))
					sb.WriteString("\n")
				}
			}
		}
	}

	return sb.String()
}
