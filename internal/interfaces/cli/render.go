package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	checklistapp "github.com/tablegrowth/backend/internal/application/checklist"
	"github.com/tablegrowth/backend/internal/domain/checklist"
)

var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	styleRed    = lipgloss.NewStyle().Foreground(colorRed)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleBold   = lipgloss.NewStyle().Bold(true)
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
	barWidth    = 20
)

// percentStyle colors a 0-100 value: red below 33, yellow below 66, green otherwise
func percentStyle(pct int) lipgloss.Style {
	switch {
	case pct < 33:
		return styleRed
	case pct < 66:
		return styleYellow
	default:
		return styleGreen
	}
}

// renderBar renders a bar like [█████░░░░░]  50%
func renderBar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3d%%", percentStyle(pct).Render(bar), pct)
}

func statusStyle(status string) lipgloss.Style {
	switch checklist.ItemStatus(status) {
	case checklist.StatusCompleted:
		return styleGreen
	case checklist.StatusInProgress:
		return styleYellow
	default:
		return styleDim
	}
}

// renderTable aligns columns by visible width so styled cells line up
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	const colGap = 2
	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style(cell))
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return styleHeader.Render(s) })
	for i, w := range widths {
		b.WriteString(styleDim.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}

func typeLine(label string, p checklist.TypeProgressResult) string {
	return fmt.Sprintf("%-14s %s  %d/%d items, %d/%d critical\n",
		label, renderBar(p.CompletionPercentage, barWidth),
		p.CompletedItems, p.TotalItems, p.CompletedCriticalItems, p.CriticalItems)
}

// RenderScore renders the health score with its breakdown
func RenderScore(score *checklistapp.ScoreResponse) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Marketing readiness"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%-14s %s\n\n", "Overall", percentStyle(score.OverallScore).Bold(true).Render(fmt.Sprintf("%d / 100", score.OverallScore)))
	b.WriteString(typeLine("Foundational", score.Foundational))
	b.WriteString(typeLine("Ongoing", score.Ongoing))
	b.WriteString("\n")
	b.WriteString(styleDim.Render(fmt.Sprintf(
		"base %.1f  critical %.1f  foundational %.1f  ongoing %.1f  total %.2f",
		score.Breakdown.FoundationalBase, score.Breakdown.CriticalScore,
		score.Breakdown.FoundationalScore, score.Breakdown.OngoingScore, score.Breakdown.Total)))
	b.WriteString("\n")
	return b.String()
}

// RenderDashboard renders score, revenue impact and recommended next steps
func RenderDashboard(d *checklistapp.DashboardResponse) string {
	var b strings.Builder
	b.WriteString(RenderScore(&d.Score))
	b.WriteString("\n")

	b.WriteString(styleHeader.Render("Weekly revenue potential"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%-14s %s of %s  %s\n\n", "Captured",
		styleBold.Render("$"+d.Revenue.CompletedValue.StringFixed(0)),
		"$"+d.Revenue.TotalPotential.StringFixed(0),
		renderBar(d.Revenue.CompletionPercentage, barWidth))

	if len(d.Revenue.Buckets) > 0 {
		rows := make([][]string, 0, len(d.Revenue.Buckets))
		for _, bucket := range d.Revenue.Buckets {
			rows = append(rows, []string{
				string(bucket.Bucket),
				fmt.Sprintf("%d/%d", bucket.CompletedCount, bucket.ItemCount),
				"$" + bucket.CompletedValue.StringFixed(0),
				"$" + bucket.TotalPotential.StringFixed(0),
			})
		}
		b.WriteString(renderTable([]string{"BUCKET", "DONE", "CAPTURED", "POTENTIAL"}, rows))
		b.WriteString("\n")
	}

	b.WriteString(styleHeader.Render("Next steps"))
	b.WriteString("\n\n")
	if len(d.NextItems) == 0 {
		b.WriteString(styleGreen.Render("Nothing left to do."))
		b.WriteString("\n")
		return b.String()
	}
	for i, item := range d.NextItems {
		marker := " "
		if item.IsCritical {
			marker = styleRed.Render("!")
		}
		fmt.Fprintf(&b, "%d. %s %s %s\n", i+1, marker, item.Title,
			styleDim.Render(fmt.Sprintf("(%s, %s, $%s/wk)", item.CategoryName, item.Status, item.WeeklyValue.StringFixed(0))))
	}
	return b.String()
}

// RenderStatuses renders the persisted statuses of a tenant
func RenderStatuses(entries []checklistapp.StatusListEntry) string {
	if len(entries) == 0 {
		return styleDim.Render("No statuses recorded.") + "\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		updated := ""
		if e.UpdatedAt != nil {
			updated = e.UpdatedAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			e.ItemID,
			e.CategoryName,
			statusStyle(e.Status).Render(e.Status),
			updated,
		})
	}
	return renderTable([]string{"ITEM", "CATEGORY", "STATUS", "UPDATED"}, rows)
}

// RenderStatus renders a single item status
func RenderStatus(s *checklistapp.StatusResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", styleBold.Render(s.ItemID), statusStyle(s.Status).Render(s.Status))
	if s.Notes != nil && *s.Notes != "" {
		fmt.Fprintf(&b, "  %s\n", *s.Notes)
	}
	if s.UpdatedAt != nil {
		fmt.Fprintf(&b, "  %s\n", styleDim.Render("updated "+s.UpdatedAt.Format("2006-01-02 15:04 MST")))
	}
	return b.String()
}

// RenderCatalog renders categories with their items
func RenderCatalog(categories []checklistapp.CategoryResponse) string {
	var b strings.Builder
	for i, cat := range categories {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", styleHeader.Render(cat.Name), styleDim.Render("("+cat.ID+", "+cat.Type+")"))
		for _, item := range cat.Items {
			marker := " "
			if item.IsCritical {
				marker = styleRed.Render("!")
			}
			fmt.Fprintf(&b, "  %s %-28s %s\n", marker, item.ID, item.Title)
		}
	}
	return b.String()
}
