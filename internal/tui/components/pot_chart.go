package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/rgehrsitz/pensionproj/internal/tui/tuistyles"
)

// PotChart draws the end-of-year pot as a column chart, one column per year.
// Depleted years are drawn in the danger colour.
type PotChart struct {
	Title  string
	Years  []domain.ProjectionYear
	Height int
}

// NewPotChart creates a chart over the given projection years.
func NewPotChart(title string, years []domain.ProjectionYear) *PotChart {
	return &PotChart{Title: title, Years: years, Height: 8}
}

// WithHeight sets the number of rows used for the columns.
func (c *PotChart) WithHeight(height int) *PotChart {
	c.Height = height
	return c
}

// Render returns the styled chart.
func (c *PotChart) Render() string {
	if len(c.Years) == 0 || c.Height <= 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	peak := 0.0
	values := make([]float64, len(c.Years))
	for i, y := range c.Years {
		values[i] = y.PotEnd.InexactFloat64()
		peak = math.Max(peak, values[i])
	}

	heights := make([]int, len(values))
	for i, v := range values {
		if peak > 0 && v > 0 {
			heights[i] = int(math.Ceil(v / peak * float64(c.Height)))
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSecondary)
	depletedStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		b.WriteString("\n")
	}

	const axisWidth = 10
	for row := c.Height; row >= 1; row-- {
		label := ""
		if row == c.Height {
			label = formatChartValue(peak)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s │", axisWidth, label)))
		for i, h := range heights {
			switch {
			case h >= row:
				b.WriteString(barStyle.Render("█"))
			case row == 1 && c.Years[i].FundsDepleted:
				b.WriteString(depletedStyle.Render("▁"))
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s └%s", axisWidth, "£0", strings.Repeat("─", len(heights)))))
	b.WriteString("\n")
	first, last := c.Years[0].Year, c.Years[len(c.Years)-1].Year
	span := fmt.Sprintf("%d", first)
	if pad := len(heights) - len(span) - 4; pad > 0 {
		span += strings.Repeat(" ", pad) + fmt.Sprintf("%d", last)
	}
	b.WriteString(axisStyle.Render(strings.Repeat(" ", axisWidth+2) + span))

	return b.String()
}

func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1_000_000:
		return fmt.Sprintf("£%.1fM", value/1_000_000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("£%.0fK", value/1000)
	}
	return fmt.Sprintf("£%.0f", value)
}
