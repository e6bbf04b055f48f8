package calculation

import (
	"strings"

	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/shopspring/decimal"
)

// sumLifeEvents totals the cost of every event firing at this age or year. Each event is
// counted once even when both of its triggers match.
func sumLifeEvents(events []domain.LifeEvent, age *int, year int) (decimal.Decimal, *string) {
	total := decimal.Zero
	var names []string
	for _, e := range events {
		if !e.TriggersAt(age, year) {
			continue
		}
		total = total.Add(e.Cost)
		if name := e.DisplayName(); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return total, nil
	}
	joined := strings.Join(names, ", ")
	return total, &joined
}
