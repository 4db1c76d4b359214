package production

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

// GenerateReportText renders the WhatsApp-ready report of a day.
//
// Items are grouped by category name. Groups keep the order in which each
// category first appears in items; items keep their order inside a group.
// The output is a pure function of its arguments.
func GenerateReportText(date domain.Date, items []domain.LineItem, categories []domain.Category) string {
	var order []string
	groups := make(map[string][]domain.LineItem)

	for _, it := range items {
		name := categoryName(it.Category, categories)
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], it)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Produção do dia %s\n\n", date.FormatBR())

	for _, name := range order {
		fmt.Fprintf(&b, "%s:\n", name)
		for _, it := range groups[name] {
			b.WriteString(reportLine(it))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), " \t\r\n")
}

func reportLine(it domain.LineItem) string {
	line := fmt.Sprintf("* %s: %d %s", it.Product, it.Quantity, it.MeasurementType.Plural())
	if !it.MeasurementType.NeedsFactor() {
		return line
	}
	if total, ok := it.TotalUnits.Get(); ok {
		line += fmt.Sprintf(" = %d unidades", total)
	}
	return line
}

// categoryName resolves a stored category reference to its display name.
// References missing from categories render as stored.
func categoryName(ref string, categories []domain.Category) string {
	if c, ok := domain.FindCategory(categories, ref); ok {
		return c.Name
	}
	return ref
}

// DisplayQuantity formats an item's quantity for listings, e.g.
// "3 tábuas (36 unidades)" or "5 unidades".
func DisplayQuantity(it domain.LineItem) string {
	s := fmt.Sprintf("%d %s", it.Quantity, it.MeasurementType.Plural())
	if !it.MeasurementType.NeedsFactor() {
		return s
	}
	if total, ok := it.TotalUnits.Get(); ok {
		s += fmt.Sprintf(" (%d unidades)", total)
	}
	return s
}
