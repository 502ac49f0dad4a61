package report

import (
	"fmt"
	"strings"
)

// Percent formats a 0..1 ratio as a percentage with one decimal place,
// trimming a trailing ".0" so whole percentages read cleanly.
func Percent(ratio float64) string {
	text := fmt.Sprintf("%.1f", ratio*100)
	text = strings.TrimSuffix(text, ".0")
	return text + "%"
}
