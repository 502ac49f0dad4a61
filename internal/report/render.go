// Package report renders a run summary as styled terminal text. The styles
// degrade to plain text automatically when the destination is not a
// terminal, so the same renderer serves both interactive use and logs.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"waver/internal/runner"
	"waver/internal/stability"
	"waver/internal/variant"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleSection = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleGood    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleBad     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Render produces the human-readable run report. Breakdown lines sort by
// key so repeated runs diff cleanly.
func Render(results runner.Results) string {
	var builder strings.Builder
	summary := results.Summary

	builder.WriteString(styleTitle.Render("Run "+results.RunID) + "\n")
	builder.WriteString(styleLabel.Render("started") + " " + results.StartedAt.Format("2006-01-02 15:04:05 MST"))
	builder.WriteString("  " + styleLabel.Render("duration") + " " + results.FinishedAt.Sub(results.StartedAt).String() + "\n\n")

	builder.WriteString(styleSection.Render("Accuracy (baseline)") + "\n")
	builder.WriteString(accuracyLine("overall", summary.Total, summary.Correct, summary.Accuracy))
	for _, model := range sortedKeys(summary.ByModel) {
		tally := summary.ByModel[model]
		builder.WriteString(accuracyLine(model, tally.Total, tally.Correct, tally.Accuracy))
	}
	for _, arm := range sortedArms(summary.ByArm) {
		tally := summary.ByArm[arm]
		builder.WriteString(accuracyLine("arm "+string(arm), tally.Total, tally.Correct, tally.Accuracy))
	}

	builder.WriteString("\n" + styleSection.Render("Stability") + "\n")
	builder.WriteString(flipLine("overall", summary.Stability.Comparisons, summary.Stability.Flips, summary.Stability.FlipRate))
	for _, variantType := range sortedVariantTypes(summary.Stability.ByVariantType) {
		tally := summary.Stability.ByVariantType[variantType]
		builder.WriteString(flipLine(string(variantType), tally.Comparisons, tally.Flips, tally.FlipRate))
	}
	for _, model := range sortedKeys(summary.Stability.ByModel) {
		tally := summary.Stability.ByModel[model]
		builder.WriteString(flipLine(model, tally.Comparisons, tally.Flips, tally.FlipRate))
	}

	failureRate := summary.Stability.BaselineParseFailureRate
	failureText := fmt.Sprintf("  %-24s %s\n", "baseline parse failures", Percent(failureRate))
	if failureRate > 0 {
		failureText = styleBad.Render(strings.TrimRight(failureText, "\n")) + "\n"
	}
	builder.WriteString(failureText)

	return builder.String()
}

// accuracyLine formats one accuracy breakdown row.
func accuracyLine(label string, total, correct int, accuracy float64) string {
	value := fmt.Sprintf("%s (%d/%d)", Percent(accuracy), correct, total)
	return fmt.Sprintf("  %-24s %s\n", label, styleGood.Render(value))
}

// flipLine formats one flip-rate breakdown row. Any flips at all color the
// row as a problem, which is the whole point of the run.
func flipLine(label string, comparisons, flips int, rate float64) string {
	value := fmt.Sprintf("%s (%d/%d)", Percent(rate), flips, comparisons)
	if flips > 0 {
		value = styleBad.Render(value)
	} else {
		value = styleGood.Render(value)
	}
	return fmt.Sprintf("  %-24s %s\n", label, value)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedArms(m map[stability.Arm]stability.Accuracy) []stability.Arm {
	arms := make([]stability.Arm, 0, len(m))
	for arm := range m {
		arms = append(arms, arm)
	}
	sort.Slice(arms, func(i, j int) bool { return arms[i] < arms[j] })
	return arms
}

func sortedVariantTypes(m map[variant.Type]stability.FlipRate) []variant.Type {
	types := make([]variant.Type, 0, len(m))
	for variantType := range m {
		types = append(types, variantType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
