package output

import (
	"fmt"

	"github.com/temirov/concat/internal/types"
)

const (
	summaryLineFormat   = "Summary: %d %s, %s%s%s%s"
	singularFileLabel   = "file"
	pluralFileLabel     = "files"
	skippedSuffixFormat = ", %d skipped"
	tokensSuffixFormat  = ", %d tokens"
	modelSuffixFormat   = " (model: %s)"
)

// FormatSummaryLine renders a one-line description of a run.
func FormatSummaryLine(summary types.OutputSummary) string {
	label := pluralFileLabel
	if summary.TotalFiles == 1 {
		label = singularFileLabel
	}
	skipped := ""
	if summary.SkippedFiles > 0 {
		skipped = fmt.Sprintf(skippedSuffixFormat, summary.SkippedFiles)
	}
	tokens := ""
	if summary.TotalTokens > 0 {
		tokens = fmt.Sprintf(tokensSuffixFormat, summary.TotalTokens)
	}
	model := ""
	if summary.Model != "" {
		model = fmt.Sprintf(modelSuffixFormat, summary.Model)
	}
	return fmt.Sprintf(summaryLineFormat, summary.TotalFiles, label, summary.TotalSize, skipped, tokens, model)
}
