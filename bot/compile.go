package bot

import (
	"fmt"
	"strings"

	"github.com/mm-relief/lostfound-bot/schema"
)

const notProvided = "Not provided"

// CompileDetails renders the guided-path answers into one formatted details
// block, in the fixed field order of the report type. Missing or skipped
// fields render as an explicit placeholder so the block's shape is stable
// for human readers. The function is pure; it runs once, right before
// urgency selection.
func CompileDetails(t schema.ReportType, answers []string) string {
	fields := flowFor(t).fields()

	var b strings.Builder
	for i, f := range fields {
		value := notProvided
		if i < len(answers) && strings.TrimSpace(answers[i]) != "" {
			value = strings.TrimSpace(answers[i])
		}
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, f.label, value)
	}
	return strings.TrimRight(b.String(), "\n")
}
