// Package assemble builds the single bounded prompt context from a set of
// extracted documents.
package assemble

import (
	"fmt"
	"strings"

	"github.com/lexkit/case-cli/internal/extract"
)

// Assemble concatenates each document under a delimited header carrying its
// source name, in input order, and truncates the total assembled string at
// budgetChars. Truncation is applied to the whole, never per document, so
// callers can locate the cut against the headers. Failed extractions are
// annotated inline rather than dropped, keeping the context attributable.
func Assemble(docs []extract.Result, budgetChars int) string {
	var sb strings.Builder
	for i, doc := range docs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "--- %s ---\n", doc.SourceName)
		if doc.OK {
			sb.WriteString(doc.Text)
		} else {
			fmt.Fprintf(&sb, "[extraction failed: %s]", doc.FailureReason)
		}
	}

	assembled := sb.String()
	if budgetChars <= 0 {
		return assembled
	}

	runes := []rune(assembled)
	if len(runes) <= budgetChars {
		return assembled
	}
	return string(runes[:budgetChars])
}
