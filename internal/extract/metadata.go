package extract

import (
	"regexp"
	"strings"
)

// NotFound is the sentinel for metadata fields that could not be matched.
// Callers must not assume any field is populated; this enrichment is
// best-effort by design.
const NotFound = "not found"

// CaseMetadata is light structural metadata sniffed from a document's
// opening lines. Immutable after creation.
type CaseMetadata struct {
	CourtName      string
	CaseNumber     string
	DecisionNumber string
	Date           string
}

// metadataScanLines bounds the court-name scan to the document header.
const metadataScanLines = 40

var (
	caseNumberRe     = regexp.MustCompile(`(?i)Esas\s*No\s*[:\-]?\s*(\d{4}/\d+)`)
	decisionNumberRe = regexp.MustCompile(`(?i)Karar\s*No\s*[:\-]?\s*(\d{4}/\d+)`)
	dateRe           = regexp.MustCompile(`(\d{1,2}[./]\d{1,2}[./]\d{4})`)
)

// Metadata derives CaseMetadata from extracted text. Every field is either
// a matched value or NotFound; the function never fails.
func Metadata(text string) CaseMetadata {
	meta := CaseMetadata{
		CourtName:      NotFound,
		CaseNumber:     NotFound,
		DecisionNumber: NotFound,
		Date:           NotFound,
	}
	if text == "" {
		return meta
	}

	if m := caseNumberRe.FindStringSubmatch(text); m != nil {
		meta.CaseNumber = m[1]
	}
	if m := decisionNumberRe.FindStringSubmatch(text); m != nil {
		meta.DecisionNumber = m[1]
	}
	if m := dateRe.FindStringSubmatch(text); m != nil {
		meta.Date = m[1]
	}

	for i, line := range strings.Split(text, "\n") {
		if i >= metadataScanLines {
			break
		}
		clean := strings.TrimSpace(line)
		if len(clean) <= 5 {
			continue
		}
		upper := strings.ToUpper(clean)
		if strings.Contains(upper, "MAHKEME") || strings.Contains(upper, "DAİRE") || strings.Contains(upper, "DAIRE") {
			meta.CourtName = clean
			break
		}
	}

	return meta
}
