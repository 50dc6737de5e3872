// Package extract turns case artifacts into plain text, one strategy per
// source kind. Extraction failures are values, never panics: a Result with
// OK=false carries a reason, so one unreadable file in a batch is reported
// alongside its siblings instead of aborting the operation.
package extract

import "github.com/lexkit/case-cli/internal/sniff"

// Result is the outcome of extracting a single artifact.
// Invariant: OK == false implies Text == "" and FailureReason != "".
type Result struct {
	SourceName    string
	Kind          sniff.SourceKind
	Text          string
	Meta          CaseMetadata
	OK            bool
	FailureReason string
}

func success(name string, kind sniff.SourceKind, text string) Result {
	return Result{
		SourceName: name,
		Kind:       kind,
		Text:       text,
		Meta:       Metadata(text),
		OK:         true,
	}
}

func failure(name string, kind sniff.SourceKind, reason string) Result {
	return Result{
		SourceName:    name,
		Kind:          kind,
		Meta:          Metadata(""),
		FailureReason: reason,
	}
}
