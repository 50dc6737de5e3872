package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexkit/case-cli/internal/extract"
	"github.com/lexkit/case-cli/internal/sniff"
)

func okDoc(name, text string) extract.Result {
	return extract.Result{SourceName: name, Kind: sniff.PlainText, Text: text, OK: true}
}

func TestAssemble_FullConcatenationUnderBudget(t *testing.T) {
	docs := []extract.Result{
		okDoc("dilekce.txt", "birinci belge"),
		okDoc("karar.txt", "ikinci belge"),
	}

	out := Assemble(docs, 10_000)
	assert.Equal(t, "--- dilekce.txt ---\nbirinci belge\n\n--- karar.txt ---\nikinci belge", out)
}

func TestAssemble_NeverExceedsBudget(t *testing.T) {
	docs := []extract.Result{
		okDoc("a.txt", "uzun bir metin parçası"),
		okDoc("b.txt", "daha da uzun bir başka metin parçası"),
	}

	for _, budget := range []int{1, 10, 37, 60, 100} {
		out := Assemble(docs, budget)
		assert.LessOrEqual(t, len([]rune(out)), budget, "budget %d", budget)
	}
}

func TestAssemble_TruncatesTotalNotPerDocument(t *testing.T) {
	docs := []extract.Result{
		okDoc("first.txt", "AAAA"),
		okDoc("second.txt", "BBBB"),
	}

	// Budget cuts inside the second document; the first survives intact.
	out := Assemble(docs, 30)
	assert.Contains(t, out, "--- first.txt ---\nAAAA")
	assert.NotContains(t, out, "BBBB")
}

func TestAssemble_FailedDocAnnotated(t *testing.T) {
	docs := []extract.Result{
		okDoc("ok.txt", "metin"),
		{SourceName: "bozuk.udf", Kind: sniff.StructuredArchive, FailureReason: "udf: open container: not a zip"},
	}

	out := Assemble(docs, 0)
	assert.Contains(t, out, "--- bozuk.udf ---")
	assert.Contains(t, out, "[extraction failed: udf: open container: not a zip]")
}

func TestAssemble_Empty(t *testing.T) {
	assert.Equal(t, "", Assemble(nil, 100))
}
