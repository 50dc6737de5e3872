package sniff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_ByExtension(t *testing.T) {
	tests := []struct {
		name string
		want SourceKind
	}{
		{"karar.udf", StructuredArchive},
		{"dilekce.PDF", PDF},
		{"taslak.docx", OfficeDocument},
		{"notlar.txt", PlainText},
		{"hesap.xlsx", Spreadsheet},
		{"delil.TIFF", Image},
		{"durusma.mp3", Audio},
		{"kesif.mp4", Video},
		{"takvim.ics", CalendarFeed},
		{"bilinmeyen.xyz", Unknown},
		{"uzantisiz", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name, nil))
		})
	}
}

func TestClassify_ByHeader(t *testing.T) {
	assert.Equal(t, StructuredArchive, Classify("evrak.bin", []byte("PK\x03\x04rest")))
	assert.Equal(t, PDF, Classify("evrak", []byte("%PDF-1.7\n")))
	assert.Equal(t, Unknown, Classify("evrak", []byte("garbage")))
	assert.Equal(t, Unknown, Classify("evrak", nil))
}

func TestClassify_ExtensionBeatsHeader(t *testing.T) {
	// A .udf is itself a zip container; the extension decides first.
	assert.Equal(t, StructuredArchive, Classify("karar.udf", []byte("PK\x03\x04")))
	// An explicit .txt stays plain text even with a PDF-looking header.
	assert.Equal(t, PlainText, Classify("dump.txt", []byte("%PDF")))
}

func TestMIME(t *testing.T) {
	assert.Equal(t, "image/tiff", MIME("tapu.tif"))
	assert.Equal(t, "application/pdf", MIME("karar.pdf"))
	assert.Equal(t, "audio/mpeg", MIME("ifade.MP3"))
	assert.Equal(t, "application/octet-stream", MIME("blob.xyz"))
}
