// Package sniff maps case artifacts to a closed set of source kinds.
package sniff

import (
	"bytes"
	"path/filepath"
	"strings"
)

// SourceKind identifies the extraction strategy for an artifact.
type SourceKind int

const (
	Unknown SourceKind = iota
	StructuredArchive
	PDF
	OfficeDocument
	PlainText
	Spreadsheet
	Image
	Audio
	Video
	CalendarFeed
)

// String returns the kind name for logging and failure reasons.
func (k SourceKind) String() string {
	switch k {
	case StructuredArchive:
		return "structured-archive"
	case PDF:
		return "pdf"
	case OfficeDocument:
		return "office-document"
	case PlainText:
		return "plain-text"
	case Spreadsheet:
		return "spreadsheet"
	case Image:
		return "image"
	case Audio:
		return "audio"
	case Video:
		return "video"
	case CalendarFeed:
		return "calendar-feed"
	default:
		return "unknown"
	}
}

var byExtension = map[string]SourceKind{
	".udf":  StructuredArchive,
	".pdf":  PDF,
	".doc":  OfficeDocument,
	".docx": OfficeDocument,
	".txt":  PlainText,
	".log":  PlainText,
	".md":   PlainText,
	".xls":  Spreadsheet,
	".xlsx": Spreadsheet,
	".png":  Image,
	".jpg":  Image,
	".jpeg": Image,
	".tif":  Image,
	".tiff": Image,
	".bmp":  Image,
	".gif":  Image,
	".mp3":  Audio,
	".wav":  Audio,
	".m4a":  Audio,
	".ogg":  Audio,
	".mp4":  Video,
	".mov":  Video,
	".avi":  Video,
	".mkv":  Video,
	".ics":  CalendarFeed,
}

var (
	zipMagic = []byte("PK\x03\x04")
	pdfMagic = []byte("%PDF")
)

// Classify determines the SourceKind of an artifact from its file name and,
// when the extension is missing or unrecognized, the leading bytes of its
// content. It never fails; unresolvable inputs map to Unknown, which
// downstream extractors treat as a guaranteed failure.
func Classify(name string, header []byte) SourceKind {
	ext := strings.ToLower(filepath.Ext(name))
	if kind, ok := byExtension[ext]; ok {
		return kind
	}

	switch {
	case bytes.HasPrefix(header, zipMagic):
		return StructuredArchive
	case bytes.HasPrefix(header, pdfMagic):
		return PDF
	}

	return Unknown
}

var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
}

// MIME returns the mime type to use for the remote vision/transcription
// service, or application/octet-stream if the extension is unrecognized.
func MIME(name string) string {
	if m, ok := mimeByExtension[strings.ToLower(filepath.Ext(name))]; ok {
		return m
	}
	return "application/octet-stream"
}
