package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

const officeDocumentEntry = "word/document.xml"

// extractOfficeText concatenates paragraph text from a docx container in
// document order, one paragraph per line.
func extractOfficeText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", eris.Wrap(err, "office: open container")
	}

	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == officeDocumentEntry {
			entry = f
			break
		}
	}
	if entry == nil {
		return "", eris.Errorf("office: container has no %s entry", officeDocumentEntry)
	}

	rc, err := entry.Open()
	if err != nil {
		return "", eris.Wrap(err, "office: open document entry")
	}
	defer rc.Close() //nolint:errcheck

	text, err := collectParagraphs(rc)
	if err != nil {
		return "", eris.Wrap(err, "office: parse document.xml")
	}

	return text, nil
}

// collectParagraphs walks the document token stream, gathering character
// data inside w:t runs and ending a line at each closing w:p.
func collectParagraphs(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		sb     strings.Builder
		inText bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(el)
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}
