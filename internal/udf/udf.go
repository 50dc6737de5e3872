// Package udf reads and writes the UDF structured-archive format: a ZIP
// container whose canonical text lives in an inner content.xml document.
package udf

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// ContentEntry is the well-known name of the inner XML document.
const ContentEntry = "content.xml"

// ExtractText opens data as a ZIP container and concatenates the text
// content of every XML element inside content.xml, in document order,
// joined by single spaces.
func ExtractText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", eris.Wrap(err, "udf: open container")
	}

	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == ContentEntry {
			entry = f
			break
		}
	}
	if entry == nil {
		return "", eris.Errorf("udf: container has no %s entry", ContentEntry)
	}

	rc, err := entry.Open()
	if err != nil {
		return "", eris.Wrap(err, "udf: open content entry")
	}
	defer rc.Close() //nolint:errcheck

	text, err := collectElementText(rc)
	if err != nil {
		return "", eris.Wrap(err, "udf: parse content.xml")
	}

	return text, nil
}

func collectElementText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var parts []string
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		cd, ok := tok.(xml.CharData)
		if !ok {
			continue
		}
		if s := strings.TrimSpace(string(cd)); s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, " "), nil
}

type paragraph struct {
	Text string `xml:",chardata"`
}

type body struct {
	Paragraphs []paragraph `xml:"p"`
}

type content struct {
	XMLName xml.Name `xml:"content"`
	Body    body     `xml:"body"`
}

// Pack serializes plain-text lines as paragraph elements inside a new UDF
// container. The result round-trips readably through ExtractText, though
// not byte-identically with any original input container.
func Pack(w io.Writer, text string) error {
	doc := content{}
	for _, line := range strings.Split(text, "\n") {
		doc.Body.Paragraphs = append(doc.Body.Paragraphs, paragraph{Text: line})
	}

	xmlBytes, err := xml.Marshal(doc)
	if err != nil {
		return eris.Wrap(err, "udf: marshal content.xml")
	}

	zw := zip.NewWriter(w)
	fw, err := zw.Create(ContentEntry)
	if err != nil {
		return eris.Wrap(err, "udf: create content entry")
	}
	if _, err := fw.Write([]byte(xml.Header)); err != nil {
		return eris.Wrap(err, "udf: write xml header")
	}
	if _, err := fw.Write(xmlBytes); err != nil {
		return eris.Wrap(err, "udf: write content entry")
	}
	if err := zw.Close(); err != nil {
		return eris.Wrap(err, "udf: close container")
	}

	return nil
}
