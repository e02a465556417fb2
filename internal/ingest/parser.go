// Package ingest turns files and web pages into plain text for scoring.
package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedType is returned for file extensions with no parser
var ErrUnsupportedType = errors.New("unsupported file type")

// Document is extracted plain text with its origin
type Document struct {
	Title  string
	Source string // File path or final URL
	Text   string
}

// ParseFile reads a .txt, .md, .html, .pdf or .docx file and extracts its text
func ParseFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	text, htmlTitle, err := parseBytes(raw, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, err
	}
	if htmlTitle != "" {
		title = htmlTitle
	}

	return &Document{
		Title:  title,
		Source: path,
		Text:   normalizeWhitespace(text),
	}, nil
}

// parseBytes dispatches on a file extension; the title is only known for HTML
func parseBytes(raw []byte, ext string) (string, string, error) {
	switch ext {
	case ".txt", ".text", ".md", ".markdown", "":
		return string(raw), "", nil
	case ".html", ".htm", ".xhtml":
		page, err := VisibleText(bytes.NewReader(raw))
		if err != nil {
			return "", "", err
		}
		return page.Text, page.Title, nil
	case ".docx":
		text, err := parseDOCX(raw)
		return text, "", err
	case ".pdf":
		text, err := parsePDF(raw)
		return text, "", err
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
}

func parseDOCX(raw []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open docx zip: %w", err)
	}

	var xmlData []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		xmlData, err = readZipFile(f)
		if err != nil {
			return "", err
		}
		break
	}
	if len(xmlData) == 0 {
		return "", errors.New("word/document.xml not found")
	}

	decoder := xml.NewDecoder(bytes.NewReader(xmlData))
	var b strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "p":
				if b.Len() > 0 {
					b.WriteString("\n")
				}
			case "tab":
				b.WriteString(" ")
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return data, nil
}

func parsePDF(raw []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "", errors.New("no extractable text found in pdf")
	}
	return b.String(), nil
}

// normalizeWhitespace collapses runs inside lines and drops blank lines
func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
