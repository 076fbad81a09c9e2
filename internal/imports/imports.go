// Package imports turns an uploaded CV file into a Source the model can read.
package imports

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEDOC  = "application/msword"
	MIMEText = "text/plain"
)

var extensions = map[string]string{
	".pdf":  MIMEPDF,
	".docx": MIMEDOCX,
	".doc":  MIMEDOC,
	".txt":  MIMEText,
	".md":   MIMEText,
}

// Source is an uploaded CV ready for parsing. Data holds the original bytes
// when the file itself is sent to the model; Text holds whatever text could
// be extracted locally.
type Source struct {
	Filename string
	MIMEType string
	Data     []byte
	Text     string
	Pages    int
}

// Inline reports whether the original file accompanies the prompt.
func (s Source) Inline() bool {
	return s.MIMEType == MIMEPDF || s.MIMEType == MIMEDOC
}

// Read validates an upload and extracts its text. contentType comes from the
// upload header; when it is missing or generic the file extension decides.
func Read(filename, contentType string, data []byte, cfg *Config) (Source, error) {
	if len(data) == 0 {
		return Source{}, ErrEmptyFile
	}
	if max := cfg.MaxSizeBytes(); max > 0 && int64(len(data)) > max {
		return Source{}, fmt.Errorf("%w: %d bytes exceeds %s", ErrTooLarge, len(data), cfg.MaxSize)
	}

	src := Source{
		Filename: filename,
		MIMEType: detectType(filename, contentType),
	}

	switch src.MIMEType {
	case MIMEPDF:
		pages, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
		if err != nil {
			return Source{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		if pages > cfg.MaxPages {
			return Source{}, fmt.Errorf("%w: %d pages exceeds %d", ErrTooManyPages, pages, cfg.MaxPages)
		}
		src.Pages = pages
		src.Data = data
		// scanned PDFs have no text layer; the model still reads the file
		src.Text, _ = readText(pdfText, data)
	case MIMEDOCX:
		text, err := readText(docxText, data)
		if err != nil {
			return Source{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		src.Text = text
	case MIMEDOC:
		src.Data = data
	case MIMEText:
		src.Text = string(data)
	default:
		return Source{}, fmt.Errorf("%w: %s", ErrUnsupportedType, src.MIMEType)
	}

	if !src.Inline() && strings.TrimSpace(src.Text) == "" {
		return Source{}, ErrEmptyFile
	}
	return src, nil
}

func detectType(filename, contentType string) string {
	if contentType != "" && contentType != "application/octet-stream" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			return mt
		}
	}
	if mt, ok := extensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return mt
	}
	return contentType
}

// readText runs a text extractor, turning a parser panic on a malformed file
// into an error.
func readText(extract func([]byte) (string, error), data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("parser panic: %v", r)
		}
	}()
	return extract(data)
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return plainText(doc.Editable().GetContent())
}

// plainText collects the w:t runs of a WordprocessingML body, one line per
// paragraph.
func plainText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))

	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
