package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

// docxWith returns .docx zip bytes with body XML stored at docPath. When docPath is not the default,
// a [Content_Types].xml pointing at it is added.
func docxWith(body, docPath string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if docPath != docxDocumentXMLPath {
		ct, _ := w.Create(contentTypesPath)
		_, _ = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Override PartName="/` + docPath + `" ContentType="` + docxMainContentType + `"/>
</Types>`))
	}
	fw, _ := w.Create(docPath)
	_, _ = fw.Write([]byte(`<w:document ` + wordNS + `><w:body>` + body + `</w:body></w:document>`))
	_ = w.Close()
	return buf.Bytes()
}

func TestExtractBytes_plain(t *testing.T) {
	e := NewExtractor()
	tests := []struct {
		name    string
		content []byte
		ext     string
		want    string
	}{
		{"txt", []byte("Hello world\nLine 2"), ".txt", "Hello world\nLine 2"},
		{"markdown utf8", []byte("caf\xc3\xa9"), ".md", "café"},
		{"invalid utf8", []byte("hello\x80world"), ".txt", "hello\uFFFDworld"},
		{"byte order mark", []byte("\xef\xbb\xbfPython"), ".TXT", "Python"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.ExtractBytes(tt.content, tt.ext)
			if err != nil {
				t.Fatalf("ExtractBytes: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractBytes_unsupported(t *testing.T) {
	e := NewExtractor()
	for _, ext := range []string{".xyz", ".doc", ""} {
		if _, err := e.ExtractBytes([]byte("raw"), ext); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ExtractBytes(%q) err = %v, want ErrUnsupportedFormat", ext, err)
		}
	}
}

func TestExtractBytes_docxParagraphs(t *testing.T) {
	body := `<w:p w:rsidR="00A1"><w:pPr><w:jc w:val="left"/></w:pPr>` +
		`<w:r><w:t>Senior </w:t></w:r><w:r><w:t xml:space="preserve">Python Engineer</w:t></w:r></w:p>` +
		`<w:p/>` +
		`<w:p><w:r><w:t>R&amp;D, 6 years</w:t></w:r></w:p>`
	got, err := NewExtractor().ExtractBytes(docxWith(body, docxDocumentXMLPath), ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if want := "Senior Python Engineer\nR&D, 6 years"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractBytes_docxLooseText(t *testing.T) {
	got, err := NewExtractor().ExtractBytes(docxWith(`<w:t>alpha</w:t><w:t>beta</w:t>`, docxDocumentXMLPath), ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "alpha beta" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_docxCustomMainPart(t *testing.T) {
	body := `<w:p><w:r><w:t>Content from document2</w:t></w:r></w:p>`
	got, err := NewExtractor().ExtractBytes(docxWith(body, "word/document2.xml"), ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Content from document2" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_docxContentTypesReversedOrder(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	ct, _ := w.Create(contentTypesPath)
	_, _ = ct.Write([]byte(`<Types><Override ContentType="` + docxMainContentType + `" PartName="/word/document3.xml"/></Types>`))
	fw, _ := w.Create("word/document3.xml")
	_, _ = fw.Write([]byte(`<w:document ` + wordNS + `><w:body><w:p><w:r><w:t>Reversed order</w:t></w:r></w:p></w:body></w:document>`))
	_ = w.Close()

	got, err := NewExtractor().ExtractBytes(buf.Bytes(), ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Reversed order" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_docxErrors(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("not a zip"), ".docx"); err == nil {
		t.Error("expected error for non-zip content")
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, _ := w.Create("other.xml")
	_, _ = fw.Write([]byte("<x/>"))
	_ = w.Close()
	if _, err := e.ExtractBytes(buf.Bytes(), ".docx"); err == nil {
		t.Error("expected error for missing document part")
	}
}

func TestExtractBytes_malformedPDF(t *testing.T) {
	if _, err := NewExtractor().ExtractBytes([]byte("%PDF-1.4 garbage"), ".pdf"); err == nil {
		t.Error("expected error for malformed PDF")
	}
}

func TestExtractor_Allowed(t *testing.T) {
	e := NewExtractor(".pdf", "DOCX")
	tests := []struct {
		filename string
		want     bool
	}{
		{"cv.pdf", true},
		{"CV.PDF", true},
		{"cv.docx", true},
		{"cv.txt", false},
		{"cv", false},
		{"archive.pdf.zip", false},
	}
	for _, tt := range tests {
		if got := e.Allowed(tt.filename); got != tt.want {
			t.Errorf("Allowed(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestExtractFile(t *testing.T) {
	e := NewExtractor(".docx")
	if _, err := e.ExtractFile("notes.txt", []byte("python")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
	got, err := e.ExtractFile("cv.docx", docxWith(`<w:p><w:r><w:t>Go developer</w:t></w:r></w:p>`, docxDocumentXMLPath))
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if got != "Go developer" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_file(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, []byte("File content"), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := NewExtractor().Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "File content" {
		t.Errorf("got %q", got)
	}

	if _, err := NewExtractor().Extract(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for nonexistent file")
	}
	if _, err := NewExtractor(".pdf").Extract(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}
