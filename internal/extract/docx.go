package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
)

const (
	docxDocumentXMLPath = "word/document.xml"
	contentTypesPath    = "[Content_Types].xml"
	docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	maxDocxPartSize     = 32 << 20
)

var (
	// paragraphTag matches one <w:p>...</w:p> element, not <w:pPr> or <w:proofErr>.
	paragraphTag = regexp.MustCompile(`(?s)<w:p(?:\s[^>]*[^/])?>(.*?)</w:p>`)
	// textTag matches <w:t>text</w:t> with any attributes.
	textTag = regexp.MustCompile(`<w:t(?:\s[^>]*)?>([^<]*)</w:t>`)

	// Override elements naming the main document part; attributes may come in either order.
	partNameFirst = regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"`)
	partNameLast  = regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"[^>]+PartName="([^"]+)"`)
)

// extractDOCX returns the text of a .docx with one line per paragraph. Runs inside a paragraph are
// joined as-is. The main part is located through [Content_Types].xml, falling back to word/document.xml.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: not a zip: %w", err)
	}

	docPath := docxDocumentXMLPath
	if ct, err := readZipPart(zr, contentTypesPath); err == nil {
		if p := mainDocumentPath(ct); p != "" {
			docPath = p
		}
	}
	docXML, err := readZipPart(zr, docPath)
	if err != nil {
		return "", fmt.Errorf("extract DOCX: %w", err)
	}

	var lines []string
	for _, para := range paragraphTag.FindAllStringSubmatch(docXML, -1) {
		if line := strings.TrimSpace(runText(para[1], "")); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		// No paragraph markup: take loose text nodes.
		return strings.TrimSpace(runText(docXML, " ")), nil
	}
	return strings.Join(lines, "\n"), nil
}

func runText(xml, sep string) string {
	var b strings.Builder
	for i, m := range textTag.FindAllStringSubmatch(xml, -1) {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(html.UnescapeString(m[1]))
	}
	return b.String()
}

func mainDocumentPath(contentTypes string) string {
	for _, re := range []*regexp.Regexp{partNameFirst, partNameLast} {
		if m := re.FindStringSubmatch(contentTypes); len(m) > 1 {
			return strings.TrimPrefix(m[1], "/")
		}
	}
	return ""
}

func readZipPart(zr *zip.Reader, name string) (string, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(io.LimitReader(rc, maxDocxPartSize))
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%s not found", name)
}
