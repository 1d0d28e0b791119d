// Package extract turns fetched documents into plain text for analysis.
//
// HTML job postings are reduced to their main content and converted to
// Markdown; PDF and DOCX resumes are read page by page or paragraph by
// paragraph. Every path keeps line boundaries, since project detection works
// line by line.
package extract

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/chriscorrea/resumatch/internal/fetch"
	"github.com/go-shiori/go-readability"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Options controls HTML extraction.
type Options struct {
	Selector   string   // optional CSS selector; overrides readability
	IncludeAll bool     // convert the whole page without readability filtering
	BaseURL    *url.URL // page URL for resolving links (may be nil)
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:cr\s*/>`)
	docxTab          = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]*>`)
	blankLines       = regexp.MustCompile(`\n{3,}`)
)

// ToText extracts plain text from r according to kind.
//
// Parameters:
//   - r: document content
//   - kind: detected document format
//   - opts: HTML extraction options (ignored for other kinds)
//
// Returns the extracted text or an error if the document cannot be parsed.
func ToText(r io.Reader, kind fetch.Kind, opts Options) (string, error) {
	switch kind {
	case fetch.HTML:
		return ToMarkdown(r, opts.Selector, opts.IncludeAll, opts.BaseURL)
	case fetch.PDF:
		return pdfText(r)
	case fetch.DOCX:
		return docxText(r)
	default:
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("failed to read text content: %w", err)
		}
		return string(data), nil
	}
}

// ToMarkdown extracts the main content from HTML and converts it to Markdown.
// Optional CSS selector filtering is supported.
func ToMarkdown(content io.Reader, selector string, includeAll bool, baseURL *url.URL) (string, error) {
	if selector != "" {
		return extractWithSelector(content, selector)
	}
	if includeAll {
		return convertAllHTML(content)
	}
	return extractMainContent(content, baseURL)
}

// extractMainContent uses go-readability to extract the main posting content
func extractMainContent(content io.Reader, baseURL *url.URL) (string, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}

	return convertToMarkdown(article.Content)
}

// extractWithSelector uses a CSS selector to extract specific content
func extractWithSelector(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var htmlParts []string
	selection.Each(func(i int, s *goquery.Selection) {
		inner, err := s.Html()
		if err == nil {
			// wrap each element to preserve structure
			tagName := goquery.NodeName(s)
			htmlParts = append(htmlParts, fmt.Sprintf("<%s>%s</%s>", tagName, inner, tagName))
		}
	})

	if len(htmlParts) == 0 {
		return "", fmt.Errorf("failed to extract HTML from selection")
	}

	return convertToMarkdown(strings.Join(htmlParts, "\n"))
}

// convertAllHTML converts all HTML content to Markdown without filtering
func convertAllHTML(content io.Reader) (string, error) {
	htmlBytes, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML content: %w", err)
	}
	return convertToMarkdown(string(htmlBytes))
}

// convertToMarkdown converts HTML string to clean Markdown
func convertToMarkdown(htmlString string) (string, error) {
	converter := md.NewConverter("", true, nil)

	markdown, err := converter.ConvertString(htmlString)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	return tidy(markdown), nil
}

// pdfText reads every page of a PDF, one output line per text row.
func pdfText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF content: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			// row grouping failed; plain text still beats losing the page
			slog.Debug("PDF row extraction failed, using plain text", "page", i, "error", err)
			text, err := page.GetPlainText(nil)
			if err != nil {
				return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
			}
			sb.WriteString(text)
			sb.WriteString("\n")
			continue
		}

		for _, row := range rows {
			sb.WriteString(joinRow(row.Content))
			sb.WriteString("\n")
		}
	}

	slog.Debug("PDF extracted", "pages", numPages, "bytes", sb.Len())
	return tidy(sb.String()), nil
}

// wordGapRatio is the horizontal gap, as a fraction of the font size, above
// which two text items on a row are treated as separate words.
const wordGapRatio = 0.15

// joinRow concatenates the text items of one PDF row, inserting a space where
// the layout leaves a gap but the content stream has no explicit space.
func joinRow(items []pdf.Text) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			prev := items[i-1]
			gap := item.X - (prev.X + prev.W)
			size := prev.FontSize
			if size <= 0 {
				size = prev.W
			}
			if gap > wordGapRatio*size &&
				!strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(item.S, " ") {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(item.S)
	}
	return sb.String()
}

// docxText reads the document body of a DOCX file, one line per paragraph.
func docxText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX content: %w", err)
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText strips WordprocessingML markup, keeping paragraph breaks.
func docxXMLToText(xml string) string {
	text := docxParagraphEnd.ReplaceAllString(xml, "\n")
	text = docxTab.ReplaceAllString(text, " ")
	text = xmlTag.ReplaceAllString(text, "")
	return tidy(html.UnescapeString(text))
}

// tidy trims the text and collapses runs of blank lines.
func tidy(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
