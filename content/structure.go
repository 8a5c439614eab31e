package content

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Heading is a section heading found in the body, in document order.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// wordsPerMinute is the reading speed used for ReadingTime.
const wordsPerMinute = 200

// ValidateSemanticStructure checks the heading hierarchy of the body using DefaultThresholds.
func ValidateSemanticStructure(htmlContent string) Result {
	return DefaultThresholds().ValidateSemanticStructure(htmlContent)
}

// ValidateContentLength checks the visible text size of the body using DefaultThresholds.
func ValidateContentLength(htmlContent string) Result {
	return DefaultThresholds().ValidateContentLength(htmlContent)
}

// ValidateSemanticStructure reports an error when the body has more than one
// h1 and a warning for every heading that goes more than one level deeper
// than the heading before it (h2 followed by h4). A body without h1 is fine:
// the post title plays that role.
func (t Thresholds) ValidateSemanticStructure(htmlContent string) Result {
	var result Result
	headings := Headings(htmlContent)

	h1 := 0
	for _, h := range headings {
		if h.Level == 1 {
			h1++
		}
	}
	if h1 > 1 {
		result.addError("content", CodeMultipleH1, fmt.Sprintf(
			"O conteúdo tem %d títulos H1: use apenas um por página.", h1))
	}

	for i := 1; i < len(headings); i++ {
		prev, cur := headings[i-1], headings[i]
		if cur.Level > prev.Level+1 {
			result.addWarning("content", CodeHeadingSkip, fmt.Sprintf(
				"Hierarquia de títulos quebrada: H%d \"%s\" vem logo após H%d (falta H%d).",
				cur.Level, shorten(cur.Text, 40), prev.Level, prev.Level+1))
		}
	}

	return result
}

// ValidateContentLength counts the words of the visible text. Markup,
// attributes and whitespace between tags do not count. Below MinWords is an
// error, below ThinWords a warning.
func (t Thresholds) ValidateContentLength(htmlContent string) Result {
	var result Result
	words := WordCount(htmlContent)

	switch {
	case words == 0:
		result.addError("content", CodeEmptyContent, "O conteúdo está vazio.")
	case words < t.MinWords:
		result.addError("content", CodeContentTooShort, fmt.Sprintf(
			"Conteúdo muito curto: %d palavras (mínimo de %d).", words, t.MinWords))
	case words < t.ThinWords:
		result.addWarning("content", CodeThinContent, fmt.Sprintf(
			"Conteúdo raso para SEO: %d palavras. Textos com pelo menos %d palavras costumam ranquear melhor.", words, t.ThinWords))
	}

	return result
}

// Headings returns the h1-h6 elements of the body in document order.
func Headings(htmlContent string) []Heading {
	doc, err := parse(htmlContent)
	if err != nil {
		return nil
	}

	var headings []Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		headings = append(headings, Heading{
			Level: int(name[1] - '0'),
			Text:  strings.Join(strings.Fields(s.Text()), " "),
		})
	})
	return headings
}

// ExtractText returns the visible text of the body with block elements
// separated by spaces and whitespace runs collapsed.
func ExtractText(htmlContent string) string {
	doc, err := parse(htmlContent)
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript, template").Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		writeText(&b, n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// WordCount is the number of words of ExtractText.
func WordCount(htmlContent string) int {
	return len(strings.Fields(ExtractText(htmlContent)))
}

// ReadingTime is the estimated reading time in minutes, at least 1 for any
// non-empty body.
func ReadingTime(htmlContent string) int {
	words := WordCount(htmlContent)
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

// DeriveExcerpt builds a plain-text summary of at most maxRunes characters,
// cut on a word boundary.
func DeriveExcerpt(htmlContent string, maxRunes int) string {
	text := ExtractText(htmlContent)
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:maxRunes])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:-") + "…"
}

func parse(htmlContent string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "section": true, "article": true,
	"table": true, "tr": true, "td": true, "th": true, "figure": true, "figcaption": true,
	"hr": true,
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if blockElements[n.Data] {
			b.WriteByte(' ')
			defer b.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}

func shorten(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
