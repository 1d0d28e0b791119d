// Package classify filters job-board boilerplate out of scraped postings.
//
// Job pages wrap the actual posting in navigation, apply buttons, cookie
// banners, equal-opportunity statements and legal footers. Those blocks carry
// no skills but do add vocabulary to the TF-IDF comparison, so they are
// dropped before analysis. Classification uses stemmed marker words and a
// position-based threshold: blocks at the edges of a page are judged more
// strictly than blocks in the middle.
package classify

import (
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// boilerplateStems contains English snowball stems of words that dominate
// job-board chrome.
var boilerplateStems = map[string]struct{}{
	// --- Application & Job Board Actions ---
	"alert":    {},
	"appli":    {}, // apply
	"applic":   {}, // application, applicants
	"job":      {},
	"login":    {},
	"post":     {}, // posted
	"report":   {},
	"save":     {},
	"search":   {},
	"sign":     {},
	"similar":  {},
	"subscrib": {},

	// --- Navigation & Sharing ---
	"about":    {},
	"click":    {},
	"facebook": {},
	"follow":   {},
	"footer":   {},
	"home":     {},
	"https":    {},
	"linkedin": {},
	"locat":    {}, // location
	"menu":     {},
	"navig":    {},
	"profil":   {},
	"share":    {},
	"twitter":  {},
	"updat":    {},
	"view":     {},

	// --- Legal, Cookies & EEO ---
	"cooki":     {},
	"copyright": {},
	"employ":    {}, // employer, employment
	"equal":     {},
	"gender":    {},
	"opportun":  {},
	"polici":    {},
	"privaci":   {},
	"reserv":    {},
	"right":     {},
	"term":      {},
	"use":       {},
	"veteran":   {},
}

// Classifier identifies boilerplate blocks using stem analysis and
// position-based thresholding.
type Classifier struct {
	tokenRegex *regexp.Regexp
}

// NewClassifier creates and initializes a new Classifier instance
func NewClassifier() *Classifier {
	return &Classifier{
		tokenRegex: regexp.MustCompile(`\b[a-zA-Z]+\b`),
	}
}

// IsBoilerplate reports whether a block should be dropped from a posting.
//
// Parameters:
//   - block: the text of the block to analyze
//   - index: zero-based index of the block within the page
//   - total: total number of blocks in the page
//
// Invalid positions are never classified as boilerplate. Blocks without any
// words always are.
func (c *Classifier) IsBoilerplate(block string, index int, total int) bool {
	if total <= 0 || index < 0 || index >= total {
		return false
	}

	tokens := c.tokenRegex.FindAllString(strings.ToLower(block), -1)
	if len(tokens) == 0 {
		return true
	}

	markers := 0
	for _, token := range tokens {
		stemmed, err := snowball.Stem(token, "english", true)
		if err != nil {
			stemmed = token
		}
		if _, ok := boilerplateStems[stemmed]; ok {
			markers++
		}
	}

	ratio := float64(markers) / float64(len(tokens))
	return ratio > c.threshold(index, total)
}

// Filter returns the blocks that are not boilerplate, in their original order.
func (c *Classifier) Filter(blocks []string) []string {
	kept := make([]string, 0, len(blocks))
	for i, block := range blocks {
		if c.IsBoilerplate(block, i, len(blocks)) {
			slog.Debug("Dropping boilerplate block", "index", i, "preview", preview(block))
			continue
		}
		kept = append(kept, block)
	}
	slog.Debug("Boilerplate filter done", "blocks", len(blocks), "kept", len(kept))
	return kept
}

// threshold is lower for blocks at the beginning and end of a page, where
// navigation and footers live, and higher in the middle.
func (c *Classifier) threshold(index int, total int) float64 {
	if total <= 0 || index < 0 || index >= total {
		return 0.33
	}
	if total <= 3 {
		// small pages: avoid false positives
		return 0.5
	}

	relativePosition := float64(index) / float64(total-1)

	// inverted V: 0 at the edges, 1 in the middle
	positionFactor := 1.0 - math.Abs(2.0*relativePosition-1.0)

	const (
		edgeThreshold   = 0.1
		middleThreshold = 0.33
	)
	return edgeThreshold + (middleThreshold-edgeThreshold)*positionFactor
}

func preview(block string) string {
	const max = 40
	block = strings.ReplaceAll(block, "\n", " ")
	if r := []rune(block); len(r) > max {
		return string(r[:max]) + "..."
	}
	return block
}
