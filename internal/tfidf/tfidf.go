// Package tfidf provides TF-IDF (Term Frequency-Inverse Document Frequency) vectors
// and cosine similarity over a small corpus of normalized documents.
//
// The corpus is built from exactly the documents being compared, so IDF is a
// property of that comparison rather than of any external collection. For the
// resume/job-description pair this makes the similarity a pairwise metric.
//
// The weighting combines:
//   - Term Frequency (TF): relative frequency of a term within one document
//   - Inverse Document Frequency (IDF): smoothed rarity across the corpus,
//     idf = ln((1+N)/(1+df)) + 1, so a term shared by every document still
//     carries weight
//
// Usage Example:
//
//	percent := tfidf.Similarity(textnorm.Normalize(resume), textnorm.Normalize(jd))
//	// percent is in [0, 100], rounded to two decimals
//
// Input documents are expected to be normalized already; tokenization here is
// plain whitespace splitting.
package tfidf

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Corpus holds the docs and pre-calculated TF-IDF data for vector construction.
type Corpus struct {
	Documents       []string             // Normalized documents
	TermFrequencies []map[string]float64 // TF for each document
	DocFrequencies  map[string]int       // Document frequency for each term
	TotalDocuments  int                  // Total number of documents
	Vocabulary      []string             // Sorted union of all terms; the vector axes
}

// NewCorpus creates a new TF-IDF corpus from a collection of normalized documents.
// It pre-calculates term frequencies, document frequencies and the shared vocabulary.
//
// Parameters:
//   - documents: slice of normalized text documents
//
// Returns:
//   - *Corpus: corpus ready for vector construction and comparison
func NewCorpus(documents []string) *Corpus {
	if len(documents) == 0 {
		slog.Debug("Empty document collection provided")
		return &Corpus{
			Documents:       []string{},
			TermFrequencies: []map[string]float64{},
			DocFrequencies:  map[string]int{},
			TotalDocuments:  0,
			Vocabulary:      []string{},
		}
	}

	corpus := &Corpus{
		Documents:       documents,
		TermFrequencies: make([]map[string]float64, len(documents)),
		DocFrequencies:  make(map[string]int),
		TotalDocuments:  len(documents),
	}

	slog.Debug("Creating TF-IDF corpus", "documentCount", len(documents))

	for docIdx, doc := range documents {
		tokens := tokenize(doc)
		corpus.TermFrequencies[docIdx] = calculateTermFrequency(tokens)

		// document frequency counts each term once per document
		for term := range corpus.TermFrequencies[docIdx] {
			corpus.DocFrequencies[term]++
		}
	}

	corpus.Vocabulary = make([]string, 0, len(corpus.DocFrequencies))
	for term := range corpus.DocFrequencies {
		corpus.Vocabulary = append(corpus.Vocabulary, term)
	}
	// fixed axis order keeps dot products reproducible regardless of document order
	sort.Strings(corpus.Vocabulary)

	slog.Debug("TF-IDF corpus created", "totalTerms", len(corpus.Vocabulary), "documents", corpus.TotalDocuments)
	return corpus
}

// IDF returns the smoothed inverse document frequency of term.
// Terms outside the corpus get the weight of a term seen in no document.
func (c *Corpus) IDF(term string) float64 {
	df := c.DocFrequencies[term]
	return math.Log(float64(1+c.TotalDocuments)/float64(1+df)) + 1
}

// Vector returns the TF-IDF vector of a document over the corpus vocabulary.
//
// Parameters:
//   - docIndex: index of the document
//
// Returns:
//   - []float64: one weight per vocabulary term; nil for an invalid index
func (c *Corpus) Vector(docIndex int) []float64 {
	if docIndex < 0 || docIndex >= len(c.Documents) {
		slog.Debug("Invalid document index", "docIndex", docIndex, "totalDocs", len(c.Documents))
		return nil
	}

	tf := c.TermFrequencies[docIndex]
	vec := make([]float64, len(c.Vocabulary))
	for i, term := range c.Vocabulary {
		if f := tf[term]; f > 0 {
			vec[i] = f * c.IDF(term)
		}
	}
	return vec
}

// Cosine returns the cosine similarity of two documents in [0, 1].
// Degenerate cases (invalid index, empty vocabulary, zero vector) yield 0.
func (c *Corpus) Cosine(i, j int) float64 {
	if len(c.Vocabulary) == 0 {
		slog.Debug("Empty vocabulary, similarity is zero")
		return 0
	}

	a, b := c.Vector(i), c.Vector(j)
	if a == nil || b == nil {
		return 0
	}

	normA, normB := floats.Norm(a, 2), floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		slog.Debug("Zero vector, similarity is zero", "normA", normA, "normB", normB)
		return 0
	}

	cos := floats.Dot(a, b) / (normA * normB)
	// clamp rounding drift so self-similarity never exceeds 1
	return math.Max(0, math.Min(1, cos))
}

// Similarity scores two normalized documents as a percentage in [0, 100],
// rounded to two decimals. It is symmetric, and 0 whenever either document is empty.
func Similarity(resumeText, jdText string) float64 {
	corpus := NewCorpus([]string{resumeText, jdText})
	cos := corpus.Cosine(0, 1)
	return math.Round(cos*100*100) / 100
}

// tokenize splits a normalized document into terms.
func tokenize(text string) []string {
	if text == "" {
		return []string{}
	}
	return strings.Fields(text)
}

// calculateTermFrequency computes the term frequency for a slice of tokens.
// Term frequency is calculated as: (count of term in document) / (total terms in document)
func calculateTermFrequency(tokens []string) map[string]float64 {
	if len(tokens) == 0 {
		return map[string]float64{}
	}

	termCounts := make(map[string]int)
	for _, token := range tokens {
		termCounts[token]++
	}

	totalTerms := float64(len(tokens))
	termFreqs := make(map[string]float64, len(termCounts))
	for term, count := range termCounts {
		termFreqs[term] = float64(count) / totalTerms
	}

	return termFreqs
}
