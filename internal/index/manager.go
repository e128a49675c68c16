// Package index maintains one vector collection per document and searches
// across them. Collections live in memory; documents are re-indexed from
// their PDFs when the server starts needing them.
package index

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"
)

// Chunking settings. Overlap keeps sentences that straddle a boundary
// findable from both sides.
const (
	chunkSize    = 1000
	chunkOverlap = 200

	// minDocumentLen rejects documents too short to index meaningfully.
	minDocumentLen = 50
)

// SearchResult is one chunk hit, tagged with the document it came from.
type SearchResult struct {
	Document   string  `json:"document"`
	Content    string  `json:"content"`
	Similarity float32 `json:"similarity"`
}

// DocumentStats describes one indexed document.
type DocumentStats struct {
	Name   string `json:"name"`
	Chars  int    `json:"chars"`
	Chunks int    `json:"chunks"`
}

// Stats summarizes the whole index.
type Stats struct {
	DocumentCount int             `json:"document_count"`
	TotalChars    int             `json:"total_chars"`
	Documents     []DocumentStats `json:"documents"`
}

type docEntry struct {
	collection *chromem.Collection
	chars      int
	chunks     int
}

// Manager owns the per-document collections. Safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	db      *chromem.DB
	embed   chromem.EmbeddingFunc
	docs    map[string]*docEntry
	ordered []string // insertion order, drives search result ordering
}

// NewManager creates an empty index using embed for all collections.
func NewManager(embed chromem.EmbeddingFunc) *Manager {
	return &Manager{
		db:    chromem.NewDB(),
		embed: embed,
		docs:  make(map[string]*docEntry),
	}
}

// AddDocument chunks and indexes text under name, replacing any previous
// index for the same name. Returns false without error when the text is too
// short to be worth indexing.
func (m *Manager) AddDocument(ctx context.Context, name, text string) (bool, error) {
	if len(strings.TrimSpace(text)) < minDocumentLen {
		log.Printf("⚠️ Skipping index for %s: document too short", name)
		return false, nil
	}

	chunks := chunkText(text)

	m.mu.Lock()
	defer m.mu.Unlock()

	collName := collectionName(name)
	if _, exists := m.docs[name]; exists {
		if err := m.db.DeleteCollection(collName); err != nil {
			return false, fmt.Errorf("failed to reset collection for %s: %w", name, err)
		}
	}

	collection, err := m.db.GetOrCreateCollection(collName, nil, m.embed)
	if err != nil {
		return false, fmt.Errorf("failed to create collection for %s: %w", name, err)
	}

	for i, chunk := range chunks {
		doc := chromem.Document{
			ID: uuid.New().String(),
			Metadata: map[string]string{
				"document": name,
				"chunk":    fmt.Sprintf("%d", i),
			},
			Content: chunk,
		}
		if err := collection.AddDocument(ctx, doc); err != nil {
			return false, fmt.Errorf("failed to index chunk %d of %s: %w", i, name, err)
		}
	}

	if _, exists := m.docs[name]; !exists {
		m.ordered = append(m.ordered, name)
	}
	m.docs[name] = &docEntry{collection: collection, chars: len(text), chunks: len(chunks)}

	log.Printf("📚 Indexed %s: %d chunks, %d chars", name, len(chunks), len(text))
	return true, nil
}

// RemoveDocument drops a document's collection. Removing an unknown name is
// a no-op.
func (m *Manager) RemoveDocument(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.docs[name]; !exists {
		return nil
	}
	if err := m.db.DeleteCollection(collectionName(name)); err != nil {
		return fmt.Errorf("failed to delete collection for %s: %w", name, err)
	}
	delete(m.docs, name)
	for i, n := range m.ordered {
		if n == name {
			m.ordered = append(m.ordered[:i], m.ordered[i+1:]...)
			break
		}
	}
	return nil
}

// Has reports whether name is indexed.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.docs[name]
	return ok
}

// Search queries every indexed document and returns up to k chunk hits.
// Each document contributes its own nearest chunks; results keep index
// insertion order across documents rather than being re-ranked globally.
// A document whose query fails is logged and skipped so one bad collection
// cannot sink the whole search.
func (m *Manager) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	if k <= 0 {
		k = 5
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.docs) == 0 {
		return []SearchResult{}, nil
	}

	perDoc := k/len(m.docs) + 1
	queryText := queryTaskPrefix + query

	var results []SearchResult
	for _, name := range m.ordered {
		entry := m.docs[name]

		n := perDoc
		if count := entry.collection.Count(); n > count {
			n = count
		}
		if n == 0 {
			continue
		}

		hits, err := entry.collection.Query(ctx, queryText, n, nil, nil)
		if err != nil {
			log.Printf("⚠️ Search failed for %s: %v", name, err)
			continue
		}
		for _, hit := range hits {
			results = append(results, SearchResult{
				Document:   name,
				Content:    hit.Content,
				Similarity: hit.Similarity,
			})
		}
	}

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Stats reports the indexed documents sorted by name.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{Documents: []DocumentStats{}}
	for name, entry := range m.docs {
		stats.Documents = append(stats.Documents, DocumentStats{
			Name:   name,
			Chars:  entry.chars,
			Chunks: entry.chunks,
		})
		stats.TotalChars += entry.chars
	}
	stats.DocumentCount = len(m.docs)
	sort.Slice(stats.Documents, func(i, j int) bool {
		return stats.Documents[i].Name < stats.Documents[j].Name
	})
	return stats
}

// chunkText splits text into overlapping windows on rune boundaries.
func chunkText(text string) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	step := chunkSize - chunkOverlap
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// collectionName derives a collection identifier from a document name.
// chromem collection names tolerate most characters but slashes and spaces
// make the persistent layout awkward, so they are flattened.
func collectionName(name string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", " ", "_")
	return "doc_" + r.Replace(name)
}
