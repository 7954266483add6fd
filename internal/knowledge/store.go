// Package knowledge holds the static FAQ knowledge base and the tag-based
// query matcher behind the assistant's query endpoint.
package knowledge

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/afubot/afu-assistant/internal/domain"
)

//go:embed data/knowledge.json
var embeddedData embed.FS

// Store is the read-only FAQ knowledge base. Entries keep their
// declaration order; matching depends on it.
type Store struct {
	entries []domain.FaqEntry
	byID    map[string]*domain.FaqEntry
}

// Load reads FAQ entries from path, or from the embedded default data set
// when path is empty.
func Load(path string) (*Store, error) {
	var (
		raw []byte
		err error
	)
	if path != "" {
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read knowledge file: %w", err)
		}
	} else {
		raw, err = embeddedData.ReadFile("data/knowledge.json")
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded knowledge: %w", err)
		}
	}

	var entries []domain.FaqEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge data: %w", err)
	}

	return New(entries)
}

// New builds a store from entries, preserving their order.
func New(entries []domain.FaqEntry) (*Store, error) {
	byID := make(map[string]*domain.FaqEntry, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.ID == "" || e.Question == "" {
			return nil, fmt.Errorf("knowledge entry %d: missing id or question", i)
		}
		if _, ok := byID[e.ID]; ok {
			return nil, fmt.Errorf("duplicate knowledge entry id: %s", e.ID)
		}
		byID[e.ID] = e
	}
	return &Store{entries: entries, byID: byID}, nil
}

// Match returns the first entry (in store order) with at least one tag that
// contains the query or is contained by it, case-insensitively. It returns
// nil when nothing matches.
func (s *Store) Match(query string) *domain.FaqEntry {
	q := strings.ToLower(query)
	for i := range s.entries {
		entry := &s.entries[i]
		for _, tag := range entry.Tags {
			t := strings.ToLower(tag)
			if strings.Contains(q, t) || strings.Contains(t, q) {
				return entry
			}
		}
	}
	return nil
}

// Get retrieves an entry by id.
func (s *Store) Get(id string) (*domain.FaqEntry, error) {
	entry, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// List returns all entries in store order.
func (s *Store) List() []domain.FaqEntry {
	return s.entries
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Categories returns the distinct categories, sorted.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for i := range s.entries {
		c := s.entries[i].Category
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	return categories
}

// Fallback is the canned answer returned when no entry matches a query.
func Fallback() *domain.QueryResponse {
	return &domain.QueryResponse{
		AnswerHTML:      "<p>抱歉，我暫時無法理解您的問題。您可以試著換個方式提問，或聯繫真人客服。</p>",
		QuickActions:    []domain.QuickAction{{Text: "聯絡客服", Action: "show_contact"}},
		Recommendations: []domain.Recommendation{},
	}
}
