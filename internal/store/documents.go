// documents.go handles the per-user selected-documents list.
package store

import (
	"time"

	"github.com/ltnqls11/pdf-study-api/internal/models"
)

// SaveSelectedDocuments replaces the user's selected document list.
func (s *Store) SaveSelectedDocuments(username string, documents []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := models.UserDocuments{
		Username:          username,
		SelectedDocuments: documents,
		LastUpdated:       time.Now(),
		DocumentCount:     len(documents),
	}
	return s.writeJSON(username+"_documents.json", doc)
}

// LoadSelectedDocuments returns the user's selected document names.
// No selection yet means an empty list.
func (s *Store) LoadSelectedDocuments(username string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc models.UserDocuments
	if err := s.readJSON(username+"_documents.json", &doc); err != nil {
		return nil, err
	}
	if doc.SelectedDocuments == nil {
		doc.SelectedDocuments = []string{}
	}
	return doc.SelectedDocuments, nil
}
