package lsp

import "sync"

// Document is an open text document and its latest analysis.
type Document struct {
	Content string
	Result  *AnalysisResult
}

// DocumentStore holds open documents keyed by URI. Content is analyzed
// on every open and update so handlers never scan twice.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Open stores content for uri and returns its analysis.
func (s *DocumentStore) Open(uri, content string) *AnalysisResult {
	return s.put(uri, content)
}

// Update replaces the content for uri and returns its analysis.
func (s *DocumentStore) Update(uri, content string) *AnalysisResult {
	return s.put(uri, content)
}

func (s *DocumentStore) put(uri, content string) *AnalysisResult {
	doc := &Document{Content: content, Result: Analyze(uri, content)}
	s.mu.Lock()
	defer s.mu.Unlock()
	// A config that stops parsing mid-edit keeps its last palette so
	// "palette." still completes.
	if prev, ok := s.docs[uri]; ok && len(doc.Result.Names) == 0 && len(doc.Result.Diagnostics) > 0 {
		doc.Result.Names = prev.Result.Names
		doc.Result.Palette = prev.Result.Palette
	}
	s.docs[uri] = doc
	return doc.Result
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Get returns the content stored for uri.
func (s *DocumentStore) Get(uri string) (string, bool) {
	doc, ok := s.Document(uri)
	if !ok {
		return "", false
	}
	return doc.Content, true
}

// Document returns the stored document for uri.
func (s *DocumentStore) Document(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}
