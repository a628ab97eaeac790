package server

import (
	"sort"
	"sync"

	"github.com/stefdev49/vs-zx-sub002/internal/analysis"
	"github.com/stefdev49/vs-zx-sub002/internal/document"
)

// Document is an open document together with its analysis.
type Document struct {
	URI        string
	Text       string
	Version    int
	LanguageID string

	// Snapshot is the analysis of Text. It is never nil.
	Snapshot *analysis.Snapshot

	// Positions converts between editor and analysis positions in Text.
	Positions *document.Text
}

// NewDocument analyzes text and returns the document holding it.
func NewDocument(uri, languageID, text string, version int, opts analysis.Options) *Document {
	return &Document{
		URI:        uri,
		Text:       text,
		Version:    version,
		LanguageID: languageID,
		Snapshot:   analysis.Analyze(text, opts),
		Positions:  document.NewText(text),
	}
}

// DocumentStore manages all open documents.
type DocumentStore struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Set stores or replaces a document.
func (ds *DocumentStore) Set(uri string, doc *Document) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.documents[uri] = doc
}

// Get retrieves a document by URI.
func (ds *DocumentStore) Get(uri string) (*Document, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	doc, ok := ds.documents[uri]

	return doc, ok
}

// Delete removes a document from the store.
func (ds *DocumentStore) Delete(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	delete(ds.documents, uri)
}

// List returns all document URIs in sorted order.
func (ds *DocumentStore) List() []string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	uris := make([]string, 0, len(ds.documents))
	for uri := range ds.documents {
		uris = append(uris, uri)
	}
	sort.Strings(uris)

	return uris
}

// Clear removes all documents from the store.
func (ds *DocumentStore) Clear() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.documents = make(map[string]*Document)
}
