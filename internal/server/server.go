// Package server holds the state of the language server: open documents,
// their analysis snapshots and the client configuration.
package server

import (
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/analysis"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// Server holds the state of the LSP server.
type Server struct {
	// documents stores all open documents
	documents *DocumentStore

	// workspaceFolders stores the workspace folders from the client
	workspaceFolders []string

	clientCapabilities *protocol.ClientCapabilities

	config *Config

	// semanticTokensLegend is fixed for the lifetime of the server
	semanticTokensLegend *analysis.SemanticTokensLegend

	mu sync.RWMutex

	shuttingDown bool
}

// Config holds server configuration options, set by the client through
// the "zxbasic" settings section.
type Config struct {
	// MaxProblems limits the number of diagnostics reported per document
	MaxProblems int

	// Trace controls logging verbosity
	Trace string

	Dialect token.Dialect

	// Strict turns on the rules that only matter for strict programs
	Strict bool

	// RenumberIncrement is the step used by renumbering and formatting
	RenumberIncrement int

	// MaxLineLength enables the line length rule when positive
	MaxLineLength int
}

// AnalysisOptions returns the analysis options derived from c.
func (c Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		Dialect:       c.Dialect,
		Strict:        c.Strict,
		MaxLineLength: c.MaxLineLength,
	}
}

// DefaultConfig returns the configuration used before the client sends
// its settings.
func DefaultConfig() Config {
	return Config{
		MaxProblems:       100,
		Trace:             "off",
		Dialect:           token.Dialect48K,
		RenumberIncrement: 10,
	}
}

// New creates a new LSP server instance.
func New() *Server {
	cfg := DefaultConfig()
	return &Server{
		documents:            NewDocumentStore(),
		semanticTokensLegend: analysis.NewSemanticTokensLegend(),
		config:               &cfg,
	}
}

// IsShuttingDown returns true if the server is shutting down.
func (s *Server) IsShuttingDown() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shuttingDown
}

// SetShuttingDown marks the server as shutting down.
func (s *Server) SetShuttingDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuttingDown = true
}

// Documents returns the document store.
func (s *Server) Documents() *DocumentStore {
	return s.documents
}

// Config returns a copy of the server configuration.
func (s *Server) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.config
}

// UpdateConfig updates the server configuration atomically.
// The update function is called with the current config under a write lock.
func (s *Server) UpdateConfig(update func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	update(s.config)
}

// Analyze stores a new version of a document and analyzes it with the
// current configuration.
func (s *Server) Analyze(uri, languageID, text string, version int) *Document {
	doc := NewDocument(uri, languageID, text, version, s.Config().AnalysisOptions())
	s.documents.Set(uri, doc)
	return doc
}

// Reanalyze analyzes every open document again, after a configuration
// change. It returns the new documents.
func (s *Server) Reanalyze() []*Document {
	opts := s.Config().AnalysisOptions()
	var out []*Document
	for _, uri := range s.documents.List() {
		old, ok := s.documents.Get(uri)
		if !ok {
			continue
		}
		doc := NewDocument(old.URI, old.LanguageID, old.Text, old.Version, opts)
		s.documents.Set(uri, doc)
		out = append(out, doc)
	}
	return out
}

// SetWorkspaceFolders sets the workspace folders.
func (s *Server) SetWorkspaceFolders(folders []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaceFolders = folders
}

// GetWorkspaceFolders returns the workspace folders.
func (s *Server) GetWorkspaceFolders() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workspaceFolders
}

// SetClientCapabilities sets the client's capabilities.
func (s *Server) SetClientCapabilities(capabilities *protocol.ClientCapabilities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientCapabilities = capabilities
}

// GetClientCapabilities returns the client's capabilities.
func (s *Server) GetClientCapabilities() *protocol.ClientCapabilities {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientCapabilities
}

// SupportsHierarchicalSymbols reports whether the client accepts
// DocumentSymbol results rather than SymbolInformation.
func (s *Server) SupportsHierarchicalSymbols() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	caps := s.clientCapabilities
	if caps == nil || caps.TextDocument == nil || caps.TextDocument.DocumentSymbol == nil {
		return false
	}
	support := caps.TextDocument.DocumentSymbol.HierarchicalDocumentSymbolSupport
	return support != nil && *support
}

// SupportsDocumentChanges reports whether workspace edits may use
// documentChanges with versioned documents.
func (s *Server) SupportsDocumentChanges() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	caps := s.clientCapabilities
	if caps == nil || caps.Workspace == nil || caps.Workspace.WorkspaceEdit == nil {
		return false
	}
	support := caps.Workspace.WorkspaceEdit.DocumentChanges
	return support != nil && *support
}

// SemanticTokensLegend returns the semantic tokens legend.
// The legend is immutable and shared across all requests.
func (s *Server) SemanticTokensLegend() *analysis.SemanticTokensLegend {
	return s.semanticTokensLegend
}
