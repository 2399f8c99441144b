package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme prefixes every Quarry resource URI.
const uriScheme = "quarry://"

// corpusInfo is the JSON shape of one corpus in the corpora resource.
type corpusInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// documentInfo is the JSON shape of one document in a corpus listing.
type documentInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// registerResources wires the browse resources: the corpora list, the
// per-corpus document listing, and per-document canonical text.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "corpora",
		Name:        "corpora",
		Description: "List of all configured corpora",
		MIMEType:    "application/json",
	}, s.handleCorporaResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "corpora/{corpusId}/documents",
		Name:        "corpus-documents",
		Description: "Documents processed from a specific corpus",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Canonical text of a specific document",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// resourceResult wraps one text payload in the MCP read-resource
// envelope.
func resourceResult(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}

// handleCorporaResource serves the corpora list. Without a corpus port
// the list is empty rather than an error, so clients can still browse.
func (s *Server) handleCorporaResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Corpus == nil {
		return resourceResult(req.Params.URI, "application/json", "[]"), nil
	}

	corpora, err := s.ports.Corpus.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing corpora: %w", err)
	}

	infos := make([]corpusInfo, len(corpora))
	for i := range corpora {
		infos[i] = corpusInfo{
			ID:   corpora[i].ID,
			Name: corpora[i].Name,
			Path: corpora[i].RootPath,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling corpora: %w", err)
	}
	return resourceResult(req.Params.URI, "application/json", string(data)), nil
}

// handleDocumentsResource serves the document listing for one corpus.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	corpusID := extractCorpusID(req.Params.URI)
	if corpusID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Document.ListByCorpus(ctx, corpusID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	infos := make([]documentInfo, len(docs))
	for i := range docs {
		infos[i] = documentInfo{
			ID:    docs[i].ID,
			Title: docs[i].Title,
			Path:  docs[i].Path,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}
	return resourceResult(req.Params.URI, "application/json", string(data)), nil
}

// handleDocumentContentResource serves the canonical text assembled from
// a document's chunks.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Document.GetContent(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("getting document content: %w", err)
	}
	return resourceResult(req.Params.URI, "text/plain", content), nil
}

// extractCorpusID pulls the corpus ID out of a
// quarry://corpora/{corpusId}/documents URI, or "" when the URI does not
// match.
func extractCorpusID(uri string) string {
	rest, ok := strings.CutPrefix(uri, uriScheme+"corpora/")
	if !ok {
		return ""
	}
	id, ok := strings.CutSuffix(rest, "/documents")
	if !ok {
		return ""
	}
	return id
}

// extractDocumentID pulls the document ID out of a
// quarry://documents/{documentId} URI, or "" when the URI does not match.
func extractDocumentID(uri string) string {
	id, ok := strings.CutPrefix(uri, uriScheme+"documents/")
	if !ok {
		return ""
	}
	return id
}
