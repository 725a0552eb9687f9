package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// URIScheme is the custom URI scheme for Redliner resources.
	uriScheme = "redliner://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the recent list.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Recently opened documents, newest first",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for a document's annotations.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/annotations",
		Name:        "document-annotations",
		Description: "Annotations of a specific document",
		MIMEType:    "application/json",
	}, s.handleAnnotationsResource)
}

// handleDocumentsResource returns the recent document list.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs, err := s.ports.Document.Recent(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	infos := make([]DocumentOutput, len(docs))
	for i := range docs {
		infos[i] = documentOutput(&docs[i].Document, docs[i].Exists)
	}

	return jsonResult(req.Params.URI, infos, "documents")
}

// handleAnnotationsResource returns the annotations of one document.
func (s *Server) handleAnnotationsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract documentId from URI: redliner://documents/{documentId}/annotations
	docID, ok := extractDocumentID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	if _, err := s.ports.Document.Get(ctx, docID); err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	annotations, err := s.ports.Annotation.ListForDocument(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("listing annotations: %w", err)
	}

	infos := make([]AnnotationOutput, len(annotations))
	for i := range annotations {
		infos[i] = annotationOutput(&annotations[i])
	}

	return jsonResult(req.Params.URI, infos, "annotations")
}

func jsonResult(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like
// redliner://documents/{documentId}/annotations.
func extractDocumentID(uri string) (int64, bool) {
	const prefix = uriScheme + "documents/"
	const suffix = "/annotations"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return 0, false
	}

	raw := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
