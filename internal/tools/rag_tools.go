package tools

import (
	"context"
	"fmt"

	"github.com/ragstack/ragdb-mcp/internal/format"
	"github.com/ragstack/ragdb-mcp/internal/rag"
	"github.com/ragstack/ragdb-mcp/internal/validate"
	"github.com/ragstack/ragdb-mcp/pkg/mcp"
)

const maxQuestionLength = 1000

var pdfExtensions = []string{".pdf"}

func (d *Dispatcher) registerRAGTools() {
	d.registry.Register(mcp.ToolDefinition{
		Name:        "ask_rag",
		Description: "Ask a question about the ingested documents. Optionally scope the question to a single document.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to ask (max 1000 characters)",
				},
				"document_id": map[string]interface{}{
					"type":        "string",
					"description": "Restrict the question to this document",
				},
			},
			"required": []string{"question"},
		},
	}, d.askRAG)

	d.registry.Register(mcp.ToolDefinition{
		Name:        "list_documents",
		Description: "List all documents available in the RAG service.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	}, d.listDocuments)

	d.registry.Register(mcp.ToolDefinition{
		Name:        "upload_pdf",
		Description: "Upload a local PDF file to the RAG service for ingestion.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"file_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the PDF file on the server host",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Optional document title",
				},
				"description": map[string]interface{}{
					"type":        "string",
					"description": "Optional document description",
				},
			},
			"required": []string{"file_path"},
		},
	}, d.uploadPDF)

	d.registry.Register(mcp.ToolDefinition{
		Name:        "get_document",
		Description: "Fetch metadata for a single document from the RAG service.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"document_id": map[string]interface{}{
					"type":        "string",
					"description": "Document id to look up",
				},
			},
			"required": []string{"document_id"},
		},
	}, d.getDocument)
}

func (d *Dispatcher) askRAG(ctx context.Context, args map[string]interface{}) (string, error) {
	question, argErr := requiredString("ask_rag", args, "question")
	if argErr != nil {
		return "", argErr
	}
	if err := validate.Question(question, maxQuestionLength); err != nil {
		return "", err
	}

	documentID, argErr := optionalString("ask_rag", args, "document_id")
	if argErr != nil {
		return "", argErr
	}
	if documentID != "" {
		if err := validate.DocumentID(documentID); err != nil {
			return "", err
		}
	}

	answer, err := d.rag.Ask(ctx, question, documentID)
	if err != nil {
		return "", err
	}
	return format.Answer(answer), nil
}

func (d *Dispatcher) listDocuments(ctx context.Context, args map[string]interface{}) (string, error) {
	documents, err := d.rag.List(ctx)
	if err != nil {
		return "", err
	}
	return format.DocumentList(documents), nil
}

func (d *Dispatcher) uploadPDF(ctx context.Context, args map[string]interface{}) (string, error) {
	filePath, argErr := requiredString("upload_pdf", args, "file_path")
	if argErr != nil {
		return "", argErr
	}
	if err := validate.FilePath(filePath, pdfExtensions); err != nil {
		return "", err
	}

	title, argErr := optionalString("upload_pdf", args, "title")
	if argErr != nil {
		return "", argErr
	}
	description, argErr := optionalString("upload_pdf", args, "description")
	if argErr != nil {
		return "", argErr
	}

	result, err := d.rag.Upload(ctx, filePath, rag.Metadata{Title: title, Description: description})
	if err != nil {
		return "", err
	}
	return format.UploadResult(result, filePath), nil
}

func (d *Dispatcher) getDocument(ctx context.Context, args map[string]interface{}) (string, error) {
	documentID, argErr := requiredString("get_document", args, "document_id")
	if argErr != nil {
		return "", argErr
	}
	if err := validate.DocumentID(documentID); err != nil {
		return "", err
	}

	doc, err := d.rag.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}
	if doc == nil {
		return fmt.Sprintf("Document not found: %s", documentID), nil
	}
	return format.Document(doc), nil
}
