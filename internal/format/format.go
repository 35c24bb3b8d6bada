// Package format renders typed service results as display text. All
// functions are deterministic and side-effect free; given the same
// value they produce the same text.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/ragstack/ragdb-mcp/internal/database"
	"github.com/ragstack/ragdb-mcp/internal/rag"
)

const (
	timestampLayout  = "2006-01-02 15:04:05"
	excerptMaxLength = 150
)

// Rows renders a row set as numbered record blocks. maxRecords limits
// how many rows are rendered; zero means no limit. When truncated, a
// footer notes how many of the total were shown.
func Rows(rs *database.RowSet, maxRecords int) string {
	if rs.Len() == 0 {
		return "No results found"
	}

	display := rs.Rows
	if maxRecords > 0 && len(display) > maxRecords {
		display = display[:maxRecords]
	}

	var b strings.Builder
	for i, row := range display {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\n--- Record %d ---", i+1)
		for _, col := range rs.Columns {
			fmt.Fprintf(&b, "\n%s: %s", col, Value(row[col]))
		}
	}

	if len(display) < len(rs.Rows) {
		fmt.Fprintf(&b, "\n\n(Showing %d of %d total records)", len(display), len(rs.Rows))
	}

	return b.String()
}

// Answer renders a RAG answer with its confidence and sources.
func Answer(ans *rag.Answer) string {
	confidence := ans.Confidence
	if confidence == "" {
		confidence = "unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Answer: %s\n\n", ans.Answer)
	fmt.Fprintf(&b, "Confidence: %s\n\n", confidence)

	if len(ans.Sources) > 0 {
		b.WriteString("Sources:\n")
		for i, src := range ans.Sources {
			b.WriteString(source(src, i+1))
		}
	}

	return b.String()
}

// source renders one numbered source entry.
func source(src rag.Source, index int) string {
	page := "unknown"
	if src.Page != nil {
		page = fmt.Sprintf("%d", *src.Page)
	}

	// The excerpt cap counts characters, not bytes, so multibyte text
	// is never cut mid-rune.
	excerpt := src.Text
	if runes := []rune(excerpt); len(runes) > excerptMaxLength {
		excerpt = string(runes[:excerptMaxLength]) + "..."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%d. Page %s", index, page)
	if src.Similarity != 0 {
		fmt.Fprintf(&b, " (relevance: %.2f%%)", src.Similarity*100)
	}
	fmt.Fprintf(&b, "\n   %s\n", excerpt)
	return b.String()
}

// DocumentList renders documents as a count header and numbered blocks.
func DocumentList(documents []rag.Document) string {
	if len(documents) == 0 {
		return "No documents found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d document(s):\n\n", len(documents))
	for i, doc := range documents {
		fmt.Fprintf(&b, "%d. %s\n", i+1, titleOrFallback(doc.Title))
		b.WriteString(documentDetails(doc))
		b.WriteString("\n")
	}

	return b.String()
}

// Document renders a single document in full.
func Document(doc *rag.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", titleOrFallback(doc.Title))
	b.WriteString(documentDetails(*doc))
	return b.String()
}

func documentDetails(doc rag.Document) string {
	id := doc.ID
	if id == "" {
		id = "unknown"
	}
	created := doc.CreatedAt
	if created == "" {
		created = "unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "   ID: %s\n", id)
	fmt.Fprintf(&b, "   Created: %s\n", created)
	if doc.Description != "" {
		fmt.Fprintf(&b, "   Description: %s\n", doc.Description)
	}
	if doc.PageCount != nil {
		fmt.Fprintf(&b, "   Pages: %d\n", *doc.PageCount)
	}
	return b.String()
}

func titleOrFallback(title string) string {
	if title == "" {
		return "Untitled"
	}
	return title
}

// UploadResult renders an upload acknowledgement.
func UploadResult(result *rag.UploadResult, filePath string) string {
	documentID := result.DocumentID
	if documentID == "" {
		documentID = "unknown"
	}
	status := result.Status
	if status == "" {
		status = "unknown"
	}

	var b strings.Builder
	b.WriteString("PDF uploaded successfully!\n")
	fmt.Fprintf(&b, "File: %s\n", filePath)
	fmt.Fprintf(&b, "Document ID: %s\n", documentID)
	fmt.Fprintf(&b, "Status: %s\n", status)
	if result.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", result.Title)
	}
	if result.ChunksCreated != nil {
		fmt.Fprintf(&b, "Chunks created: %d\n", *result.ChunksCreated)
	}

	return b.String()
}

// Error renders the uniform error envelope.
func Error(toolName, kind, message string) string {
	return fmt.Sprintf("Error executing %s: [%s] %s", toolName, kind, message)
}

// Value renders a single scalar for display. NULL stands in for absent
// values, timestamps use a fixed layout, and composites fall back to
// their canonical string form.
func Value(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return v.Format(timestampLayout)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
