package rag

// Answer is a question-answering response from the RAG service.
type Answer struct {
	Answer     string   `json:"answer"`
	Confidence string   `json:"confidence,omitempty"`
	Sources    []Source `json:"sources,omitempty"`
}

// Source is one supporting passage behind an answer.
type Source struct {
	Page       *int    `json:"page,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
	Text       string  `json:"text,omitempty"`
}

// Document is a document summary as reported by the RAG service.
type Document struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	Description string `json:"description,omitempty"`
	PageCount   *int   `json:"page_count,omitempty"`
}

// Metadata is the optional sidecar sent with an upload.
type Metadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// IsZero reports whether no metadata fields are set.
func (m Metadata) IsZero() bool {
	return m.Title == "" && m.Description == ""
}

// UploadResult is the acknowledgement returned for an upload.
type UploadResult struct {
	DocumentID    string `json:"document_id"`
	Status        string `json:"status"`
	Title         string `json:"title,omitempty"`
	ChunksCreated *int   `json:"chunks_created,omitempty"`
}
