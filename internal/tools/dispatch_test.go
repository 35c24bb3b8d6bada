package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ragstack/ragdb-mcp/internal/config"
	"github.com/ragstack/ragdb-mcp/internal/database"
	"github.com/ragstack/ragdb-mcp/internal/external"
	"github.com/ragstack/ragdb-mcp/internal/logging"
	"github.com/ragstack/ragdb-mcp/internal/rag"
)

type fakeStore struct {
	selectResult *database.RowSet
	selectErr    error
	documents    *database.RowSet
	user         *database.RowSet

	lastQuery  string
	lastLimit  int
	lastUserID string
	calls      int
}

func (f *fakeStore) ExecuteSelect(ctx context.Context, query string, args ...interface{}) (*database.RowSet, error) {
	f.calls++
	f.lastQuery = query
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.selectResult, nil
}

func (f *fakeStore) GetDocuments(ctx context.Context, limit int, userID string) (*database.RowSet, error) {
	f.calls++
	f.lastLimit = limit
	f.lastUserID = userID
	return f.documents, nil
}

func (f *fakeStore) GetUser(ctx context.Context, userID string) (*database.RowSet, error) {
	f.calls++
	f.lastUserID = userID
	return f.user, nil
}

type fakeRAG struct {
	answer    *rag.Answer
	askErr    error
	documents []rag.Document
	listErr   error
	upload    *rag.UploadResult
	document  *rag.Document

	calls int
}

func (f *fakeRAG) Ask(ctx context.Context, question, documentID string) (*rag.Answer, error) {
	f.calls++
	if f.askErr != nil {
		return nil, f.askErr
	}
	return f.answer, nil
}

func (f *fakeRAG) Upload(ctx context.Context, filePath string, meta rag.Metadata) (*rag.UploadResult, error) {
	f.calls++
	return f.upload, nil
}

func (f *fakeRAG) List(ctx context.Context) ([]rag.Document, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.documents, nil
}

func (f *fakeRAG) GetDocument(ctx context.Context, documentID string) (*rag.Document, error) {
	f.calls++
	return f.document, nil
}

type fakeCaller struct {
	result interface{}
	err    error
}

func (f *fakeCaller) Call(ctx context.Context, req external.Request) (interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testLogger() *logging.Logger {
	return logging.NewLogger(&config.LoggingConfig{Level: "error", Format: "json"})
}

func newTestDispatcher(store *fakeStore, ragClient *fakeRAG, caller *fakeCaller) *Dispatcher {
	if store == nil {
		store = &fakeStore{}
	}
	if ragClient == nil {
		ragClient = &fakeRAG{}
	}
	if caller == nil {
		caller = &fakeCaller{}
	}
	return NewDispatcher(store, ragClient, caller, testLogger())
}

func TestListContainsAllTools(t *testing.T) {
	d := newTestDispatcher(nil, nil, nil)

	want := []string{
		"query_database", "get_documents_from_db", "get_user_info",
		"ask_rag", "list_documents", "upload_pdf", "get_document",
		"call_external_api",
	}

	defs := d.List()
	names := make(map[string]bool, len(defs))
	for _, def := range defs {
		names[def.Name] = true
		if def.Description == "" {
			t.Errorf("tool %s has no description", def.Name)
		}
		if def.InputSchema == nil {
			t.Errorf("tool %s has no input schema", def.Name)
		}
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("tool %s not registered", name)
		}
	}
	if len(defs) != len(want) {
		t.Errorf("registered %d tools, want %d", len(defs), len(want))
	}
}

func TestListIsStable(t *testing.T) {
	d := newTestDispatcher(nil, nil, nil)

	first := d.List()
	for i := 0; i < 20; i++ {
		next := d.List()
		if len(next) != len(first) {
			t.Fatalf("List() length changed: %d vs %d", len(next), len(first))
		}
		for j := range next {
			if next[j].Name != first[j].Name {
				t.Fatalf("List() order changed at %d: %s vs %s", j, next[j].Name, first[j].Name)
			}
		}
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	d := newTestDispatcher(nil, nil, nil)

	text, isError := d.Dispatch(context.Background(), "no_such_tool", nil)
	if !isError {
		t.Fatal("Dispatch(unknown tool) should report an error")
	}
	want := "Error executing no_such_tool: [UnknownTool] unknown tool: no_such_tool"
	if text != want {
		t.Errorf("Dispatch() = %q, want %q", text, want)
	}
}

func TestDispatchMissingArgument(t *testing.T) {
	store := &fakeStore{}
	d := newTestDispatcher(store, nil, nil)

	text, isError := d.Dispatch(context.Background(), "query_database", map[string]interface{}{})
	if !isError {
		t.Fatal("Dispatch should report an error for a missing argument")
	}
	if !strings.Contains(text, "[MissingArgument]") || !strings.Contains(text, "query") {
		t.Errorf("unexpected envelope: %q", text)
	}
	if store.calls != 0 {
		t.Errorf("store was called %d times; rejection must happen first", store.calls)
	}
}

func TestDispatchRejectsWriteQueryBeforeStore(t *testing.T) {
	store := &fakeStore{}
	d := newTestDispatcher(store, nil, nil)

	text, isError := d.Dispatch(context.Background(), "query_database", map[string]interface{}{
		"query": "UPDATE users SET role = 'admin'",
	})
	if !isError {
		t.Fatal("write query must be rejected")
	}
	if !strings.HasPrefix(text, "Error executing query_database: [InvalidInput]") {
		t.Errorf("unexpected envelope: %q", text)
	}
	if store.calls != 0 {
		t.Errorf("store was called %d times for a rejected query", store.calls)
	}
}

func TestDispatchQueryDatabase(t *testing.T) {
	store := &fakeStore{
		selectResult: &database.RowSet{
			Columns: []string{"id", "title"},
			Rows: []map[string]interface{}{
				{"id": int64(1), "title": "Handbook"},
			},
		},
	}
	d := newTestDispatcher(store, nil, nil)

	text, isError := d.Dispatch(context.Background(), "query_database", map[string]interface{}{
		"query": "SELECT id, title FROM documents",
	})
	if isError {
		t.Fatalf("unexpected error envelope: %q", text)
	}
	if !strings.HasPrefix(text, "Query executed successfully. Found 1 rows.\n\n") {
		t.Errorf("missing header: %q", text)
	}
	if !strings.Contains(text, "--- Record 1 ---") {
		t.Errorf("missing record block: %q", text)
	}
	if store.lastQuery != "SELECT id, title FROM documents" {
		t.Errorf("store received %q", store.lastQuery)
	}
}

func TestDispatchQueryDatabaseServiceError(t *testing.T) {
	store := &fakeStore{selectErr: errors.New("connection refused")}
	d := newTestDispatcher(store, nil, nil)

	text, isError := d.Dispatch(context.Background(), "query_database", map[string]interface{}{
		"query": "SELECT 1",
	})
	if !isError {
		t.Fatal("service failure must produce an error envelope")
	}
	if !strings.Contains(text, "[ServiceError] connection refused") {
		t.Errorf("unexpected envelope: %q", text)
	}
}

func TestDispatchGetDocumentsDefaults(t *testing.T) {
	store := &fakeStore{documents: &database.RowSet{Columns: []string{"id"}}}
	d := newTestDispatcher(store, nil, nil)

	text, isError := d.Dispatch(context.Background(), "get_documents_from_db", nil)
	if isError {
		t.Fatalf("unexpected error envelope: %q", text)
	}
	if store.lastLimit != 10 {
		t.Errorf("default limit = %d, want 10", store.lastLimit)
	}
	if store.lastUserID != "" {
		t.Errorf("default user filter = %q, want empty", store.lastUserID)
	}
	// An empty result still renders through the row formatter under
	// the count header, same as every other row-backed tool.
	if text != "Found 0 documents:\n\nNo results found" {
		t.Errorf("Dispatch() = %q", text)
	}
}

func TestDispatchGetDocumentsInvalidLimit(t *testing.T) {
	store := &fakeStore{}
	d := newTestDispatcher(store, nil, nil)

	for _, limit := range []float64{0, -3, 1001, 2.5} {
		text, isError := d.Dispatch(context.Background(), "get_documents_from_db", map[string]interface{}{
			"limit": limit,
		})
		if !isError {
			t.Errorf("limit %v accepted: %q", limit, text)
		}
		if !strings.Contains(text, "[InvalidInput]") {
			t.Errorf("limit %v envelope: %q", limit, text)
		}
	}
	if store.calls != 0 {
		t.Errorf("store called %d times for rejected limits", store.calls)
	}
}

func TestDispatchUserNotFoundIsSuccess(t *testing.T) {
	store := &fakeStore{user: &database.RowSet{Columns: []string{"id"}}}
	d := newTestDispatcher(store, nil, nil)

	text, isError := d.Dispatch(context.Background(), "get_user_info", map[string]interface{}{
		"user_id": "u-404",
	})
	if isError {
		t.Fatalf("absent user must not be an error envelope: %q", text)
	}
	if text != "User not found: u-404" {
		t.Errorf("Dispatch() = %q", text)
	}
}

func TestDispatchGetUserInfo(t *testing.T) {
	store := &fakeStore{user: &database.RowSet{
		Columns: []string{"id", "email"},
		Rows: []map[string]interface{}{
			{"id": "u-1", "email": "ana@example.com"},
		},
	}}
	d := newTestDispatcher(store, nil, nil)

	text, isError := d.Dispatch(context.Background(), "get_user_info", map[string]interface{}{
		"user_id": "u-1",
	})
	if isError {
		t.Fatalf("unexpected error envelope: %q", text)
	}
	if !strings.HasPrefix(text, "User information:\n\n") {
		t.Errorf("missing header: %q", text)
	}
	if !strings.Contains(text, "email: ana@example.com") {
		t.Errorf("missing field: %q", text)
	}
}

func TestDispatchAskRAG(t *testing.T) {
	ragClient := &fakeRAG{answer: &rag.Answer{Answer: "42", Confidence: "high"}}
	d := newTestDispatcher(nil, ragClient, nil)

	text, isError := d.Dispatch(context.Background(), "ask_rag", map[string]interface{}{
		"question": "What is the answer?",
	})
	if isError {
		t.Fatalf("unexpected error envelope: %q", text)
	}
	if !strings.HasPrefix(text, "Answer: 42\n\n") {
		t.Errorf("Dispatch() = %q", text)
	}
}

func TestDispatchAskRAGRejectsLongQuestion(t *testing.T) {
	ragClient := &fakeRAG{}
	d := newTestDispatcher(nil, ragClient, nil)

	text, isError := d.Dispatch(context.Background(), "ask_rag", map[string]interface{}{
		"question": strings.Repeat("a", 1001),
	})
	if !isError {
		t.Fatal("overlong question must be rejected")
	}
	if !strings.Contains(text, "[InvalidInput]") {
		t.Errorf("unexpected envelope: %q", text)
	}
	if ragClient.calls != 0 {
		t.Errorf("RAG client called %d times for a rejected question", ragClient.calls)
	}
}

func TestDispatchAskRAGBadDocumentID(t *testing.T) {
	ragClient := &fakeRAG{}
	d := newTestDispatcher(nil, ragClient, nil)

	_, isError := d.Dispatch(context.Background(), "ask_rag", map[string]interface{}{
		"question":    "ok?",
		"document_id": "../../etc/passwd",
	})
	if !isError {
		t.Fatal("malformed document id must be rejected")
	}
	if ragClient.calls != 0 {
		t.Errorf("RAG client called %d times", ragClient.calls)
	}
}

func TestDispatchUploadRejectsNonPDFBeforeNetwork(t *testing.T) {
	ragClient := &fakeRAG{}
	d := newTestDispatcher(nil, ragClient, nil)

	text, isError := d.Dispatch(context.Background(), "upload_pdf", map[string]interface{}{
		"file_path": "/data/report.docx",
	})
	if !isError {
		t.Fatal("non-PDF path must be rejected")
	}
	if !strings.Contains(text, "[InvalidInput]") {
		t.Errorf("unexpected envelope: %q", text)
	}
	if ragClient.calls != 0 {
		t.Errorf("RAG client called %d times for a rejected path", ragClient.calls)
	}
}

func TestDispatchDocumentNotFoundIsSuccess(t *testing.T) {
	ragClient := &fakeRAG{document: nil}
	d := newTestDispatcher(nil, ragClient, nil)

	text, isError := d.Dispatch(context.Background(), "get_document", map[string]interface{}{
		"document_id": "doc-404",
	})
	if isError {
		t.Fatalf("absent document must not be an error envelope: %q", text)
	}
	if text != "Document not found: doc-404" {
		t.Errorf("Dispatch() = %q", text)
	}
}

func TestDispatchListDocuments(t *testing.T) {
	ragClient := &fakeRAG{documents: []rag.Document{{ID: "d1", Title: "One"}}}
	d := newTestDispatcher(nil, ragClient, nil)

	text, isError := d.Dispatch(context.Background(), "list_documents", nil)
	if isError {
		t.Fatalf("unexpected error envelope: %q", text)
	}
	if !strings.HasPrefix(text, "Found 1 document(s):\n\n") {
		t.Errorf("Dispatch() = %q", text)
	}
}

func TestDispatchExternalAPI(t *testing.T) {
	caller := &fakeCaller{result: map[string]interface{}{"ok": true}}
	d := newTestDispatcher(nil, nil, caller)

	text, isError := d.Dispatch(context.Background(), "call_external_api", map[string]interface{}{
		"url": "https://api.example.com/status",
	})
	if isError {
		t.Fatalf("unexpected error envelope: %q", text)
	}
	if !strings.HasPrefix(text, "API call successful!\n\nResponse:\n") {
		t.Errorf("Dispatch() = %q", text)
	}
	if !strings.Contains(text, `"ok": true`) {
		t.Errorf("missing rendered body: %q", text)
	}
}

func TestDispatchExternalAPIBadMethod(t *testing.T) {
	d := newTestDispatcher(nil, nil, &fakeCaller{})

	text, isError := d.Dispatch(context.Background(), "call_external_api", map[string]interface{}{
		"url":    "https://api.example.com",
		"method": "PATCH",
	})
	if !isError {
		t.Fatal("unsupported method must be rejected")
	}
	if !strings.Contains(text, "[InvalidInput]") || !strings.Contains(text, "PATCH") {
		t.Errorf("unexpected envelope: %q", text)
	}
}
