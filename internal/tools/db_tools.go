package tools

import (
	"context"
	"fmt"

	"github.com/ragstack/ragdb-mcp/internal/format"
	"github.com/ragstack/ragdb-mcp/internal/validate"
	"github.com/ragstack/ragdb-mcp/pkg/mcp"
)

const (
	defaultDocumentLimit = 10
	maxDocumentLimit     = 1000
	maxDisplayRecords    = 20
)

func (d *Dispatcher) registerDatabaseTools() {
	d.registry.Register(mcp.ToolDefinition{
		Name:        "query_database",
		Description: "Execute a read-only SQL query against the PostgreSQL database. Only SELECT statements are allowed.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "SQL SELECT query to execute",
				},
			},
			"required": []string{"query"},
		},
	}, d.queryDatabase)

	d.registry.Register(mcp.ToolDefinition{
		Name:        "get_documents_from_db",
		Description: "List documents stored in the database, optionally filtered by user.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of documents to return (default 10, max 1000)",
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "Filter documents by owner user id",
				},
			},
		},
	}, d.getDocumentsFromDB)

	d.registry.Register(mcp.ToolDefinition{
		Name:        "get_user_info",
		Description: "Fetch a user record by id.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User id to look up",
				},
			},
			"required": []string{"user_id"},
		},
	}, d.getUserInfo)
}

func (d *Dispatcher) queryDatabase(ctx context.Context, args map[string]interface{}) (string, error) {
	query, argErr := requiredString("query_database", args, "query")
	if argErr != nil {
		return "", argErr
	}
	if err := validate.SQLQuery(query); err != nil {
		return "", err
	}

	rs, err := d.store.ExecuteSelect(ctx, query)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Query executed successfully. Found %d rows.\n\n%s",
		rs.Len(), format.Rows(rs, maxDisplayRecords)), nil
}

func (d *Dispatcher) getDocumentsFromDB(ctx context.Context, args map[string]interface{}) (string, error) {
	limit := defaultDocumentLimit
	if raw, present, argErr := optionalNumber("get_documents_from_db", args, "limit"); argErr != nil {
		return "", argErr
	} else if present {
		bounded, err := validate.Limit(raw, maxDocumentLimit)
		if err != nil {
			return "", err
		}
		limit = bounded
	}

	userID, argErr := optionalString("get_documents_from_db", args, "user_id")
	if argErr != nil {
		return "", argErr
	}

	rs, err := d.store.GetDocuments(ctx, limit, userID)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Found %d documents:\n\n%s",
		rs.Len(), format.Rows(rs, maxDisplayRecords)), nil
}

func (d *Dispatcher) getUserInfo(ctx context.Context, args map[string]interface{}) (string, error) {
	userID, argErr := requiredString("get_user_info", args, "user_id")
	if argErr != nil {
		return "", argErr
	}

	rs, err := d.store.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if rs.Len() == 0 {
		// Absence is an answer, not a failure.
		return fmt.Sprintf("User not found: %s", userID), nil
	}

	return fmt.Sprintf("User information:\n\n%s", format.Rows(rs, 0)), nil
}
