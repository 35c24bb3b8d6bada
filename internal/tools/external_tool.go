package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ragstack/ragdb-mcp/internal/external"
	"github.com/ragstack/ragdb-mcp/pkg/mcp"
)

var allowedHTTPMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"DELETE": true,
}

func (d *Dispatcher) registerExternalTools() {
	d.registry.Register(mcp.ToolDefinition{
		Name:        "call_external_api",
		Description: "Call an external HTTP API and return the JSON response.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Full URL of the API endpoint",
				},
				"method": map[string]interface{}{
					"type":        "string",
					"description": "HTTP method: GET, POST, PUT or DELETE (default GET)",
				},
				"headers": map[string]interface{}{
					"type":        "object",
					"description": "Extra request headers",
				},
				"params": map[string]interface{}{
					"type":        "object",
					"description": "Query string parameters",
				},
				"json_data": map[string]interface{}{
					"type":        "object",
					"description": "JSON request body",
				},
			},
			"required": []string{"url"},
		},
	}, d.callExternalAPI)
}

func (d *Dispatcher) callExternalAPI(ctx context.Context, args map[string]interface{}) (string, error) {
	url, argErr := requiredString("call_external_api", args, "url")
	if argErr != nil {
		return "", argErr
	}

	method, argErr := optionalString("call_external_api", args, "method")
	if argErr != nil {
		return "", argErr
	}
	if method == "" {
		method = "GET"
	}
	if !allowedHTTPMethods[method] {
		return "", newError("call_external_api", KindInvalidInput,
			"unsupported HTTP method: %s", method)
	}

	headers, argErr := optionalStringMap("call_external_api", args, "headers")
	if argErr != nil {
		return "", argErr
	}
	params, argErr := optionalStringMap("call_external_api", args, "params")
	if argErr != nil {
		return "", argErr
	}

	var body interface{}
	if raw, ok := args["json_data"]; ok && raw != nil {
		body = raw
	}

	result, err := d.http.Call(ctx, external.Request{
		URL:     url,
		Method:  method,
		Headers: headers,
		Params:  params,
		Body:    body,
	})
	if err != nil {
		return "", err
	}

	rendered, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render API response: %w", err)
	}
	return fmt.Sprintf("API call successful!\n\nResponse:\n%s", rendered), nil
}
