package mcp

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Transport handles MCP communication over a byte stream using
// Content-Length framed JSON-RPC messages.
type Transport struct {
	in  *bufio.Reader
	out io.Writer
	err io.Writer
}

// NewStdioTransport creates a transport over the process stdio.
func NewStdioTransport() *Transport {
	return NewTransport(os.Stdin, os.Stdout, os.Stderr)
}

// NewTransport creates a transport over arbitrary streams.
func NewTransport(in io.Reader, out, errOut io.Writer) *Transport {
	return &Transport{
		in:  bufio.NewReader(in),
		out: out,
		err: errOut,
	}
}

// ReadMessage reads one framed JSON-RPC request.
func (t *Transport) ReadMessage() (*JSONRPCRequest, error) {
	var contentLength int
	for {
		line, err := t.in.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}

		if line == "\r\n" || line == "\n" {
			break
		}

		if _, err := fmt.Sscanf(line, "Content-Length: %d", &contentLength); err == nil {
			continue
		}
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(t.in, body); err != nil {
		return nil, fmt.Errorf("failed to read message body: %w", err)
	}

	return ParseRequest(body)
}

// WriteMessage writes one framed JSON-RPC response.
func (t *Transport) WriteMessage(resp *JSONRPCResponse) error {
	data, err := SerializeResponse(resp)
	if err != nil {
		return fmt.Errorf("failed to serialize response: %w", err)
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(data))
	if _, err := t.out.Write([]byte(header)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if _, err := t.out.Write(data); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}

	return nil
}

// WriteError reports a transport-level error on the side channel.
func (t *Transport) WriteError(err error) {
	fmt.Fprintf(t.err, "Error: %v\n", err)
}
