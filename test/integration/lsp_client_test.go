package integration_test

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var serverBinary string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "panda-lsp-test")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	serverBinary = filepath.Join(dir, "panda-language-server")

	// Build with -cover so integration runs count towards coverage (Go 1.20+)
	cmd := exec.Command("go", "build", "-cover", "-o", serverBinary, "./cmd/panda-language-server")
	cmd.Dir = filepath.Join("..", "..")
	if output, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build server: %v\n%s", err, output)
		os.RemoveAll(dir)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// LSPClient is a test client that communicates with an LSP server via stdio
type LSPClient struct {
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    io.ReadCloser
	reader    *bufio.Reader
	msgID     int
	responses map[int]chan json.RawMessage
	published map[string][]protocol.Diagnostic
	mu        sync.Mutex
	writeMu   sync.Mutex
	t         *testing.T
}

// NewLSPClient starts the server binary and connects to its stdio
func NewLSPClient(t *testing.T) *LSPClient {
	t.Helper()

	serverCmd := exec.Command(serverBinary, "--stdio")
	if coverDir := os.Getenv("GOCOVERDIR"); coverDir == "" {
		serverCmd.Env = append(os.Environ(), "GOCOVERDIR="+t.TempDir())
	}
	stdin, err := serverCmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := serverCmd.StdoutPipe()
	require.NoError(t, err)
	stderr, err := serverCmd.StderrPipe()
	require.NoError(t, err)

	require.NoError(t, serverCmd.Start())

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			t.Logf("[SERVER] %s", scanner.Text())
		}
	}()

	client := &LSPClient{
		cmd:       serverCmd,
		stdin:     stdin,
		stdout:    stdout,
		reader:    bufio.NewReader(stdout),
		responses: make(map[int]chan json.RawMessage),
		published: make(map[string][]protocol.Diagnostic),
		t:         t,
	}
	go client.readResponses()
	t.Cleanup(client.Close)

	return client
}

// Close shuts down the server
func (c *LSPClient) Close() {
	c.Shutdown()
	c.stdin.Close()
	c.stdout.Close()
	c.cmd.Wait()
}

func (c *LSPClient) sendRequest(method string, params any) int {
	c.mu.Lock()
	c.msgID++
	id := c.msgID
	c.responses[id] = make(chan json.RawMessage, 1)
	c.mu.Unlock()

	c.sendMessage(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	})
	return id
}

func (c *LSPClient) sendNotification(method string, params any) {
	c.sendMessage(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	})
}

func (c *LSPClient) sendMessage(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.t.Logf("Error marshaling message: %v", err)
		return
	}
	c.t.Logf("Sending: %s", data)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if _, err := fmt.Fprintf(c.stdin, "Content-Length: %d\r\n\r\n%s", len(data), data); err != nil {
		c.t.Logf("Error writing message: %v", err)
	}
}

func (c *LSPClient) waitForResponse(id int, timeout time.Duration) (json.RawMessage, error) {
	c.mu.Lock()
	ch, ok := c.responses[id]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no response channel for message ID %d", id)
	}

	select {
	case response := <-ch:
		return response, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("timeout waiting for response to message %d", id)
	}
}

// request sends method and decodes the result into out. A null result leaves
// out untouched.
func (c *LSPClient) request(method string, params, out any) error {
	id := c.sendRequest(method, params)
	response, err := c.waitForResponse(id, 5*time.Second)
	if err != nil {
		return err
	}
	if len(response) == 0 || string(response) == "null" || out == nil {
		return nil
	}
	return json.Unmarshal(response, out)
}

func (c *LSPClient) readResponses() {
	for {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			return // Connection closed
		}

		var contentLength int
		if _, err := fmt.Sscanf(line, "Content-Length: %d", &contentLength); err != nil {
			continue
		}
		c.reader.ReadString('\n')

		content := make([]byte, contentLength)
		if _, err := io.ReadFull(c.reader, content); err != nil {
			return
		}
		c.t.Logf("Received: %s", content)

		var message struct {
			ID     *int            `json:"id"`
			Method *string         `json:"method"`
			Params json.RawMessage `json:"params"`
			Result json.RawMessage `json:"result"`
			Error  json.RawMessage `json:"error"`
		}
		if err := json.Unmarshal(content, &message); err != nil {
			c.t.Logf("Error unmarshaling message: %v", err)
			continue
		}

		if message.Method != nil {
			c.handleServerMessage(*message.Method, message.ID, message.Params)
			continue
		}

		if message.ID != nil {
			c.mu.Lock()
			if ch, ok := c.responses[*message.ID]; ok {
				if message.Error != nil {
					c.t.Logf("Received error response for ID %d: %s", *message.ID, message.Error)
					ch <- message.Error
				} else {
					ch <- message.Result
				}
			}
			c.mu.Unlock()
		}
	}
}

// handleServerMessage records published diagnostics and answers server
// requests such as client/registerCapability with an empty result
func (c *LSPClient) handleServerMessage(method string, id *int, params json.RawMessage) {
	if method == protocol.ServerTextDocumentPublishDiagnostics {
		var p protocol.PublishDiagnosticsParams
		if err := json.Unmarshal(params, &p); err == nil {
			c.mu.Lock()
			c.published[p.URI] = p.Diagnostics
			c.mu.Unlock()
		}
	}
	if id != nil {
		msgID := *id
		go c.sendMessage(map[string]any{
			"jsonrpc": "2.0",
			"id":      msgID,
			"result":  nil,
		})
	}
}

// Published returns the last diagnostics the server pushed for uri
func (c *LSPClient) Published(uri string) ([]protocol.Diagnostic, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.published[uri]
	return d, ok
}

// Initialize runs the initialize handshake. pull declares support for
// textDocument/diagnostic.
func (c *LSPClient) Initialize(rootURI string, pull bool) (map[string]any, error) {
	textDocument := map[string]any{}
	if pull {
		textDocument["diagnostic"] = map[string]any{"dynamicRegistration": false}
	}
	params := map[string]any{
		"rootUri": rootURI,
		"capabilities": map[string]any{
			"textDocument": textDocument,
			"workspace": map[string]any{
				"didChangeWatchedFiles": map[string]any{"dynamicRegistration": true},
			},
		},
	}

	var result struct {
		Capabilities map[string]any `json:"capabilities"`
	}
	if err := c.request("initialize", params, &result); err != nil {
		return nil, err
	}
	c.sendNotification("initialized", map[string]any{})

	// The project loads and file watchers register after initialized
	time.Sleep(500 * time.Millisecond)

	return result.Capabilities, nil
}

// Shutdown sends the shutdown request and the exit notification
func (c *LSPClient) Shutdown() {
	id := c.sendRequest("shutdown", nil)
	c.waitForResponse(id, 2*time.Second)
	c.sendNotification("exit", nil)
}

// DidOpenTextDocument sends a didOpen notification
func (c *LSPClient) DidOpenTextDocument(uri, languageID, text string) {
	c.sendNotification("textDocument/didOpen", map[string]any{
		"textDocument": map[string]any{
			"uri":        uri,
			"languageId": languageID,
			"version":    1,
			"text":       text,
		},
	})
}

// DidChangeTextDocument replaces the whole document
func (c *LSPClient) DidChangeTextDocument(uri, text string, version int) {
	c.sendNotification("textDocument/didChange", map[string]any{
		"textDocument":   map[string]any{"uri": uri, "version": version},
		"contentChanges": []map[string]any{{"text": text}},
	})
}

// DidChangeConfiguration sends a didChangeConfiguration notification
func (c *LSPClient) DidChangeConfiguration(settings map[string]any) {
	c.sendNotification("workspace/didChangeConfiguration", map[string]any{"settings": settings})
}

func textDocumentPosition(uri string, line, character int) map[string]any {
	return map[string]any{
		"textDocument": map[string]any{"uri": uri},
		"position":     map[string]any{"line": line, "character": character},
	}
}

// Hover sends a hover request
func (c *LSPClient) Hover(uri string, line, character int) (*protocol.Hover, error) {
	var raw struct {
		Contents protocol.MarkupContent `json:"contents"`
		Range    *protocol.Range        `json:"range"`
	}
	id := c.sendRequest("textDocument/hover", textDocumentPosition(uri, line, character))
	response, err := c.waitForResponse(id, 2*time.Second)
	if err != nil || string(response) == "null" {
		return nil, err
	}
	if err := json.Unmarshal(response, &raw); err != nil {
		return nil, err
	}
	return &protocol.Hover{Contents: raw.Contents, Range: raw.Range}, nil
}

// Completion sends a completion request
func (c *LSPClient) Completion(uri string, line, character int) ([]protocol.CompletionItem, error) {
	var items []protocol.CompletionItem
	err := c.request("textDocument/completion", textDocumentPosition(uri, line, character), &items)
	return items, err
}

// Diagnostic sends a pull diagnostic request
func (c *LSPClient) Diagnostic(uri string) ([]protocol.Diagnostic, error) {
	var report struct {
		Kind  string                `json:"kind"`
		Items []protocol.Diagnostic `json:"items"`
	}
	err := c.request("textDocument/diagnostic", map[string]any{
		"textDocument": map[string]any{"uri": uri},
	}, &report)
	return report.Items, err
}

// CodeAction requests the actions for r
func (c *LSPClient) CodeAction(uri string, r protocol.Range) ([]protocol.CodeAction, error) {
	var actions []protocol.CodeAction
	err := c.request("textDocument/codeAction", map[string]any{
		"textDocument": map[string]any{"uri": uri},
		"range":        r,
		"context":      map[string]any{"diagnostics": []any{}},
	}, &actions)
	return actions, err
}

// InlayHint requests the hints for r
func (c *LSPClient) InlayHint(uri string, r protocol.Range) ([]map[string]any, error) {
	var hints []map[string]any
	err := c.request("textDocument/inlayHint", map[string]any{
		"textDocument": map[string]any{"uri": uri},
		"range":        r,
	}, &hints)
	return hints, err
}

// DocumentColor requests the color swatches of uri
func (c *LSPClient) DocumentColor(uri string) ([]protocol.ColorInformation, error) {
	var colors []protocol.ColorInformation
	err := c.request("textDocument/documentColor", map[string]any{
		"textDocument": map[string]any{"uri": uri},
	}, &colors)
	return colors, err
}
