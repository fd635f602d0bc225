package mcpserver_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/structviz/config"
	"github.com/katalvlaran/structviz/mcpserver"
	"github.com/katalvlaran/structviz/session"
)

func connect(t *testing.T) *mcpsdk.ClientSession {
	t.Helper()
	cfg := config.Default()
	cfg.Animation = config.AnimationConfig{}
	sess, err := session.New(cfg)
	require.NoError(t, err)
	srv := mcpserver.NewServer(mcpserver.Deps{Session: sess})

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	done := make(chan error, 1)
	go func() { done <- srv.RunWithTransport(ctx, serverTransport) }()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = cs.Close()
		cancel()
		<-done
	})

	return cs
}

func call(t *testing.T, cs *mcpsdk.ClientSession, name string, args map[string]any) *mcpsdk.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcpsdk.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)

	return res
}

func text(t *testing.T, res *mcpsdk.CallToolResult) string {
	t.Helper()
	tc, ok := res.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)

	return tc.Text
}

func TestToolsAreListed(t *testing.T) {
	cs := connect(t)
	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		assert.NotNil(t, tool.InputSchema, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		mcpserver.ToolNameStructures, mcpserver.ToolNameApply, mcpserver.ToolNameView,
		mcpserver.ToolNameHistory, mcpserver.ToolNameDescribe, mcpserver.ToolNameComplexity,
	}, names)
}

func TestApplyThenUndo(t *testing.T) {
	cs := connect(t)

	res := call(t, cs, mcpserver.ToolNameApply, map[string]any{
		"structure": "dsu", "op": "union", "args": []string{"1", "2"},
	})
	require.False(t, res.IsError, text(t, res))
	var out session.Outcome
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Equal(t, true, out.Result)
	assert.True(t, out.CanUndo)

	res = call(t, cs, mcpserver.ToolNameHistory, map[string]any{"structure": "dsu", "direction": "undo"})
	require.False(t, res.IsError, text(t, res))
	assert.Contains(t, text(t, res), `"moved": true`)
}

func TestToolErrors(t *testing.T) {
	cs := connect(t)

	res := call(t, cs, mcpserver.ToolNameView, map[string]any{"structure": "skiplist"})
	assert.True(t, res.IsError)

	res = call(t, cs, mcpserver.ToolNameHistory, map[string]any{"structure": "heap", "direction": "sideways"})
	assert.True(t, res.IsError)

	res = call(t, cs, mcpserver.ToolNameComplexity, map[string]any{"n": 0})
	assert.True(t, res.IsError)
}

func TestDescribeWithoutKeyFallsBack(t *testing.T) {
	cs := connect(t)
	res := call(t, cs, mcpserver.ToolNameDescribe, map[string]any{"structure": "trie"})
	require.False(t, res.IsError)
	assert.Contains(t, text(t, res), "description")
}
