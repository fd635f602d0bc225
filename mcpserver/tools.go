package mcpserver

import (
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolNameStructures = "structviz_structures"
	ToolNameApply      = "structviz_apply"
	ToolNameView       = "structviz_view"
	ToolNameHistory    = "structviz_history"
	ToolNameDescribe   = "structviz_describe"
	ToolNameComplexity = "structviz_complexity"
)

const (
	structuresDescription = "List every data structure with its operations and argument names."
	applyDescription      = "Apply one operation to a data structure and return the step-by-step trace. " +
		"Invalid operations are reported as ignored, not as errors."
	viewDescription       = "Return the current state of a data structure and whether undo/redo are available."
	historyDescription    = "Undo or redo the last change to a data structure."
	describeDescription   = "Return a short description and complexity notes for a data structure."
	complexityDescription = "Return operation counts of each Big-O class for an input size n (1-50)."
)

// ErrBadDirection is returned by the history tool for anything but undo or redo.
var ErrBadDirection = errors.New("direction must be undo or redo")

// StructuresInput takes no arguments.
type StructuresInput struct{}

// ApplyInput is the input schema for structviz_apply.
type ApplyInput struct {
	Structure string   `json:"structure"      jsonschema:"structure id, e.g. heap or binary_search_tree"`
	Op        string   `json:"op"             jsonschema:"operation name, e.g. insert"`
	Args      []string `json:"args,omitempty" jsonschema:"operation arguments as strings"`
}

// ViewInput is the input schema for structviz_view and structviz_describe.
type ViewInput struct {
	Structure string `json:"structure" jsonschema:"structure id"`
}

// HistoryInput is the input schema for structviz_history.
type HistoryInput struct {
	Structure string `json:"structure" jsonschema:"structure id"`
	Direction string `json:"direction" jsonschema:"undo or redo"`
}

// ComplexityInput is the input schema for structviz_complexity.
type ComplexityInput struct {
	N int `json:"n" jsonschema:"input size between 1 and 50"`
}

// ToolOutput wraps every structured result.
type ToolOutput struct {
	Data any `json:"data"`
}

func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
		IsError: true,
	}, ToolOutput{}, nil
}

func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, ToolOutput{Data: value}, nil
}
