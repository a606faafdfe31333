package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test input/output types
type testInput struct {
	Name  string `json:"name" jsonschema:"required,description=The name"`
	Count int    `json:"count,omitempty"`
}

type testOutput struct {
	Result string `json:"result"`
	Value  int    `json:"value"`
}

func TestNewTool(t *testing.T) {
	tests := []struct {
		name        string
		toolName    string
		description string
	}{
		{
			name:        "simple tool",
			toolName:    "test_tool",
			description: "A test tool",
		},
		{
			name:        "tool with long description",
			toolName:    "another_tool",
			description: "This is a much longer description that explains what the tool does in detail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, err := NewTool(tt.toolName, tt.description,
				func(ctx context.Context, in testInput) (testOutput, error) {
					return testOutput{Result: in.Name, Value: in.Count}, nil
				})

			require.NoError(t, err)
			assert.Equal(t, tt.toolName, tool.Name())
			assert.Equal(t, tt.description, tool.Description())
			assert.NotNil(t, tool.Parameters())
		})
	}
}

func TestTypedTool_Execute(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
		check   func(t *testing.T, result any)
	}{
		{
			name:    "full args",
			args:    map[string]any{"name": "test", "count": 42},
			wantErr: false,
			check: func(t *testing.T, result any) {
				out, ok := result.(testOutput)
				require.True(t, ok)
				assert.Equal(t, "test", out.Result)
				assert.Equal(t, 42, out.Value)
			},
		},
		{
			name:    "minimal args",
			args:    map[string]any{"name": "minimal"},
			wantErr: false,
			check: func(t *testing.T, result any) {
				out, ok := result.(testOutput)
				require.True(t, ok)
				assert.Equal(t, "minimal", out.Result)
				assert.Equal(t, 0, out.Value)
			},
		},
		{
			name:    "wrong type for field",
			args:    map[string]any{"name": "test", "count": "not a number"},
			wantErr: true,
		},
		{
			name:    "empty args",
			args:    map[string]any{},
			wantErr: false,
			check: func(t *testing.T, result any) {
				out, ok := result.(testOutput)
				require.True(t, ok)
				assert.Equal(t, "", out.Result)
			},
		},
		{
			name:    "nil args",
			args:    nil,
			wantErr: false,
			check: func(t *testing.T, result any) {
				out, ok := result.(testOutput)
				require.True(t, ok)
				assert.Equal(t, "", out.Result)
			},
		},
	}

	tool, err := NewTool("test", "test tool",
		func(ctx context.Context, in testInput) (testOutput, error) {
			return testOutput{Result: in.Name, Value: in.Count}, nil
		})
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			result, err := tool.Execute(ctx, tt.args)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, result)
			}
		})
	}
}

func TestTypedTool_Execute_FunctionError(t *testing.T) {
	expectedErr := errors.New("function error")

	tool, err := NewTool("error_tool", "tool that errors",
		func(ctx context.Context, in testInput) (testOutput, error) {
			return testOutput{}, expectedErr
		})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = tool.Execute(ctx, map[string]any{"name": "test"})
	assert.ErrorIs(t, err, expectedErr)
}

func TestTypedTool_TypedCall(t *testing.T) {
	tool, err := NewTool("typed_call_test", "test typed call",
		func(ctx context.Context, in testInput) (testOutput, error) {
			return testOutput{Result: in.Name + "_processed", Value: in.Count * 2}, nil
		})
	require.NoError(t, err)

	ctx := context.Background()
	result, err := tool.TypedCall(ctx, testInput{Name: "direct", Count: 5})

	require.NoError(t, err)
	assert.Equal(t, "direct_processed", result.Result)
	assert.Equal(t, 10, result.Value)
}

func TestTypedTool_Parameters_HasCorrectSchema(t *testing.T) {
	tool, err := NewTool("schema_test", "test schema",
		func(ctx context.Context, in testInput) (testOutput, error) {
			return testOutput{}, nil
		})
	require.NoError(t, err)

	params := tool.Parameters()
	require.NotNil(t, params)

	require.NotNil(t, params.Properties)
	_, hasName := params.Properties.Get("name")
	_, hasCount := params.Properties.Get("count")
	assert.True(t, hasName, "schema should have 'name' property")
	assert.True(t, hasCount, "schema should have 'count' property")
}

func TestMustNewTool(t *testing.T) {
	assert.NotPanics(t, func() {
		tool := MustNewTool("must_test", "test",
			func(ctx context.Context, in testInput) (testOutput, error) {
				return testOutput{}, nil
			})
		assert.NotNil(t, tool)
	})
}

func TestToolRegistry(t *testing.T) {
	t.Run("register and get single tool", func(t *testing.T) {
		registry := NewToolRegistry()
		tool := MustNewTool("tool1", "first tool",
			func(ctx context.Context, in testInput) (testOutput, error) {
				return testOutput{}, nil
			})

		registry.Register(tool)

		got, ok := registry.Get("tool1")
		assert.True(t, ok)
		assert.Equal(t, "tool1", got.Name())
	})

	t.Run("register multiple tools", func(t *testing.T) {
		registry := NewToolRegistry()
		tool1 := MustNewTool("tool1", "first", func(ctx context.Context, in testInput) (testOutput, error) { return testOutput{}, nil })
		tool2 := MustNewTool("tool2", "second", func(ctx context.Context, in testInput) (testOutput, error) { return testOutput{}, nil })
		tool3 := MustNewTool("tool3", "third", func(ctx context.Context, in testInput) (testOutput, error) { return testOutput{}, nil })

		registry.Register(tool1, tool2, tool3)

		all := registry.All()
		assert.Len(t, all, 3)
	})

	t.Run("get non-existent tool", func(t *testing.T) {
		registry := NewToolRegistry()

		_, ok := registry.Get("nonexistent")
		assert.False(t, ok)
	})

	t.Run("overwrite existing tool", func(t *testing.T) {
		registry := NewToolRegistry()
		tool1 := MustNewTool("tool", "first", func(ctx context.Context, in testInput) (testOutput, error) { return testOutput{Result: "first"}, nil })
		tool2 := MustNewTool("tool", "second", func(ctx context.Context, in testInput) (testOutput, error) { return testOutput{Result: "second"}, nil })

		registry.Register(tool1)
		registry.Register(tool2)

		got, ok := registry.Get("tool")
		require.True(t, ok)
		assert.Equal(t, "second", got.Description())
	})
}

func TestExecuteToolCalls(t *testing.T) {
	tests := []struct {
		name      string
		toolCalls []ToolCall
		setup     func(*ToolRegistry)
		wantErr   bool
		checkMsgs func(t *testing.T, msgs []Message)
	}{
		{
			name:      "empty tool calls",
			toolCalls: []ToolCall{},
			setup:     func(r *ToolRegistry) {},
			wantErr:   false,
			checkMsgs: func(t *testing.T, msgs []Message) {
				assert.Nil(t, msgs)
			},
		},
		{
			name: "single successful tool call",
			toolCalls: []ToolCall{
				{ID: "call_0", Name: "echo", Args: map[string]any{"name": "hello"}},
			},
			setup: func(r *ToolRegistry) {
				r.Register(MustNewTool("echo", "echoes input",
					func(ctx context.Context, in testInput) (string, error) {
						return "echoed: " + in.Name, nil
					}))
			},
			wantErr: false,
			checkMsgs: func(t *testing.T, msgs []Message) {
				require.Len(t, msgs, 1)
				assert.Equal(t, RoleTool, msgs[0].Role)
				assert.Equal(t, "call_0", msgs[0].ToolID)
				assert.Equal(t, "echoed: hello", msgs[0].Content)
			},
		},
		{
			name: "tool returns struct",
			toolCalls: []ToolCall{
				{ID: "call_0", Name: "struct_tool", Args: map[string]any{"name": "test", "count": 5}},
			},
			setup: func(r *ToolRegistry) {
				r.Register(MustNewTool("struct_tool", "returns struct",
					func(ctx context.Context, in testInput) (testOutput, error) {
						return testOutput{Result: in.Name, Value: in.Count}, nil
					}))
			},
			wantErr: false,
			checkMsgs: func(t *testing.T, msgs []Message) {
				require.Len(t, msgs, 1)
				// Should be JSON marshaled
				var out testOutput
				err := json.Unmarshal([]byte(msgs[0].Content), &out)
				require.NoError(t, err)
				assert.Equal(t, "test", out.Result)
				assert.Equal(t, 5, out.Value)
			},
		},
		{
			name: "tool not found",
			toolCalls: []ToolCall{
				{ID: "call_0", Name: "nonexistent", Args: map[string]any{}},
			},
			setup:   func(r *ToolRegistry) {},
			wantErr: true,
		},
		{
			name: "multiple tool calls",
			toolCalls: []ToolCall{
				{ID: "call_0", Name: "tool1", Args: map[string]any{"name": "first"}},
				{ID: "call_1", Name: "tool2", Args: map[string]any{"name": "second"}},
			},
			setup: func(r *ToolRegistry) {
				r.Register(MustNewTool("tool1", "first tool",
					func(ctx context.Context, in testInput) (string, error) {
						return "result1", nil
					}))
				r.Register(MustNewTool("tool2", "second tool",
					func(ctx context.Context, in testInput) (string, error) {
						return "result2", nil
					}))
			},
			wantErr: false,
			checkMsgs: func(t *testing.T, msgs []Message) {
				require.Len(t, msgs, 2)
				assert.Equal(t, "call_0", msgs[0].ToolID)
				assert.Equal(t, "call_1", msgs[1].ToolID)
			},
		},
		{
			name: "tool execution error included in message",
			toolCalls: []ToolCall{
				{ID: "call_0", Name: "error_tool", Args: map[string]any{"name": "test"}},
			},
			setup: func(r *ToolRegistry) {
				r.Register(MustNewTool("error_tool", "tool that errors",
					func(ctx context.Context, in testInput) (string, error) {
						return "", errors.New("tool execution failed")
					}))
			},
			wantErr: false,
			checkMsgs: func(t *testing.T, msgs []Message) {
				require.Len(t, msgs, 1)
				assert.Contains(t, msgs[0].Content, "Error:")
				assert.Contains(t, msgs[0].Content, "tool execution failed")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewToolRegistry()
			tt.setup(registry)

			ctx := context.Background()
			msgs, err := ExecuteToolCalls(ctx, tt.toolCalls, registry)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.checkMsgs != nil {
				tt.checkMsgs(t, msgs)
			}
		})
	}
}

func TestExecuteToolCalls_NotFoundError(t *testing.T) {
	registry := NewToolRegistry()

	_, err := ExecuteToolCalls(context.Background(), []ToolCall{
		{ID: "call_0", Name: "missing"},
	}, registry)

	var notFound *ToolNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Name)
}
