package react

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reagent-ai/reagent/provider"
)

func TestExtractToolCalls(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []provider.ToolCall
	}{
		{
			name:    "single call with JSON input",
			content: "Action: search\nAction Input: {\"query\": \"test\"}\nObservation: x",
			want: []provider.ToolCall{
				{ID: "call_0", Name: "search", Args: map[string]any{"query": "test"}},
			},
		},
		{
			name:    "missing action input drops the call",
			content: "Action: a\nSome text without input",
			want:    nil,
		},
		{
			name:    "no markers at all",
			content: "Just a plain answer with no tools involved.",
			want:    nil,
		},
		{
			name:    "empty content",
			content: "",
			want:    nil,
		},
		{
			name: "two consecutive blocks keep source order",
			content: "Action: first\nAction Input: {\"a\": 1}\n\n" +
				"Action: second\nAction Input: {\"b\": 2}",
			want: []provider.ToolCall{
				{ID: "call_0", Name: "first", Args: map[string]any{"a": float64(1)}},
				{ID: "call_1", Name: "second", Args: map[string]any{"b": float64(2)}},
			},
		},
		{
			name: "back-to-back blocks separated only by the next Action line",
			content: "Action: first\nAction Input: one\n" +
				"Action: second\nAction Input: two",
			want: []provider.ToolCall{
				{ID: "call_0", Name: "first", Args: map[string]any{"input": "one"}},
				{ID: "call_1", Name: "second", Args: map[string]any{"input": "two"}},
			},
		},
		{
			name: "multi-line JSON input",
			content: "Action: search\nAction Input: {\"query\":\n\"multi line\"}\n" +
				"Observation: done",
			want: []provider.ToolCall{
				{ID: "call_0", Name: "search", Args: map[string]any{"query": "multi line"}},
			},
		},
		{
			name:    "final answer stops accumulation",
			content: "Action: calc\nAction Input: 2+2\nFinal Answer: 4",
			want: []provider.ToolCall{
				{ID: "call_0", Name: "calc", Args: map[string]any{"input": "2+2"}},
			},
		},
		{
			name:    "surrounding prose is ignored",
			content: "I should look this up.\nAction: wiki\nAction Input: gophers\n\nThat should do it.",
			want: []provider.ToolCall{
				{ID: "call_0", Name: "wiki", Args: map[string]any{"input": "gophers"}},
			},
		},
		{
			name:    "empty action name drops the call",
			content: "Action:\nAction Input: something",
			want:    nil,
		},
		{
			name:    "blank input followed by stop line drops the call",
			content: "Action: search\nAction Input:\nObservation: nothing",
			want:    nil,
		},
		{
			name:    "blank input with a continuation line survives",
			content: "Action: search\nAction Input:\ngophers in the wild",
			want: []provider.ToolCall{
				{ID: "call_0", Name: "search", Args: map[string]any{"input": "gophers in the wild"}},
			},
		},
		{
			name:    "intermediate action line is swallowed by the pending block",
			content: "Action: a\nAction: b\nAction Input: x",
			want: []provider.ToolCall{
				{ID: "call_0", Name: "a", Args: map[string]any{"input": "x"}},
			},
		},
		{
			name:    "indented markers are recognized after trimming",
			content: "  Action: search  \n  Action Input: {\"q\": \"v\"}  ",
			want: []provider.ToolCall{
				{ID: "call_0", Name: "search", Args: map[string]any{"q": "v"}},
			},
		},
		{
			name:    "input ending at end of content",
			content: "Action: echo\nAction Input: hello",
			want: []provider.ToolCall{
				{ID: "call_0", Name: "echo", Args: map[string]any{"input": "hello"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractToolCalls(tt.content)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractToolCalls_MultiLineJoining(t *testing.T) {
	content := "Action: note\nAction Input: first line\nsecond line\nthird line\nObservation: ok"

	got := ExtractToolCalls(content)
	require.Len(t, got, 1)
	assert.Equal(t, map[string]any{"input": "first line\nsecond line\nthird line"}, got[0].Args)
}

func TestExtractToolCalls_IDsFollowEmittedCalls(t *testing.T) {
	// The dropped middle block must not consume an ID.
	content := "Action: a\nAction Input: one\n\n" +
		"Action: dropped\nAction Input:\n\n" +
		"Action: b\nAction Input: two"

	got := ExtractToolCalls(content)
	require.Len(t, got, 2)
	assert.Equal(t, "call_0", got[0].ID)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "call_1", got[1].ID)
	assert.Equal(t, "b", got[1].Name)
}

func TestContainsToolCalls(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"both markers", "Action: x\nAction Input: y", true},
		{"action only", "Action: x", false},
		{"neither", "plain text", false},
		{"markers mid-text", "thinking...\nAction: t\nAction Input: 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsToolCalls(tt.content))
		})
	}
}
