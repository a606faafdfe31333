package react

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/reagent-ai/reagent/provider"
)

// BasePrompt is the default system prompt instructing the model to
// answer with the Action/Action Input convention.
const BasePrompt = `You are a helpful assistant that must use the provided tools to solve problems.

IMPORTANT: You must use the available tools for any task that requires computation,
data retrieval, or external operations. Follow this exact pattern:

1. Analyze the user's request and identify which tools are needed
2. Use tools in this format:
   Action: tool_name
   Action Input: {"parameter": "value"}
3. Wait for the Observation: containing the tool result
4. If you need more information or want to use another tool, repeat steps 2-3
5. Once you have all needed information, provide your final answer

CRITICAL RULES:
- Never perform calculations manually - always use calculator tools
- Never guess or make up information - use search/retrieval tools
- Always wait for Observation: before proceeding
- You can use multiple tools in sequence to solve complex problems
- Format parameters correctly based on tool requirements
  (JSON, key-value pairs, or simple strings)`

const usageTemplate = `

Available tools:
%s

Tool Usage Instructions:
- Format: Action: tool_name
- Next line: Action Input: {"param1": value1, "param2": value2}
- Alternative formats supported:
  * Simple string: Action Input: search query
  * Key-value: Action Input: query="search term", limit=5
  * Multi-line JSON is supported
- Wait for "Observation:" with the tool result before proceeding
- You can use multiple tools in sequence to solve complex problems`

// BuildSystemPrompt builds the complete tool-aware system prompt.
func BuildSystemPrompt(tools []provider.ToolDef) string {
	return BasePrompt + BuildToolDescriptions(tools)
}

// BuildToolDescriptions renders tool names, descriptions, and
// parameter docs for appending to a system prompt. Returns the empty
// string when no tools are given.
func BuildToolDescriptions(tools []provider.ToolDef) string {
	var descriptions []string
	for _, tool := range tools {
		if tool.Name == "" {
			continue
		}
		desc := fmt.Sprintf("- %s: %s", tool.Name, tool.Description)
		if params := describeParameters(tool.Parameters); params != "" {
			desc += "\n  Parameters: " + params
		}
		descriptions = append(descriptions, desc)
	}

	if len(descriptions) == 0 {
		return ""
	}
	return fmt.Sprintf(usageTemplate, strings.Join(descriptions, "\n"))
}

// describeParameters extracts "name (description)" entries from a
// tool's JSON schema, preserving declaration order. A schema that
// cannot be read yields no parameter docs rather than an error.
func describeParameters(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(raw, &schema); err != nil || schema.Properties == nil {
		return ""
	}

	var params []string
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		param := pair.Key
		if pair.Value != nil && pair.Value.Description != "" {
			param += fmt.Sprintf(" (%s)", pair.Value.Description)
		}
		params = append(params, param)
	}
	return strings.Join(params, ", ")
}
