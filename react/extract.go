// Package react implements the Action/Action Input text protocol used
// by ReAct-style prompting to embed tool invocations in free-form
// model output.
package react

import (
	"fmt"
	"strings"

	"github.com/reagent-ai/reagent/provider"
)

// Protocol markers. Observation and Final Answer lines are delimiters,
// never tool-call content.
const (
	actionPrefix      = "Action:"
	actionInputPrefix = "Action Input:"
	observationPrefix = "Observation:"
	finalAnswerPrefix = "Final Answer:"
)

// scanState tracks the line scanner's position within a tool-call block.
type scanState int

const (
	stateScanning scanState = iota
	stateAwaitingInput
	stateAccumulating
)

// ContainsToolCalls reports whether content carries both protocol
// markers. Cheap pre-check before a full extraction pass.
func ContainsToolCalls(content string) bool {
	return strings.Contains(content, actionPrefix) &&
		strings.Contains(content, actionInputPrefix)
}

// ExtractToolCalls scans content line by line for Action/Action Input
// pairs and returns the tool calls in discovery order, with IDs
// assigned as "call_<n>". It never fails: content with no well-formed
// pair yields an empty result.
//
// An Action line with no following Action Input line contributes
// nothing. Input values may span multiple lines; accumulation stops at
// an empty line or at the next Action, Observation, or Final Answer
// marker, which is left for the outer scan. A call whose accumulated
// input is empty is dropped just like one with an empty name.
func ExtractToolCalls(content string) []provider.ToolCall {
	lines := strings.Split(content, "\n")

	var calls []provider.ToolCall
	state := stateScanning
	var name, input string

	flush := func() {
		if name != "" && input != "" {
			calls = append(calls, provider.ToolCall{
				ID:   fmt.Sprintf("call_%d", len(calls)),
				Name: name,
				Args: ParseToolInput(input),
			})
		}
		name, input = "", ""
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		switch state {
		case stateScanning:
			if rest, ok := strings.CutPrefix(line, actionPrefix); ok {
				name = strings.TrimSpace(rest)
				state = stateAwaitingInput
			}

		case stateAwaitingInput:
			// Everything before the Action Input line is skipped,
			// including further Action lines: the pending name wins.
			if rest, ok := strings.CutPrefix(line, actionInputPrefix); ok {
				input = strings.TrimSpace(rest)
				state = stateAccumulating
			}

		case stateAccumulating:
			if isStopLine(line) {
				flush()
				state = stateScanning
				i-- // the stop line is not consumed
				continue
			}
			if input != "" {
				input += "\n"
			}
			input += line
		}
	}

	// A block still accumulating at end of input is complete.
	if state == stateAccumulating {
		flush()
	}

	return calls
}

func isStopLine(line string) bool {
	return line == "" ||
		strings.HasPrefix(line, actionPrefix) ||
		strings.HasPrefix(line, observationPrefix) ||
		strings.HasPrefix(line, finalAnswerPrefix)
}
