// Package tools provides built-in tools for use with llm calls.
package tools

import (
	"context"
	"fmt"

	"github.com/reagent-ai/reagent/llm"
)

// MathInput defines the input for the arithmetic tools.
type MathInput struct {
	A float64 `json:"a" jsonschema:"required,description=First number"`
	B float64 `json:"b" jsonschema:"required,description=Second number"`
}

// AddTool returns a tool that adds two numbers.
func AddTool() (llm.Tool, error) {
	return llm.NewTool(
		"add_numbers",
		"Adds two numbers and returns the result.",
		func(ctx context.Context, input MathInput) (float64, error) {
			return input.A + input.B, nil
		},
	)
}

// SubtractTool returns a tool that subtracts the second number from the first.
func SubtractTool() (llm.Tool, error) {
	return llm.NewTool(
		"subtract_numbers",
		"Subtracts the second number from the first and returns the result.",
		func(ctx context.Context, input MathInput) (float64, error) {
			return input.A - input.B, nil
		},
	)
}

// MultiplyTool returns a tool that multiplies two numbers.
func MultiplyTool() (llm.Tool, error) {
	return llm.NewTool(
		"multiply_numbers",
		"Multiplies two numbers and returns the result.",
		func(ctx context.Context, input MathInput) (float64, error) {
			return input.A * input.B, nil
		},
	)
}

// DivideTool returns a tool that divides the first number by the second.
func DivideTool() (llm.Tool, error) {
	return llm.NewTool(
		"divide_numbers",
		"Divides the first number by the second and returns the result.",
		func(ctx context.Context, input MathInput) (float64, error) {
			if input.B == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return input.A / input.B, nil
		},
	)
}

// MathTools returns all arithmetic tools.
func MathTools() ([]llm.Tool, error) {
	add, err := AddTool()
	if err != nil {
		return nil, err
	}
	subtract, err := SubtractTool()
	if err != nil {
		return nil, err
	}
	multiply, err := MultiplyTool()
	if err != nil {
		return nil, err
	}
	divide, err := DivideTool()
	if err != nil {
		return nil, err
	}
	return []llm.Tool{add, subtract, multiply, divide}, nil
}

// MustMathTools returns all arithmetic tools, panicking on error.
func MustMathTools() []llm.Tool {
	tools, err := MathTools()
	if err != nil {
		panic(err)
	}
	return tools
}
