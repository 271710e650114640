package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the ac-status MCP prompt.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("ac-status",
		mcp.WithPromptDescription(
			"Check where your acceptance criteria project stands and what to do next.",
		),
	)
}

// Handle processes the ac-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Acceptance criteria project status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `ac_status` to check my current project.\n\n" +
						"Then:\n" +
						"1. Show me the phase progress and the score of each scored phase\n" +
						"2. Tell me exactly what I should do next\n" +
						"3. If no project is active, offer to start one with `ac_start`",
				),
			},
		},
	}, nil
}
