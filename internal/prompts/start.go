// Package prompts implements the MCP prompts.
//
// Prompts are user-triggered workflows, like slash commands, that tell the
// assistant which tools to call in which order.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the ac-start MCP prompt. It walks the assistant
// through the draft → review → synthesis workflow.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("ac-start",
		mcp.WithPromptDescription(
			"Write acceptance criteria for a feature with a draft, an adversarial "+
				"review and a final synthesis. Each document is scored along the way.",
		),
		mcp.WithArgument("title",
			mcp.ArgumentDescription("Feature name"),
		),
		mcp.WithArgument("context",
			mcp.ArgumentDescription("Who the feature is for and what problem it solves"),
		),
	)
}

// Handle processes the ac-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	title := "my feature"
	background := ""
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["title"]; ok && v != "" {
			title = v
		}
		background = args["context"]
	}

	contextLine := "Ask me for context first: who uses the feature and what problem it solves."
	if background != "" {
		contextLine = fmt.Sprintf("Context: %s", background)
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Acceptance criteria for: %s", title),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want acceptance criteria for '%s'.\n%s\n\n"+
						"Please:\n"+
						"1. Run `ac_start` with title='%s' and the context\n"+
						"2. Answer the draft prompt it returns and submit the answer with `ac_submit`\n"+
						"3. Answer the review prompt as a strict reviewer and submit it with `ac_submit`\n"+
						"4. Answer the synthesis prompt and submit the final document with `ac_submit`\n"+
						"5. Show me the final document and its score, and explain any remaining issues",
					title, contextLine, title,
				)),
			},
		},
	}, nil
}
