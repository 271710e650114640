package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the ac-review MCP prompt. It scores an existing
// document and rewrites it until it stops improving.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("ac-review",
		mcp.WithPromptDescription("Score an existing acceptance criteria document and improve it."),
		mcp.WithArgument("text",
			mcp.ArgumentDescription("The document to review. If omitted, the assistant asks for it."),
		),
	)
}

// Handle processes the ac-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	doc := ""
	if args := req.Params.Arguments; args != nil {
		doc = args["text"]
	}

	intro := "Ask me to paste the acceptance criteria document I want reviewed.\n\n"
	if doc != "" {
		intro = "Here are my acceptance criteria:\n\n" + doc + "\n\n"
	}

	return &mcp.GetPromptResult{
		Description: "Review acceptance criteria",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					intro +
						"Then:\n" +
						"1. Run `ac_validate` on the document and show me the score\n" +
						"2. Run `ac_critique` and follow its prompt to rewrite the document\n" +
						"3. Run `ac_validate` on the rewrite and compare the two scores\n" +
						"4. Repeat once more if the score is below 80\n" +
						"5. Give me the best version, and do not add scope I did not ask for",
				),
			},
		},
	}, nil
}
