// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools, prompts and resources. No business logic
// lives here, only wiring.
package server

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bordenet/acceptance-criteria-assistant/internal/config"
	"github.com/bordenet/acceptance-criteria-assistant/internal/history"
	"github.com/bordenet/acceptance-criteria-assistant/internal/prompts"
	"github.com/bordenet/acceptance-criteria-assistant/internal/resources"
	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
	"github.com/bordenet/acceptance-criteria-assistant/internal/templates"
	"github.com/bordenet/acceptance-criteria-assistant/internal/tools"
	"github.com/bordenet/acceptance-criteria-assistant/internal/workflow"
)

// Name is the MCP server name.
const Name = "acceptance-criteria-assistant"

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with every tool, prompt and resource
// registered.
//
// The returned cleanup function closes the history database and must be
// called on shutdown. It is always non-nil and safe to call even if
// history failed to open.
func New(cfg *config.Config, logger *slog.Logger) (*server.MCPServer, func(), error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	// --- Shared dependencies ---

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, noop, fmt.Errorf("creating template renderer: %w", err)
	}
	validator := scoring.NewValidator(scoring.WithMinLength(cfg.MinLength))
	store := workflow.NewFileStore(cfg.WorkflowDir())

	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Scoring tools ---

	validateTool := tools.NewValidateTool(validator)
	s.AddTool(validateTool.Definition(), validateTool.Handle)

	critiqueTool := tools.NewCritiqueTool(validator, renderer)
	s.AddTool(critiqueTool.Definition(), critiqueTool.Handle)

	templateTool := tools.NewTemplateTool(renderer)
	s.AddTool(templateTool.Definition(), templateTool.Handle)

	// --- Workflow tools ---

	startTool := tools.NewStartTool(store, renderer)
	s.AddTool(startTool.Definition(), startTool.Handle)

	submitTool := tools.NewSubmitTool(store, renderer, validator)
	s.AddTool(submitTool.Definition(), submitTool.Handle)

	statusTool := tools.NewStatusTool(store)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	// --- History ---
	//
	// History is an independent subsystem: if it is disabled or fails to
	// open, scoring and the workflow keep working without it.

	cleanup := noop
	hist, histErr := openHistory(cfg)
	switch {
	case histErr != nil:
		logger.Warn("history disabled", "error", histErr)
	case hist == nil:
		logger.Info("history disabled by config")
	default:
		cleanup = func() {
			if err := hist.Close(); err != nil {
				logger.Warn("history close", "error", err)
			}
		}
		bridge := tools.NewHistoryBridge(hist, logger)
		validateTool.SetRecorder(bridge)
		submitTool.SetRecorder(bridge)

		historyTool := tools.NewHistoryTool(hist)
		s.AddTool(historyTool.Definition(), historyTool.Handle)
	}

	// --- Prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Resources ---

	resourceHandler := resources.NewHandler(store, validator.Library(), validator.SlopDetector())
	s.AddResource(resourceHandler.RubricResource(), resourceHandler.HandleRubric)
	s.AddResource(resourceHandler.ProjectsResource(), resourceHandler.HandleProjects)

	logger.Debug("mcp server ready", "workflow_dir", cfg.WorkflowDir(), "history", hist != nil)
	return s, cleanup, nil
}

// openHistory returns a nil store when history is disabled.
func openHistory(cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	return history.New(history.Config{
		DataDir:          cfg.DataDir,
		MaxContentLength: cfg.History.MaxContentLength,
		MaxSearchResults: cfg.History.MaxResults,
	})
}

// noop is the cleanup used when history is not open.
func noop() {}

// serverInstructions tells the assistant how to use the tools.
func serverInstructions() string {
	return `You have access to an acceptance criteria assistant. It scores acceptance
criteria documents from 0 to 100 and guides you through writing better ones.

## When to use it
- The user writes, pastes or asks for acceptance criteria, a definition of done,
  or a feature checklist.
- The user asks whether criteria are testable, complete or ready for development.

## Scoring
Call ac_validate with the full document. The score has four dimensions:
- Structure (25): a Summary section, 3 or more "- [ ]" checkbox criteria, an Out of Scope section.
- Clarity (30): action verbs and measurable values with units ("within 200ms", "at most 3 retries").
- Testability (25): no vague words (fast, intuitive, appropriate...), no user-story or
  Given/When/Then phrasing, no "and"/"or" compound criteria, no technology names.
- Completeness (20): 3-7 criteria, at least one error case and one edge case, all sections present.
Filler language ("leverage", "seamless", "it is important to note") costs up to 5 points.

Call ac_critique to get a rewrite prompt listing every issue. Call ac_template
for a blank document.

## Workflow
For a new feature, use the three-phase workflow:
1. ac_start(title, context) returns a draft prompt.
2. Answer it and call ac_submit(content). The draft is scored and a review prompt is returned.
3. Answer the review prompt as a strict reviewer and call ac_submit again.
4. Answer the synthesis prompt with the final document and call ac_submit. The final report compares the draft and final scores.
Use ac_status to see where a project stands.

## History
When available, ac_history lists or searches earlier scores.

NEVER submit placeholder text. Always write real content.`
}
