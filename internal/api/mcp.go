package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/humanmode/internal/catalog"
	"github.com/kalambet/humanmode/internal/demo"
	"github.com/kalambet/humanmode/internal/profile"
	"github.com/kalambet/humanmode/internal/voice"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Profiles *profile.Manager
	Demo     *demo.Service
	Rand     voice.Rand // optional; defaults to voice.GlobalRand
}

// NewMCPServer creates an MCP server with the humanmode tools and resources registered.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	if deps.Rand == nil {
		deps.Rand = voice.GlobalRand
	}

	s := server.NewMCPServer(
		"humanmode",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("humanmode: interview answers rewritten for the user's skill level, tone and voice."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("get_response",
			mcp.WithDescription("Return the catalog answer for a question at a skill level and tone."),
			mcp.WithString("question_id", mcp.Description("Catalog question id"), mcp.Required()),
			mcp.WithString("skill_level", mcp.Description("beginner, intermediate or expert"), mcp.Required()),
			mcp.WithString("tone", mcp.Description("casual, professional or formal"), mcp.Required()),
		),
		mcpGetResponse(),
	)

	s.AddTool(
		mcp.NewTool("get_generic_response",
			mcp.WithDescription("Return the generic, unpersonalized answer for a question."),
			mcp.WithString("question_id", mcp.Description("Catalog question id"), mcp.Required()),
		),
		mcpGetGenericResponse(),
	)

	s.AddTool(
		mcp.NewTool("resolve_skill_level",
			mcp.WithDescription("Resolve the skill level used for a question category from the saved skills, or from a supplied skills object."),
			mcp.WithString("category", mcp.Description("Question category, e.g. \"Machine Learning\""), mcp.Required()),
			mcp.WithString("skills", mcp.Description("Optional JSON object of skill area to level; defaults to the saved skills")),
		),
		mcpResolveSkillLevel(deps),
	)

	s.AddTool(
		mcp.NewTool("generate_voice_analysis",
			mcp.WithDescription("Draw a simulated voice analysis. Nothing is saved."),
			mcp.WithNumber("seed", mcp.Description("Optional seed for a reproducible draw")),
		),
		mcpGenerateVoiceAnalysis(deps),
	)

	s.AddTool(
		mcp.NewTool("compare_answers",
			mcp.WithDescription("Compare the generic answer with the answer personalized to the saved profile."),
			mcp.WithString("question_id", mcp.Description("Catalog question id"), mcp.Required()),
		),
		mcpCompareAnswers(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"humanmode://profile",
			"User Profile",
			mcp.WithResourceDescription("Assembled user profile as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceProfile(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"humanmode://questions",
			"Question Catalog",
			mcp.WithResourceDescription("Catalog questions with ids and categories"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceQuestions(),
	)

	return s
}

func mcpGetResponse() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("question_id")
		if err != nil {
			return mcpError("question_id is required"), nil
		}
		level, err := profile.ParseSkillLevel(req.GetString("skill_level", ""))
		if err != nil {
			return mcpError(err.Error()), nil
		}
		tone, err := profile.ParseTone(req.GetString("tone", ""))
		if err != nil {
			return mcpError(err.Error()), nil
		}
		return mcpText(catalog.GetResponse(id, level, tone)), nil
	}
}

func mcpGetGenericResponse() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("question_id")
		if err != nil {
			return mcpError("question_id is required"), nil
		}
		return mcpText(catalog.GetGenericResponse(id)), nil
	}
}

func mcpResolveSkillLevel(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, err := req.RequireString("category")
		if err != nil {
			return mcpError("category is required"), nil
		}

		var skills profile.SkillSet
		if raw := req.GetString("skills", ""); raw != "" {
			if err := json.Unmarshal([]byte(raw), &skills); err != nil {
				return mcpError(fmt.Sprintf("invalid skills JSON: %v", err)), nil
			}
		} else {
			skills, _ = deps.Profiles.Skills(ctx)
		}

		level, res := catalog.ResolveSkillLevel(category, skills)
		return mcpJSON(map[string]any{
			"category":    category,
			"skill_level": level,
			"resolution":  res,
		})
	}
}

func mcpGenerateVoiceAnalysis(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		r := deps.Rand
		if _, ok := req.GetArguments()["seed"]; ok {
			seed := req.GetInt("seed", 0)
			if seed < 0 {
				return mcpError("seed must not be negative"), nil
			}
			r = voice.NewRand(uint64(seed))
		}
		return mcpJSON(voice.GenerateVoiceAnalysis(r))
	}
}

func mcpCompareAnswers(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("question_id")
		if err != nil {
			return mcpError("question_id is required"), nil
		}
		c, err := deps.Demo.Compare(ctx, id)
		if err != nil {
			var incomplete *demo.SetupIncompleteError
			if errors.As(err, &incomplete) {
				return mcpError(fmt.Sprintf("%v (next step: %s)", err, incomplete.Step)), nil
			}
			return mcpError(fmt.Sprintf("compare failed: %v", err)), nil
		}
		return mcpJSON(c)
	}
}

func mcpResourceProfile(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(newProfileResponse(deps.Profiles.GetProfile(ctx)))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal profile: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpResourceQuestions() server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(catalog.Questions())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal questions: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpJSON(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcpText(string(b)), nil
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
