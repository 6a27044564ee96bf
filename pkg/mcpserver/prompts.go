package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "course_summary",
		Description: "Summarize a course from its information and assignments.",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "course_id",
				Description: "The Canvas course ID",
				Required:    true,
			},
		},
	}, s.courseSummary)
}

func (s *Server) courseSummary(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	courseID := req.Params.Arguments["course_id"]
	log := s.logger.With("prompt", "course_summary", "request_id", uuid.NewString(), "course_id", courseID)
	if courseID == "" {
		return nil, errors.New("course_id is required")
	}

	text, err := s.service.CourseSummaryPrompt(ctx, courseID)
	if err != nil {
		log.Error("prompt failed", "error", err)
		return nil, fmt.Errorf("failed to build course summary: %w", err)
	}

	log.Info("prompt built")
	return &mcp.GetPromptResult{
		Description: "Course summary",
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}, nil
}
