// ABOUTME: Pipeline MCP tool handlers
// ABOUTME: Implements create_pipeline, list_pipelines, and delete_pipeline tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/dealflow/db"
	"github.com/harperreed/dealflow/models"
	"github.com/harperreed/dealflow/validate"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PipelineHandlers struct {
	db *sql.DB
}

func NewPipelineHandlers(database *sql.DB) *PipelineHandlers {
	return &PipelineHandlers{db: database}
}

type StageInput struct {
	Name  string  `json:"name" jsonschema:"Stage name (required)"`
	Color *string `json:"color,omitempty" jsonschema:"Stage color, null to clear"`
}

type CreatePipelineInput struct {
	Name   string       `json:"name" jsonschema:"Pipeline name (required)"`
	Stages []StageInput `json:"stages" jsonschema:"Ordered stages (at least one required)"`
}

type StageOutput struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type PipelineOutput struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Stages []StageOutput `json:"stages"`
}

func (h *PipelineHandlers) CreatePipeline(_ context.Context, request *mcp.CallToolRequest, input CreatePipelineInput) (*mcp.CallToolResult, PipelineOutput, error) {
	draft := validate.PipelineDraft{Name: input.Name}
	for _, s := range input.Stages {
		draft.Stages = append(draft.Stages, validate.StageDraft{Name: s.Name, Color: s.Color})
	}

	payload, err := validate.Pipeline(draft)
	if err != nil {
		return nil, PipelineOutput{}, err
	}

	pipeline := &models.Pipeline{Name: payload.Name}
	for _, s := range payload.Stages {
		stage := models.Stage{Name: s.Name}
		if s.HasColor {
			stage.Color = s.Color
		}
		pipeline.Stages = append(pipeline.Stages, stage)
	}

	if err := db.CreatePipeline(h.db, pipeline); err != nil {
		return nil, PipelineOutput{}, fmt.Errorf("failed to create pipeline: %w", err)
	}

	return nil, pipelineToOutput(pipeline), nil
}

type ListPipelinesOutput struct {
	Pipelines []PipelineOutput `json:"pipelines"`
}

func (h *PipelineHandlers) ListPipelines(_ context.Context, request *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, ListPipelinesOutput, error) {
	pipelines, err := db.ListPipelines(h.db)
	if err != nil {
		return nil, ListPipelinesOutput{}, fmt.Errorf("failed to list pipelines: %w", err)
	}

	result := make([]PipelineOutput, len(pipelines))
	for i, p := range pipelines {
		result[i] = pipelineToOutput(&p)
	}

	return nil, ListPipelinesOutput{Pipelines: result}, nil
}

type DeletePipelineInput struct {
	ID string `json:"id" jsonschema:"Pipeline ID (required)"`
}

func (h *PipelineHandlers) DeletePipeline(_ context.Context, request *mcp.CallToolRequest, input DeletePipelineInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := parseEntityID(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	if err := db.DeletePipeline(h.db, id); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete pipeline: %w", err)
	}

	return nil, DeleteOutput{Deleted: true}, nil
}

func pipelineToOutput(pipeline *models.Pipeline) PipelineOutput {
	out := PipelineOutput{
		ID:   pipeline.ID.String(),
		Name: pipeline.Name,
	}
	for _, s := range pipeline.Stages {
		out.Stages = append(out.Stages, StageOutput{
			ID:    s.ID.String(),
			Name:  s.Name,
			Color: s.Color,
		})
	}
	return out
}
