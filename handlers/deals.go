// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements create_deal, find_deals, stage moves, and won/lost transitions
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealflow/db"
	"github.com/harperreed/dealflow/models"
	"github.com/harperreed/dealflow/validate"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type DealHandlers struct {
	db *sql.DB
}

func NewDealHandlers(database *sql.DB) *DealHandlers {
	return &DealHandlers{db: database}
}

type CreateDealInput struct {
	OwnerID           string `json:"owner_id" jsonschema:"Owner ID (required)"`
	PipelineID        string `json:"pipeline_id" jsonschema:"Pipeline ID (required)"`
	StageID           string `json:"stage_id" jsonschema:"Stage ID (required)"`
	ContactID         string `json:"contact_id" jsonschema:"Contact ID (required)"`
	Title             string `json:"title" jsonschema:"Deal title (required)"`
	Amount            string `json:"amount,omitempty" jsonschema:"Deal amount as a decimal string, empty for no amount"`
	ExpectedCloseDate string `json:"expected_close_date,omitempty" jsonschema:"Expected close date (YYYY-MM-DD), empty for none"`
}

type DealOutput struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Amount            *float64 `json:"amount"`
	OwnerID           string   `json:"owner_id"`
	PipelineID        string   `json:"pipeline_id"`
	StageID           string   `json:"stage_id"`
	ContactID         string   `json:"contact_id"`
	Status            string   `json:"status"`
	LostReason        string   `json:"lost_reason,omitempty"`
	ExpectedCloseDate *string  `json:"expected_close_date"`
}

func (h *DealHandlers) CreateDeal(_ context.Context, request *mcp.CallToolRequest, input CreateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	payload, err := validate.Deal(validate.DealDraft{
		OwnerID:           input.OwnerID,
		PipelineID:        input.PipelineID,
		StageID:           input.StageID,
		ContactID:         input.ContactID,
		Title:             input.Title,
		Amount:            input.Amount,
		ExpectedCloseDate: input.ExpectedCloseDate,
	})
	if err != nil {
		return nil, DealOutput{}, err
	}

	pipelineID, err := uuid.Parse(payload.PipelineID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("invalid pipeline_id: %w", err)
	}
	stageID, err := uuid.Parse(payload.StageID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("invalid stage_id: %w", err)
	}
	contactID, err := uuid.Parse(payload.ContactID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("invalid contact_id: %w", err)
	}

	deal := &models.Deal{
		Title:      payload.Title,
		Amount:     payload.Amount,
		OwnerID:    payload.OwnerID,
		PipelineID: pipelineID,
		StageID:    stageID,
		ContactID:  contactID,
		Status:     models.DealStatusOpen,
	}
	if payload.ExpectedCloseDate != nil {
		closeDate, perr := time.Parse(time.RFC3339, *payload.ExpectedCloseDate)
		if perr != nil {
			return nil, DealOutput{}, fmt.Errorf("invalid expected_close_date: %w", perr)
		}
		deal.ExpectedCloseDate = &closeDate
	}

	if err := db.CreateDeal(h.db, deal); err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to create deal: %w", err)
	}

	return nil, dealToOutput(deal), nil
}

type FindDealsInput struct {
	Status     string `json:"status,omitempty" jsonschema:"Filter by status (open, won, lost)"`
	PipelineID string `json:"pipeline_id,omitempty" jsonschema:"Filter by pipeline ID"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindDealsOutput struct {
	Deals []DealOutput `json:"deals"`
}

func (h *DealHandlers) FindDeals(_ context.Context, request *mcp.CallToolRequest, input FindDealsInput) (*mcp.CallToolResult, FindDealsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	var pipelineID *uuid.UUID
	if input.PipelineID != "" {
		pid, err := uuid.Parse(input.PipelineID)
		if err != nil {
			return nil, FindDealsOutput{}, fmt.Errorf("invalid pipeline_id: %w", err)
		}
		pipelineID = &pid
	}

	deals, err := db.FindDeals(h.db, input.Status, pipelineID, limit)
	if err != nil {
		return nil, FindDealsOutput{}, fmt.Errorf("failed to find deals: %w", err)
	}

	result := make([]DealOutput, len(deals))
	for i, deal := range deals {
		result[i] = dealToOutput(&deal)
	}

	return nil, FindDealsOutput{Deals: result}, nil
}

type MarkDealWonInput struct {
	ID string `json:"id" jsonschema:"Deal ID (required)"`
}

func (h *DealHandlers) MarkDealWon(_ context.Context, request *mcp.CallToolRequest, input MarkDealWonInput) (*mcp.CallToolResult, DealOutput, error) {
	id, err := parseEntityID(input.ID)
	if err != nil {
		return nil, DealOutput{}, err
	}

	deal, err := h.requireOpenDeal(id)
	if err != nil {
		return nil, DealOutput{}, err
	}

	if err := db.MarkDealWon(h.db, deal.ID); err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to mark deal won: %w", err)
	}

	deal.Status = models.DealStatusWon
	return nil, dealToOutput(deal), nil
}

type MarkDealLostInput struct {
	ID     string `json:"id" jsonschema:"Deal ID (required)"`
	Reason string `json:"reason" jsonschema:"Reason the deal was lost (required)"`
}

func (h *DealHandlers) MarkDealLost(_ context.Context, request *mcp.CallToolRequest, input MarkDealLostInput) (*mcp.CallToolResult, DealOutput, error) {
	id, err := parseEntityID(input.ID)
	if err != nil {
		return nil, DealOutput{}, err
	}

	reason, err := validate.LostReason(input.Reason)
	if err != nil {
		return nil, DealOutput{}, err
	}

	deal, err := h.requireOpenDeal(id)
	if err != nil {
		return nil, DealOutput{}, err
	}

	if err := db.MarkDealLost(h.db, deal.ID, reason); err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to mark deal lost: %w", err)
	}

	deal.Status = models.DealStatusLost
	deal.LostReason = reason
	return nil, dealToOutput(deal), nil
}

type MoveDealStageInput struct {
	ID      string `json:"id" jsonschema:"Deal ID (required)"`
	StageID string `json:"stage_id" jsonschema:"Target stage ID (required)"`
}

func (h *DealHandlers) MoveDealStage(_ context.Context, request *mcp.CallToolRequest, input MoveDealStageInput) (*mcp.CallToolResult, DealOutput, error) {
	id, err := parseEntityID(input.ID)
	if err != nil {
		return nil, DealOutput{}, err
	}

	stageID, err := uuid.Parse(input.StageID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("invalid stage_id: %w", err)
	}

	deal, err := h.requireOpenDeal(id)
	if err != nil {
		return nil, DealOutput{}, err
	}

	if err := db.UpdateDealStage(h.db, deal.ID, stageID); err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to move deal: %w", err)
	}

	deal.StageID = stageID
	return nil, dealToOutput(deal), nil
}

type DeleteDealInput struct {
	ID string `json:"id" jsonschema:"Deal ID (required)"`
}

func (h *DealHandlers) DeleteDeal(_ context.Context, request *mcp.CallToolRequest, input DeleteDealInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := parseEntityID(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	if err := db.DeleteDeal(h.db, id); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete deal: %w", err)
	}

	return nil, DeleteOutput{Deleted: true}, nil
}

// requireOpenDeal loads the deal and rejects transitions on deals that
// were already closed.
func (h *DealHandlers) requireOpenDeal(id uuid.UUID) (*models.Deal, error) {
	deal, err := db.GetDeal(h.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	if deal == nil {
		return nil, fmt.Errorf("deal not found")
	}
	if !deal.IsOpen() {
		return nil, fmt.Errorf("deal is already %s", deal.Status)
	}
	return deal, nil
}

func dealToOutput(deal *models.Deal) DealOutput {
	out := DealOutput{
		ID:         deal.ID.String(),
		Title:      deal.Title,
		Amount:     deal.Amount,
		OwnerID:    deal.OwnerID,
		PipelineID: deal.PipelineID.String(),
		StageID:    deal.StageID.String(),
		ContactID:  deal.ContactID.String(),
		Status:     deal.Status,
		LostReason: deal.LostReason,
	}
	if deal.ExpectedCloseDate != nil {
		s := deal.ExpectedCloseDate.UTC().Format(time.RFC3339)
		out.ExpectedCloseDate = &s
	}
	return out
}
