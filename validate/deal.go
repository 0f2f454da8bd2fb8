// ABOUTME: Deal form validation and normalization
// ABOUTME: Checks required relations, bounds the title, and normalizes amount and close date
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const maxDealTitleLen = 120

// DealDraft holds raw deal form fields prior to validation. Amount and
// ExpectedCloseDate arrive as strings straight from form inputs.
type DealDraft struct {
	OwnerID           string
	PipelineID        string
	StageID           string
	ContactID         string
	Title             string
	Amount            string
	ExpectedCloseDate string
}

// DealPayload is the normalized creation payload. Amount and
// ExpectedCloseDate are always present, serialized as null when not
// provided; unlike the contact payload this shape is not sparse.
type DealPayload struct {
	OwnerID           string   `json:"ownerId"`
	PipelineID        string   `json:"pipelineId"`
	StageID           string   `json:"stageId"`
	ContactID         string   `json:"contactId"`
	Title             string   `json:"title"`
	Amount            *float64 `json:"amount"`
	ExpectedCloseDate *string  `json:"expectedCloseDate"`
}

// Deal validates and normalizes a deal draft. Required fields are
// checked in fixed order (owner, pipeline, stage, title, contact)
// before any numeric or date parsing happens.
func Deal(d DealDraft) (*DealPayload, error) {
	ownerID := strings.TrimSpace(d.OwnerID)
	if ownerID == "" {
		return nil, errRequired("ownerId", "Owner is required.")
	}

	pipelineID := strings.TrimSpace(d.PipelineID)
	if pipelineID == "" {
		return nil, errRequired("pipelineId", "Pipeline is required.")
	}

	stageID := strings.TrimSpace(d.StageID)
	if stageID == "" {
		return nil, errRequired("stageId", "Stage is required.")
	}

	title := strings.TrimSpace(d.Title)
	if title == "" {
		return nil, errRequired("title", "Title is required.")
	}
	if len(title) > maxDealTitleLen {
		return nil, errTooLong("title", fmt.Sprintf("Title must be %d characters or less.", maxDealTitleLen))
	}

	contactID := strings.TrimSpace(d.ContactID)
	if contactID == "" {
		return nil, errRequired("contactId", "Contact is required.")
	}

	// Empty amount means "not provided" and stays null; zero is a real
	// value and survives as 0.
	var amount *float64
	if raw := strings.TrimSpace(d.Amount); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
			return nil, errInvalidFormat("amount", "Amount must be a valid number.")
		}
		if parsed < 0 {
			return nil, errOutOfRange("amount", "Amount must be greater than or equal to 0.")
		}
		amount = &parsed
	}

	var closeDate *string
	if raw := strings.TrimSpace(d.ExpectedCloseDate); raw != "" {
		instant, ok := endOfDayUTC(raw)
		if !ok {
			return nil, errInvalidFormat("expectedCloseDate", "Expected close date is not a valid date.")
		}
		closeDate = &instant
	}

	return &DealPayload{
		OwnerID:           ownerID,
		PipelineID:        pipelineID,
		StageID:           stageID,
		ContactID:         contactID,
		Title:             title,
		Amount:            amount,
		ExpectedCloseDate: closeDate,
	}, nil
}
