// ABOUTME: Tests for deal database operations
// ABOUTME: Covers creation, nullable amount, status transitions, and filtered listing
package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealflow/models"
)

func TestCreateAndGetDeal(t *testing.T) {
	db := setupTestDB(t)

	amount := 2500.0
	closeDate := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	deal := &models.Deal{
		Title:             "Annual license renewal",
		Amount:            &amount,
		OwnerID:           "owner-1",
		PipelineID:        uuid.New(),
		StageID:           uuid.New(),
		ContactID:         uuid.New(),
		Status:            models.DealStatusOpen,
		ExpectedCloseDate: &closeDate,
	}

	if err := CreateDeal(db, deal); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	found, err := GetDeal(db, deal.ID)
	if err != nil {
		t.Fatalf("GetDeal failed: %v", err)
	}
	if found == nil {
		t.Fatal("Deal not found")
	}

	if found.Title != "Annual license renewal" {
		t.Errorf("Expected title to round-trip, got %s", found.Title)
	}
	if found.Amount == nil || *found.Amount != 2500.0 {
		t.Errorf("Amount did not round-trip: %v", found.Amount)
	}
	if found.ExpectedCloseDate == nil || !found.ExpectedCloseDate.Equal(closeDate) {
		t.Errorf("Close date did not round-trip: %v", found.ExpectedCloseDate)
	}
	if !found.IsOpen() {
		t.Error("New deal should be open")
	}
}

func TestCreateDealNilAmount(t *testing.T) {
	db := setupTestDB(t)

	deal := &models.Deal{
		Title:      "Unsized opportunity",
		OwnerID:    "owner-1",
		PipelineID: uuid.New(),
		StageID:    uuid.New(),
		ContactID:  uuid.New(),
		Status:     models.DealStatusOpen,
	}

	if err := CreateDeal(db, deal); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	found, err := GetDeal(db, deal.ID)
	if err != nil {
		t.Fatalf("GetDeal failed: %v", err)
	}
	if found.Amount != nil {
		t.Errorf("Expected nil amount, got %v", *found.Amount)
	}
	if found.ExpectedCloseDate != nil {
		t.Errorf("Expected nil close date, got %v", found.ExpectedCloseDate)
	}
}

func TestMarkDealWon(t *testing.T) {
	db := setupTestDB(t)

	deal := newOpenDeal(t, db, "Won deal", uuid.New())

	if err := MarkDealWon(db, deal.ID); err != nil {
		t.Fatalf("MarkDealWon failed: %v", err)
	}

	found, err := GetDeal(db, deal.ID)
	if err != nil {
		t.Fatalf("GetDeal failed: %v", err)
	}
	if found.Status != models.DealStatusWon {
		t.Errorf("Expected status won, got %s", found.Status)
	}
	if found.LostReason != "" {
		t.Errorf("Won deal should have no lost reason, got %q", found.LostReason)
	}
}

func TestMarkDealLost(t *testing.T) {
	db := setupTestDB(t)

	deal := newOpenDeal(t, db, "Lost deal", uuid.New())

	if err := MarkDealLost(db, deal.ID, "Chose a competitor"); err != nil {
		t.Fatalf("MarkDealLost failed: %v", err)
	}

	found, err := GetDeal(db, deal.ID)
	if err != nil {
		t.Fatalf("GetDeal failed: %v", err)
	}
	if found.Status != models.DealStatusLost {
		t.Errorf("Expected status lost, got %s", found.Status)
	}
	if found.LostReason != "Chose a competitor" {
		t.Errorf("Expected lost reason to round-trip, got %q", found.LostReason)
	}
}

func TestUpdateDealStage(t *testing.T) {
	db := setupTestDB(t)

	deal := newOpenDeal(t, db, "Moving deal", uuid.New())
	newStage := uuid.New()

	if err := UpdateDealStage(db, deal.ID, newStage); err != nil {
		t.Fatalf("UpdateDealStage failed: %v", err)
	}

	found, err := GetDeal(db, deal.ID)
	if err != nil {
		t.Fatalf("GetDeal failed: %v", err)
	}
	if found.StageID != newStage {
		t.Errorf("Expected stage %s, got %s", newStage, found.StageID)
	}
}

func TestFindDeals(t *testing.T) {
	db := setupTestDB(t)

	pipelineA := uuid.New()
	pipelineB := uuid.New()

	d1 := newOpenDeal(t, db, "Deal one", pipelineA)
	newOpenDeal(t, db, "Deal two", pipelineA)
	newOpenDeal(t, db, "Deal three", pipelineB)

	if err := MarkDealWon(db, d1.ID); err != nil {
		t.Fatalf("MarkDealWon failed: %v", err)
	}

	deals, err := FindDeals(db, models.DealStatusOpen, nil, 10)
	if err != nil {
		t.Fatalf("FindDeals failed: %v", err)
	}
	if len(deals) != 2 {
		t.Errorf("Expected 2 open deals, got %d", len(deals))
	}

	deals, err = FindDeals(db, "", &pipelineA, 10)
	if err != nil {
		t.Fatalf("FindDeals failed: %v", err)
	}
	if len(deals) != 2 {
		t.Errorf("Expected 2 deals in pipeline A, got %d", len(deals))
	}

	deals, err = FindDeals(db, models.DealStatusWon, &pipelineA, 10)
	if err != nil {
		t.Fatalf("FindDeals failed: %v", err)
	}
	if len(deals) != 1 || deals[0].ID != d1.ID {
		t.Errorf("Expected only the won deal, got %+v", deals)
	}
}

func TestDeleteDeal(t *testing.T) {
	db := setupTestDB(t)

	deal := newOpenDeal(t, db, "Doomed deal", uuid.New())

	if err := DeleteDeal(db, deal.ID); err != nil {
		t.Fatalf("DeleteDeal failed: %v", err)
	}

	found, err := GetDeal(db, deal.ID)
	if err != nil {
		t.Fatalf("GetDeal failed: %v", err)
	}
	if found != nil {
		t.Error("Deal was not deleted")
	}
}

func newOpenDeal(t *testing.T, db *sql.DB, title string, pipelineID uuid.UUID) *models.Deal {
	t.Helper()
	deal := &models.Deal{
		Title:      title,
		OwnerID:    "owner-1",
		PipelineID: pipelineID,
		StageID:    uuid.New(),
		ContactID:  uuid.New(),
		Status:     models.DealStatusOpen,
	}
	if err := CreateDeal(db, deal); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	return deal
}
