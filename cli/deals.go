// ABOUTME: Deal CLI commands
// ABOUTME: Human-friendly commands for creating, listing, and closing deals
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealflow/db"
	"github.com/harperreed/dealflow/models"
	"github.com/harperreed/dealflow/validate"
)

// AddDealCommand creates a new deal.
func AddDealCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-deal", flag.ExitOnError)
	owner := fs.String("owner", "", "Owner ID (required)")
	pipeline := fs.String("pipeline", "", "Pipeline ID (required)")
	stage := fs.String("stage", "", "Stage ID (required)")
	contact := fs.String("contact", "", "Contact ID (required)")
	title := fs.String("title", "", "Deal title (required)")
	amount := fs.String("amount", "", "Deal amount (empty for none)")
	closeDate := fs.String("close-date", "", "Expected close date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	payload, err := validate.Deal(validate.DealDraft{
		OwnerID:           *owner,
		PipelineID:        *pipeline,
		StageID:           *stage,
		ContactID:         *contact,
		Title:             *title,
		Amount:            *amount,
		ExpectedCloseDate: *closeDate,
	})
	if err != nil {
		return err
	}

	pipelineID, err := uuid.Parse(payload.PipelineID)
	if err != nil {
		return fmt.Errorf("invalid pipeline id: %w", err)
	}
	stageID, err := uuid.Parse(payload.StageID)
	if err != nil {
		return fmt.Errorf("invalid stage id: %w", err)
	}
	contactID, err := uuid.Parse(payload.ContactID)
	if err != nil {
		return fmt.Errorf("invalid contact id: %w", err)
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
		t, perr := time.Parse(time.RFC3339, *payload.ExpectedCloseDate)
		if perr != nil {
			return fmt.Errorf("invalid close date: %w", perr)
		}
		deal.ExpectedCloseDate = &t
	}

	if err := db.CreateDeal(database, deal); err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}

	fmt.Printf("Created deal: %s (%s)\n", deal.Title, deal.ID)
	return nil
}

// ListDealsCommand lists deals with optional filters.
func ListDealsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-deals", flag.ExitOnError)
	status := fs.String("status", "", "Filter by status (open, won, lost)")
	pipeline := fs.String("pipeline", "", "Filter by pipeline ID")
	limit := fs.Int("limit", 50, "Max results")
	_ = fs.Parse(args)

	var pipelineID *uuid.UUID
	if *pipeline != "" {
		pid, err := uuid.Parse(*pipeline)
		if err != nil {
			return fmt.Errorf("invalid pipeline id: %w", err)
		}
		pipelineID = &pid
	}

	deals, err := db.FindDeals(database, *status, pipelineID, *limit)
	if err != nil {
		return fmt.Errorf("failed to list deals: %w", err)
	}

	if len(deals) == 0 {
		fmt.Println("No deals found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAMOUNT\tSTATUS\tCLOSE DATE")
	for _, deal := range deals {
		amount := "-"
		if deal.Amount != nil {
			amount = fmt.Sprintf("%.2f", *deal.Amount)
		}
		closeDate := "-"
		if deal.ExpectedCloseDate != nil {
			closeDate = deal.ExpectedCloseDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", deal.ID, deal.Title, amount, deal.Status, closeDate)
	}
	return w.Flush()
}

// WinDealCommand marks a deal as won.
func WinDealCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("win-deal", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: win-deal <id>")
	}

	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	deal, err := requireOpenDeal(database, id)
	if err != nil {
		return err
	}

	if err := db.MarkDealWon(database, deal.ID); err != nil {
		return fmt.Errorf("failed to mark deal won: %w", err)
	}

	fmt.Printf("Deal won: %s\n", deal.Title)
	return nil
}

// LoseDealCommand marks a deal as lost with a reason.
func LoseDealCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("lose-deal", flag.ExitOnError)
	reason := fs.String("reason", "", "Reason the deal was lost (required)")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: lose-deal --reason <reason> <id>")
	}

	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	cleanReason, err := validate.LostReason(*reason)
	if err != nil {
		return err
	}

	deal, err := requireOpenDeal(database, id)
	if err != nil {
		return err
	}

	if err := db.MarkDealLost(database, deal.ID, cleanReason); err != nil {
		return fmt.Errorf("failed to mark deal lost: %w", err)
	}

	fmt.Printf("Deal lost: %s (%s)\n", deal.Title, cleanReason)
	return nil
}

// MoveDealCommand moves an open deal to another stage.
func MoveDealCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("move-deal", flag.ExitOnError)
	stage := fs.String("stage", "", "Target stage ID (required)")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: move-deal --stage <stage-id> <id>")
	}

	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	stageID, err := uuid.Parse(*stage)
	if err != nil {
		return fmt.Errorf("invalid stage id: %w", err)
	}

	deal, err := requireOpenDeal(database, id)
	if err != nil {
		return err
	}

	if err := db.UpdateDealStage(database, deal.ID, stageID); err != nil {
		return fmt.Errorf("failed to move deal: %w", err)
	}

	fmt.Printf("Moved deal %s to stage %s\n", deal.Title, stageID)
	return nil
}

// DeleteDealCommand deletes a deal.
func DeleteDealCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-deal", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: delete-deal <id>")
	}

	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	if err := db.DeleteDeal(database, id); err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}

	fmt.Printf("Deleted deal %s\n", id)
	return nil
}

func requireOpenDeal(database *sql.DB, id uuid.UUID) (*models.Deal, error) {
	deal, err := db.GetDeal(database, id)
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
