// ABOUTME: Pipeline CLI commands
// ABOUTME: Commands for creating, listing, and deleting pipelines
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/dealflow/db"
	"github.com/harperreed/dealflow/models"
	"github.com/harperreed/dealflow/validate"
)

// AddPipelineCommand creates a pipeline from a comma-separated stage
// list.
func AddPipelineCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-pipeline", flag.ExitOnError)
	name := fs.String("name", "", "Pipeline name (required)")
	stages := fs.String("stages", "", "Comma-separated stage names (required)")
	_ = fs.Parse(args)

	draft := validate.PipelineDraft{Name: *name}
	for _, stageName := range splitList(*stages) {
		draft.Stages = append(draft.Stages, validate.StageDraft{Name: stageName})
	}

	payload, err := validate.Pipeline(draft)
	if err != nil {
		return err
	}

	pipeline := &models.Pipeline{Name: payload.Name}
	for _, s := range payload.Stages {
		stage := models.Stage{Name: s.Name}
		if s.HasColor {
			stage.Color = s.Color
		}
		pipeline.Stages = append(pipeline.Stages, stage)
	}

	if err := db.CreatePipeline(database, pipeline); err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	fmt.Printf("Created pipeline: %s (%s) with %d stages\n", pipeline.Name, pipeline.ID, len(pipeline.Stages))
	return nil
}

// ListPipelinesCommand lists all pipelines with their stages.
func ListPipelinesCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-pipelines", flag.ExitOnError)
	_ = fs.Parse(args)

	pipelines, err := db.ListPipelines(database)
	if err != nil {
		return fmt.Errorf("failed to list pipelines: %w", err)
	}

	if len(pipelines) == 0 {
		fmt.Println("No pipelines found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTAGES")
	for _, pipeline := range pipelines {
		names := make([]string, len(pipeline.Stages))
		for i, stage := range pipeline.Stages {
			names[i] = stage.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", pipeline.ID, pipeline.Name, strings.Join(names, " → "))
	}
	return w.Flush()
}

// DeletePipelineCommand deletes a pipeline and its stages.
func DeletePipelineCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-pipeline", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: delete-pipeline <id>")
	}

	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	if err := db.DeletePipeline(database, id); err != nil {
		return fmt.Errorf("failed to delete pipeline: %w", err)
	}

	fmt.Printf("Deleted pipeline %s\n", id)
	return nil
}
