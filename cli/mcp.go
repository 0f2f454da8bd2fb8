// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server for Claude Desktop integration
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/harperreed/dealflow/handlers"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(db *sql.DB) error {
	log.Println("Starting Dealflow MCP Server...")

	contactHandlers := handlers.NewContactHandlers(db)
	dealHandlers := handlers.NewDealHandlers(db)
	pipelineHandlers := handlers.NewPipelineHandlers(db)
	taskHandlers := handlers.NewTaskHandlers(db)
	noteHandlers := handlers.NewNoteHandlers(db)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "dealflow",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_contact",
		Description: "Create a new contact with validated emails, phones, and address",
	}, contactHandlers.CreateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search for contacts by name, company, or email",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact and its notes",
	}, contactHandlers.DeleteContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_deal",
		Description: "Create a new deal in a pipeline stage",
	}, dealHandlers.CreateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_deals",
		Description: "List deals filtered by status and pipeline",
	}, dealHandlers.FindDeals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mark_deal_won",
		Description: "Mark an open deal as won",
	}, dealHandlers.MarkDealWon)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mark_deal_lost",
		Description: "Mark an open deal as lost with a reason",
	}, dealHandlers.MarkDealLost)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_deal_stage",
		Description: "Move an open deal to another pipeline stage",
	}, dealHandlers.MoveDealStage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_deal",
		Description: "Delete a deal",
	}, dealHandlers.DeleteDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_pipeline",
		Description: "Create a pipeline with ordered, uniquely named stages",
	}, pipelineHandlers.CreatePipeline)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_pipelines",
		Description: "List all pipelines with their stages",
	}, pipelineHandlers.ListPipelines)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_pipeline",
		Description: "Delete a pipeline and its stages",
	}, pipelineHandlers.DeletePipeline)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_task",
		Description: "Create a task with a due date, status, and priority",
	}, taskHandlers.CreateTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks ordered by due date, optionally filtered by status",
	}, taskHandlers.ListTasks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task as completed",
	}, taskHandlers.CompleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task",
	}, taskHandlers.DeleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact_note",
		Description: "Attach a note to a contact",
	}, noteHandlers.AddContactNote)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_contact_notes",
		Description: "List a contact's notes, newest first, one page at a time",
	}, noteHandlers.ListContactNotes)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
