package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var captureToolDef = mcp.NewTool("flow_capture",
	mcp.WithDescription("Analyze a free-text brain dump into structured items and add them to the board. Returns the created items plus a reality check on the workload."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The raw brain dump to analyze"),
	),
)

var boardToolDef = mcp.NewTool("flow_board",
	mcp.WithDescription("Render the planning board: the today, this_week, soon, and someday columns with per-column planned minutes, plus inbox and done counts."),
)

var listToolDef = mcp.NewTool("flow_list",
	mcp.WithDescription("List items newest first, optionally filtered by status."),
	mcp.WithString("status",
		mcp.Description("Filter to one status: inbox, today, this_week, soon, someday, done"),
	),
)

var moveToolDef = mcp.NewTool("flow_move",
	mcp.WithDescription("Move an item to a new status. Unknown ids report moved=false instead of failing."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("The item id"),
	),
	mcp.WithString("status",
		mcp.Required(),
		mcp.Description("Target status: inbox, today, this_week, soon, someday, done"),
	),
)

var doneToolDef = mcp.NewTool("flow_done",
	mcp.WithDescription("Mark an item finished, stamping its completion time."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("The item id"),
	),
)

var deleteToolDef = mcp.NewTool("flow_delete",
	mcp.WithDescription("Delete an item permanently. Unknown ids report deleted=false instead of failing."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("The item id"),
	),
)

var questToolDef = mcp.NewTool("flow_quest",
	mcp.WithDescription("Pick a random someday item and promote it to today. Fails with EMPTY_POOL when nothing is parked in someday."),
)

var badgesToolDef = mcp.NewTool("flow_badges",
	mcp.WithDescription("Evaluate all achievements against the current collection."),
)

var minutesToolDef = mcp.NewTool("flow_minutes",
	mcp.WithDescription("Sum the planned minutes for one status column (default today)."),
	mcp.WithString("status",
		mcp.Description("Status column to sum: inbox, today, this_week, soon, someday, done"),
	),
)
