package mcp

import "github.com/mark3labs/mcp-go/mcp"

// getRecordTool defines the get_record MCP tool.
var getRecordTool = mcp.NewTool("get_record",
	mcp.WithDescription("Get the full catalog entry for one creature: number, types, size, abilities, description and base stats."),
	mcp.WithNumber("key",
		mcp.Description("Catalog number of the record (1..N)"),
	),
	mcp.WithString("name",
		mcp.Description("Creature name, used when key is not given"),
	),
)

// searchRecordsTool defines the search_records MCP tool.
var searchRecordsTool = mcp.NewTool("search_records",
	mcp.WithDescription("Search loaded records by name. Plain terms match as a substring; terms with * ? or [ are glob patterns."),
	mcp.WithString("term",
		mcp.Required(),
		mcp.Description("Search term"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 20)"),
	),
)

// getEvolutionTool defines the get_evolution MCP tool.
var getEvolutionTool = mcp.NewTool("get_evolution",
	mcp.WithDescription("Get the evolution line of a record, following the first branch at every stage."),
	mcp.WithNumber("key",
		mcp.Required(),
		mcp.Description("Catalog number of the record"),
	),
)

// catalogStatusTool defines the catalog_status MCP tool.
var catalogStatusTool = mcp.NewTool("catalog_status",
	mcp.WithDescription("Report how many records have fully loaded."),
)
