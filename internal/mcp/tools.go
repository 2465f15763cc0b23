package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "match_model",
		Description: "Find the catalog model that best matches a customer's free-text request (model name, segment such as 'naked' or 'doble proposito', and optionally a year). Returns the winner with its confidence and alternatives, or the closest candidates when no match is confident enough.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The customer's request, e.g. 'mt 07 naked 2024'",
				},
				"reference_year": map[string]interface{}{
					"type":        "integer",
					"description": "Year used as 'now' when rewarding recent models (default: configured year or current year)",
				},
			},
			"required": []string{"query"},
		},
	},
	{
		Name:        "list_models",
		Description: "List catalog models in catalog order with optional filters.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"segment": map[string]interface{}{
					"type":        "string",
					"description": "Filter by segment (case-insensitive partial match)",
				},
				"active_only": map[string]interface{}{
					"type":        "boolean",
					"description": "Only include active models",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 50)",
				},
			},
		},
	},
	{
		Name:        "get_model",
		Description: "Get one catalog model by name (case-insensitive) or ID.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"identifier": map[string]interface{}{
					"type":        "string",
					"description": "Model name or ID",
				},
			},
			"required": []string{"identifier"},
		},
	},
	{
		Name:        "get_catalog_stats",
		Description: "Get catalog statistics: model counts, stock and a per-segment breakdown.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
}
