package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Resource URIs
const (
	uriCatalog  = "motomatch://catalog"
	uriSegments = "motomatch://segments"
	uriStats    = "motomatch://stats"
)

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         uriCatalog,
		Name:        "Catalog",
		Description: "Published models with segment, year, stock and availability",
		MimeType:    "text/plain",
	},
	{
		URI:         uriSegments,
		Name:        "Segments",
		Description: "Segment keywords recognised in queries and the segments related to each",
		MimeType:    "text/plain",
	},
	{
		URI:         uriStats,
		Name:        "Catalog Statistics",
		Description: "Model counts, stock totals and per-segment breakdown",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
