package matcher

// SegmentVocabulary lists the segment keywords recognised in queries.
// Order matters: the first entry found in a query wins.
var SegmentVocabulary = []string{
	"SCOOTER",
	"DEPORTIVA",
	"NAKED",
	"TOURING",
	"ADVENTURE",
	"DOBLE PROPOSITO",
	"DUAL SPORT",
	"CRUISER",
	"TRAIL",
	"ENDURO",
	"RETRO",
	"CAFE RACER",
	"SPORT",
	"URBAN",
}

// SegmentFamily groups a keyword with the catalog segments considered close to it
type SegmentFamily struct {
	Family  string   `json:"family"`
	Related []string `json:"related"`
}

// RelatedSegments is the relatedness table used by the segment scorer
var RelatedSegments = []SegmentFamily{
	{Family: "DEPORTIVA", Related: []string{"SPORT", "SUPERSPORT"}},
	{Family: "DOBLE PROPOSITO", Related: []string{"DUAL SPORT", "ADVENTURE", "TRAIL", "ENDURO"}},
	{Family: "ADVENTURE", Related: []string{"DOBLE PROPOSITO", "DUAL SPORT", "TRAIL", "TOURING"}},
	{Family: "NAKED", Related: []string{"SPORT", "URBAN", "RETRO"}},
	{Family: "CRUISER", Related: []string{"TOURING", "RETRO"}},
	{Family: "SCOOTER", Related: []string{"URBAN"}},
}
