package domain

// GroundingSource is one side of a grounding citation.
type GroundingSource struct {
	URI   string `json:"uri,omitempty" yaml:"uri,omitempty"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// GroundingChunk is a citation returned with a grounded answer. Either
// side may be nil.
type GroundingChunk struct {
	Maps *GroundingSource `json:"maps,omitempty" yaml:"maps,omitempty"`
	Web  *GroundingSource `json:"web,omitempty" yaml:"web,omitempty"`
}

// GroundingTool names a retrieval capability requested from the backend.
type GroundingTool string

const (
	GroundingToolMaps      GroundingTool = "maps"
	GroundingToolWebSearch GroundingTool = "web_search"
)

// GroundingRequest is a fully built recommendation request.
type GroundingRequest struct {
	Prompt string
	Tools  []GroundingTool
	// Anchor is nil when the user location is unknown.
	Anchor *Location
}
