package transport

// SourceKind tells the client which grounding tool produced a citation.
type SourceKind string

const (
	SourceWeb  SourceKind = "web"
	SourceMaps SourceKind = "maps"
)

// Source is a citation attached to a grounded answer.
type Source struct {
	Title string     `json:"title"`
	URI   string     `json:"uri"`
	Type  SourceKind `json:"type"`
}

// Coordinates is a user location in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// AnswerResponse is the result of a one-shot assistant call.
type AnswerResponse struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}

// DescriptionResponse carries a generated listing description.
type DescriptionResponse struct {
	Text string `json:"text"`
}

// MarketNewsRequest asks about the Indian property market.
type MarketNewsRequest struct {
	Prompt string `json:"prompt" validate:"required,max=2000"`
}

// LocalInfoRequest asks about localities near the user.
type LocalInfoRequest struct {
	Prompt   string       `json:"prompt" validate:"required,max=2000"`
	Location *Coordinates `json:"location" validate:"omitempty"`
}

// SmartSearchRequest asks for an area summary. Location is optional.
type SmartSearchRequest struct {
	Query    string       `json:"query" validate:"required,max=500"`
	Location *Coordinates `json:"location" validate:"omitempty"`
}

// ChatSessionResponse identifies an open chat session.
type ChatSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// ChatMessageRequest is one user turn in a chat session.
type ChatMessageRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}
