package model

import "time"

type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputWide  OutputFormat = "wide"
)

// Mode records how the converted element was chosen.
type Mode string

const (
	ModeDocument  Mode = "document"
	ModePointer   Mode = "pointer"
	ModeSelection Mode = "selection"
)

type Clip struct {
	ID        int64     `json:"id"`
	Source    string    `json:"source"`
	Mode      Mode      `json:"mode"`
	Target    string    `json:"target,omitempty"`
	Engine    string    `json:"engine"`
	Markdown  string    `json:"markdown"`
	CreatedAt time.Time `json:"created_at"`
}

type ConvertResult struct {
	Source   string `json:"source"`
	Mode     Mode   `json:"mode"`
	Target   string `json:"target,omitempty"`
	Element  string `json:"element"`
	Engine   string `json:"engine"`
	Markdown string `json:"markdown"`
	Copied   bool   `json:"copied"`
	ClipID   int64  `json:"clip_id,omitempty"`
	Warning  string `json:"warning,omitempty"`
}

type SaveClipInput struct {
	Source   string
	Mode     Mode
	Target   string
	Engine   string
	Markdown string
}

type ClipListOptions struct {
	Mode  string
	Limit int
}

type SearchOptions struct {
	Query string
	Limit int
}
