package cli

import "github.com/odysseus0/mdcopy/internal/model"

type OutputFormat = model.OutputFormat
type Clip = model.Clip
type ConvertResult = model.ConvertResult
type ClipListOptions = model.ClipListOptions
type SearchOptions = model.SearchOptions

const (
	OutputTable = model.OutputTable
	OutputJSON  = model.OutputJSON
	OutputWide  = model.OutputWide
)
