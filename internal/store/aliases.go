package store

import "github.com/odysseus0/mdcopy/internal/model"

type Clip = model.Clip
type SaveClipInput = model.SaveClipInput
type ClipListOptions = model.ClipListOptions
type SearchOptions = model.SearchOptions
type Mode = model.Mode

const (
	ModeDocument  = model.ModeDocument
	ModePointer   = model.ModePointer
	ModeSelection = model.ModeSelection
)
