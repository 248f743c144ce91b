package cli

type RemoveClipResponse struct {
	RemovedClipID int64 `json:"removed_clip_id"`
}

type PickCancelledResponse struct {
	Cancelled bool   `json:"cancelled"`
	Source    string `json:"source"`
}
