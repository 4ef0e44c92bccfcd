package dto

// UpdateDraftRequest updates one field of the active edit draft.
// Values travel as strings; numeric validation is deferred to save.
type UpdateDraftRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// DeleteResponse reports the outcome of a row deletion.
type DeleteResponse struct {
	Removed int  `json:"removed"`
	Hidden  bool `json:"hidden"`
}

// RefreshResponse reports the outcome of a manual refresh.
type RefreshResponse struct {
	Items int `json:"items"`
}
