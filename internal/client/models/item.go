package models

// Item is a CRUD record scoped to the authenticated user. The session core
// has no knowledge of item semantics beyond passing these through.
type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	OwnerID     string `json:"owner_id"`
}

// ItemDraft carries the user-editable fields for create and update calls.
// On update an empty title is omitted from the payload, which the server
// reads as "keep the current title".
type ItemDraft struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
}
