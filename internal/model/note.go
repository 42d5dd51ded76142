package model

import "time"

// Note references its folder and tags by ID only. Neither reference is
// enforced by the store, so a note may point at a folder or tag that no
// longer exists.
type Note struct {
	ID        int64
	Title     string
	Content   *string
	FolderID  *int64
	TagIDs    []int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
