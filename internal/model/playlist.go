package model

import "time"

type Playlist struct {
	ID          int       `db:"id"          json:"id"`
	Name        string    `db:"name"        json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`
}

// PlaylistContent is one row of a playlist's ordering relation. ContentOrder
// values within a playlist are strictly increasing in append order.
type PlaylistContent struct {
	ID           int `db:"id"            json:"id"`
	PlaylistID   int `db:"playlist_id"   json:"playlist_id"`
	ContentID    int `db:"content_id"    json:"content_id"`
	ContentOrder int `db:"content_order" json:"content_order"`
}

// Assignment binds a player to its current playlist. At most one row exists
// per player; assigning replaces, never merges.
type Assignment struct {
	ID         int       `db:"id"          json:"id"`
	PlayerID   int       `db:"player_id"   json:"player_id"`
	PlaylistID int       `db:"playlist_id" json:"playlist_id"`
	AssignedAt time.Time `db:"assigned_at" json:"assigned_at"`
}

// ResolvedContent is the slice of a content row a device needs to render it.
type ResolvedContent struct {
	ID           int    `db:"id"            json:"id"`
	OriginalName string `db:"original_name" json:"original_name"`
	Type         string `db:"type"          json:"type"`
	URL          string `db:"url"           json:"url"`
}

// ResolvedPlaylist is the full payload a polling player receives: playlist
// metadata plus its contents ordered by content_order.
type ResolvedPlaylist struct {
	PlaylistID  int               `db:"playlist_id" json:"playlist_id"`
	Name        string            `db:"name"        json:"name"`
	Description *string           `db:"description" json:"description,omitempty"`
	UpdatedAt   time.Time         `db:"updated_at"  json:"updated_at"`
	Contents    []ResolvedContent `db:"-"           json:"contents"`
}
