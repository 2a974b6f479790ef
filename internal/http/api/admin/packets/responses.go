package packets

// PlayerResponse mirrors model.Player but flattens times to RFC3339.
type PlayerResponse struct {
	ID        int    `json:"id"`
	PlayerID  string `json:"player_id"`
	Location  string `json:"location"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type PlaylistResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type ContentResponse struct {
	ID           int    `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	CreatedAt    string `json:"created_at"`
}

type PlaylistContentResponse struct {
	ID           int `json:"id"`
	PlaylistID   int `json:"playlist_id"`
	ContentID    int `json:"content_id"`
	ContentOrder int `json:"content_order"`
}

type AssignmentResponse struct {
	ID         int    `json:"id"`
	PlayerID   int    `json:"player_id"`
	PlaylistID int    `json:"playlist_id"`
	AssignedAt string `json:"assigned_at"`
}
