package packets

type RegisterPlayerRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Location string `json:"location" binding:"required"`
}

type CreatePlaylistRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type UpdatePlayerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddContentToPlaylistRequest struct {
	ContentID int `json:"contentId" binding:"required"`
}

type AssignPlaylistRequest struct {
	PlaylistID int `json:"playlistId" binding:"required"`
}
