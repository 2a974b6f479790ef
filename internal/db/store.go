// exposes a Store interface that is passed to API handlers
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/lumacast/lumacast/internal/model"
)

type Store interface {
	// player functions
	RegisterPlayer(playerID, location string) (model.Player, error)
	GetPlayerByPlayerID(playerID string) (model.Player, error)
	ListPlayers() ([]model.Player, error)
	UpdatePlayerStatus(playerID, status string) (model.Player, error)
	DeletePlayer(id int) error

	// playlist functions
	CreatePlaylist(name string, description *string) (model.Playlist, error)
	GetPlaylistByID(id int) (model.Playlist, error)
	ListPlaylists() ([]model.Playlist, error)
	DeletePlaylist(id int) error
	AddContentToPlaylist(playlistID, contentID int) (model.PlaylistContent, error)
	ListPlaylistContents(playlistID int) ([]model.PlaylistContent, error)

	// content functions
	CreateContent(filename, originalName, contentType, url string) (model.Content, error)
	GetContentByID(id int) (model.Content, error)
	ListContent() ([]model.Content, error)
	DeleteContent(id int) error
	GetPlaylistsUsingContent(contentID int) ([]int, error)

	// assignment & delivery
	AssignPlaylistToPlayer(playerID string, playlistID int) (model.Assignment, error)
	GetAssignedPlaylistID(playerID string) (int, error)
	ResolvePlaylistForPlayer(playerID string) (model.ResolvedPlaylist, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}
