package db

import (
	"github.com/rs/zerolog/log"

	"github.com/lumacast/lumacast/internal/model"
)

func (s *pgStore) CreatePlaylist(name string, description *string) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	INSERT INTO playlists (name, description, created_at, updated_at)
	VALUES ($1, $2, now(), now())
	RETURNING id, name, description, created_at, updated_at;`

	if err := s.db.Get(&p, q, name, description); err != nil {
		log.Error().Err(err).Msg("[db] CreatePlaylist: failed to insert playlist")
		return model.Playlist{}, translate(err)
	}
	return p, nil
}

func (s *pgStore) GetPlaylistByID(id int) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	SELECT id, name, description, created_at, updated_at
	FROM playlists
	WHERE id = $1;`

	if err := s.db.Get(&p, q, id); err != nil {
		log.Error().Err(err).Int("id", id).Msg("[db] GetPlaylistByID: failed to get playlist")
		return model.Playlist{}, translate(err)
	}
	return p, nil
}

func (s *pgStore) ListPlaylists() ([]model.Playlist, error) {
	var out []model.Playlist
	const q = `
	SELECT id, name, description, created_at, updated_at
	FROM playlists
	ORDER BY created_at DESC, id DESC;`

	if err := s.db.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("[db] ListPlaylists: failed to select playlists")
		return nil, translate(err)
	}
	return out, nil
}

// DeletePlaylist removes the playlist; its playlist_contents rows and any
// assignment rows go with it via ON DELETE CASCADE.
func (s *pgStore) DeletePlaylist(id int) error {
	if _, err := s.db.Exec(`DELETE FROM playlists WHERE id = $1;`, id); err != nil {
		log.Error().Err(err).Int("id", id).Msg("[db] DeletePlaylist: failed to delete playlist")
		return translate(err)
	}
	return nil
}

// AddContentToPlaylist appends a content item at the end of a playlist. The
// whole read-max-then-insert sequence runs in one transaction with the
// playlist row locked, so concurrent appends to the same playlist cannot
// compute the same content_order.
func (s *pgStore) AddContentToPlaylist(playlistID, contentID int) (pc model.PlaylistContent, err error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return model.PlaylistContent{}, err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return
			}
		} else {
			if cmErr := tx.Commit(); cmErr != nil {
				err = cmErr
			}
		}
	}()

	// lock the playlist row; also validates the playlist exists
	var pid int
	if err = tx.Get(&pid, `SELECT id FROM playlists WHERE id = $1 FOR UPDATE;`, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[db] AddContentToPlaylist: unknown playlist")
		err = translate(err)
		return model.PlaylistContent{}, err
	}

	var cid int
	if err = tx.Get(&cid, `SELECT id FROM contents WHERE id = $1;`, contentID); err != nil {
		log.Error().Err(err).Int("content_id", contentID).Msg("[db] AddContentToPlaylist: unknown content")
		err = translate(err)
		return model.PlaylistContent{}, err
	}

	var nextOrder int
	if err = tx.Get(&nextOrder, `
		SELECT COALESCE(MAX(content_order), 0) + 1
		FROM playlist_contents
		WHERE playlist_id = $1;`, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[db] AddContentToPlaylist: failed to compute next order")
		return model.PlaylistContent{}, err
	}

	if err = tx.Get(&pc, `
		INSERT INTO playlist_contents (playlist_id, content_id, content_order)
		VALUES ($1, $2, $3)
		RETURNING id, playlist_id, content_id, content_order;`,
		playlistID, contentID, nextOrder,
	); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[db] AddContentToPlaylist: failed to insert row")
		err = translate(err)
		return model.PlaylistContent{}, err
	}

	if _, err = tx.Exec(`UPDATE playlists SET updated_at = now() WHERE id = $1;`, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[db] AddContentToPlaylist: failed to bump updated_at")
		return model.PlaylistContent{}, err
	}

	return pc, err
}

func (s *pgStore) ListPlaylistContents(playlistID int) ([]model.PlaylistContent, error) {
	var list []model.PlaylistContent
	const q = `
	SELECT id, playlist_id, content_id, content_order
	FROM playlist_contents
	WHERE playlist_id = $1
	ORDER BY content_order;`

	if err := s.db.Select(&list, q, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[db] ListPlaylistContents: failed to select rows")
		return nil, translate(err)
	}
	return list, nil
}
