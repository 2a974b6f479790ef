package db

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/lumacast/lumacast/internal/model"
)

// AssignPlaylistToPlayer replaces the player's current assignment with the
// given playlist in a single transaction. Post-condition: exactly one
// assignment row exists for the player. player_playlists.player_id also
// carries a UNIQUE constraint, so the invariant holds even against a buggy
// caller bypassing this path.
func (s *pgStore) AssignPlaylistToPlayer(playerID string, playlistID int) (a model.Assignment, err error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return model.Assignment{}, err
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

	// resolve the external player id and lock the row so two concurrent
	// assigns for the same player serialize
	var internalID int
	if err = tx.Get(&internalID, `SELECT id FROM players WHERE player_id = $1 FOR UPDATE;`, playerID); err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("[db] AssignPlaylistToPlayer: unknown player")
		err = translate(err)
		return model.Assignment{}, err
	}

	var pid int
	if err = tx.Get(&pid, `SELECT id FROM playlists WHERE id = $1;`, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("[db] AssignPlaylistToPlayer: unknown playlist")
		err = translate(err)
		return model.Assignment{}, err
	}

	if _, err = tx.Exec(`DELETE FROM player_playlists WHERE player_id = $1;`, internalID); err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("[db] AssignPlaylistToPlayer: failed to clear old assignment")
		return model.Assignment{}, err
	}

	if err = tx.Get(&a, `
		INSERT INTO player_playlists (player_id, playlist_id, assigned_at)
		VALUES ($1, $2, now())
		RETURNING id, player_id, playlist_id, assigned_at;`,
		internalID, pid,
	); err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("[db] AssignPlaylistToPlayer: failed to insert assignment")
		err = translate(err)
		return model.Assignment{}, err
	}

	return a, err
}

// GetAssignedPlaylistID returns the playlist currently assigned to a player.
// It is a single indexed lookup, cheap enough for the polling hot path.
func (s *pgStore) GetAssignedPlaylistID(playerID string) (int, error) {
	var id int
	const q = `
	SELECT pp.playlist_id
	FROM player_playlists pp
	JOIN players p ON pp.player_id = p.id
	WHERE p.player_id = $1;`

	if err := s.db.Get(&id, q, playerID); err != nil {
		return 0, translate(err)
	}
	return id, nil
}

// ResolvePlaylistForPlayer joins players -> player_playlists -> playlists ->
// playlist_contents -> contents inside one repeatable-read transaction, so a
// polling device observes either the state before a concurrent mutation or
// after it, never a half-applied replace.
func (s *pgStore) ResolvePlaylistForPlayer(playerID string) (out model.ResolvedPlaylist, err error) {
	tx, err := s.db.BeginTxx(context.Background(), &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return model.ResolvedPlaylist{}, err
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

	const playlistQ = `
	SELECT pl.id AS playlist_id, pl.name, pl.description, pl.updated_at
	FROM player_playlists pp
	JOIN playlists pl ON pp.playlist_id = pl.id
	JOIN players p ON pp.player_id = p.id
	WHERE p.player_id = $1;`

	// an unknown player and an unassigned player both land here as ErrNoRows
	if err = tx.Get(&out, playlistQ, playerID); err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("[db] ResolvePlaylistForPlayer: no playlist for player")
		err = translate(err)
		return model.ResolvedPlaylist{}, err
	}

	const contentsQ = `
	SELECT c.id, c.original_name, c.type, c.url
	FROM playlist_contents pc
	JOIN contents c ON pc.content_id = c.id
	WHERE pc.playlist_id = $1
	ORDER BY pc.content_order ASC;`

	if err = tx.Select(&out.Contents, contentsQ, out.PlaylistID); err != nil {
		log.Error().Err(err).Int("playlist_id", out.PlaylistID).Msg("[db] ResolvePlaylistForPlayer: failed to load contents")
		return model.ResolvedPlaylist{}, err
	}
	if out.Contents == nil {
		out.Contents = []model.ResolvedContent{}
	}

	return out, err
}
