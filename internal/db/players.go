package db

import (
	"github.com/rs/zerolog/log"

	"github.com/lumacast/lumacast/internal/model"
)

func (s *pgStore) RegisterPlayer(playerID, location string) (model.Player, error) {
	var p model.Player
	const q = `
	INSERT INTO players (player_id, location, status, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id, player_id, location, status, created_at, updated_at;`

	if err := s.db.Get(&p, q, playerID, location, model.PlayerStatusOnline); err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("[db] RegisterPlayer: failed to insert player")
		return model.Player{}, translate(err)
	}
	return p, nil
}

func (s *pgStore) GetPlayerByPlayerID(playerID string) (model.Player, error) {
	var p model.Player
	const q = `
	SELECT id, player_id, location, status, created_at, updated_at
	FROM players
	WHERE player_id = $1;`

	if err := s.db.Get(&p, q, playerID); err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("[db] GetPlayerByPlayerID: failed to get player")
		return model.Player{}, translate(err)
	}
	return p, nil
}

func (s *pgStore) ListPlayers() ([]model.Player, error) {
	var out []model.Player
	const q = `
	SELECT id, player_id, location, status, created_at, updated_at
	FROM players
	ORDER BY id;`

	if err := s.db.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("[db] ListPlayers: failed to select players")
		return nil, translate(err)
	}
	return out, nil
}

// UpdatePlayerStatus flips a player between online and offline. The caller
// validates the status value; the database just records it.
func (s *pgStore) UpdatePlayerStatus(playerID, status string) (model.Player, error) {
	var p model.Player
	const q = `
	UPDATE players
	SET status = $2, updated_at = now()
	WHERE player_id = $1
	RETURNING id, player_id, location, status, created_at, updated_at;`

	if err := s.db.Get(&p, q, playerID, status); err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("[db] UpdatePlayerStatus: failed to update player")
		return model.Player{}, translate(err)
	}
	return p, nil
}

// DeletePlayer removes the player row; the assignment row, if any, goes with
// it via ON DELETE CASCADE.
func (s *pgStore) DeletePlayer(id int) error {
	if _, err := s.db.Exec(`DELETE FROM players WHERE id = $1;`, id); err != nil {
		log.Error().Err(err).Int("id", id).Msg("[db] DeletePlayer: failed to delete player")
		return translate(err)
	}
	return nil
}
