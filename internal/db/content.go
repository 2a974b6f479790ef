package db

import (
	"github.com/rs/zerolog/log"

	"github.com/lumacast/lumacast/internal/model"
)

func (s *pgStore) CreateContent(filename, originalName, contentType, url string) (model.Content, error) {
	var c model.Content
	const q = `
	INSERT INTO contents (filename, original_name, type, url, created_at)
	VALUES ($1, $2, $3, $4, now())
	RETURNING id, filename, original_name, type, url, created_at;`

	if err := s.db.Get(&c, q, filename, originalName, contentType, url); err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("[db] CreateContent: failed to insert content")
		return model.Content{}, translate(err)
	}
	return c, nil
}

func (s *pgStore) GetContentByID(id int) (model.Content, error) {
	var c model.Content
	const q = `
	SELECT id, filename, original_name, type, url, created_at
	FROM contents
	WHERE id = $1;`

	if err := s.db.Get(&c, q, id); err != nil {
		log.Error().Err(err).Int("id", id).Msg("[db] GetContentByID: failed to get content")
		return model.Content{}, translate(err)
	}
	return c, nil
}

func (s *pgStore) ListContent() ([]model.Content, error) {
	var all []model.Content
	const q = `
	SELECT id, filename, original_name, type, url, created_at
	FROM contents
	ORDER BY created_at DESC, id DESC;`

	if err := s.db.Select(&all, q); err != nil {
		log.Error().Err(err).Msg("[db] ListContent: failed to select content")
		return nil, translate(err)
	}
	return all, nil
}

// DeleteContent removes the content row; every playlist_contents row that
// references it goes with it via ON DELETE CASCADE, leaving playlists intact
// but shorter.
func (s *pgStore) DeleteContent(id int) error {
	if _, err := s.db.Exec(`DELETE FROM contents WHERE id = $1;`, id); err != nil {
		log.Error().Err(err).Int("id", id).Msg("[db] DeleteContent: failed to delete content")
		return translate(err)
	}
	return nil
}

// GetPlaylistsUsingContent returns ids of playlists that contain the content
// item, so callers can invalidate cached payloads before deleting it.
func (s *pgStore) GetPlaylistsUsingContent(contentID int) ([]int, error) {
	var ids []int
	const q = `
	SELECT DISTINCT playlist_id
	FROM playlist_contents
	WHERE content_id = $1;`

	if err := s.db.Select(&ids, q, contentID); err != nil {
		log.Error().Err(err).Int("content_id", contentID).Msg("[db] GetPlaylistsUsingContent: failed to select playlists")
		return nil, translate(err)
	}
	return ids, nil
}
