package endpoints

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lumacast/lumacast/internal/redis"
)

// invalidatePlaylistETag drops the cached payload hash for a playlist so
// every player polling it refetches on its next cycle instead of getting a
// 304 against stale content.
func invalidatePlaylistETag(playlistID int) {
	if redis.Rdb == nil {
		return
	}
	key := fmt.Sprintf("playlist:%d:etag", playlistID)
	if err := redis.Rdb.Del(context.Background(), key).Err(); err != nil {
		log.Warn().Err(err).Str("etag_key", key).Msg("failed to invalidate playlist ETag cache")
		return
	}
	log.Debug().Int("playlist_id", playlistID).Str("etag_key", key).Msg("invalidated playlist ETag cache")
}
