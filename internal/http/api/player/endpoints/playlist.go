package endpoints

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lumacast/lumacast/internal/db"
	"github.com/lumacast/lumacast/internal/http/api"
	"github.com/lumacast/lumacast/internal/redis"
)

type DeliveryController struct {
	store db.Store
}

func newDeliveryController(store db.Store) *DeliveryController {
	return &DeliveryController{store: store}
}

// DeliveryModule mounts the one read path a device uses in steady state.
func DeliveryModule(store db.Store) api.Module {
	ctl := newDeliveryController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.RawGET("/players/:playerId/playlist", ctl.getPlaylistForPlayer)
	})
}

// getPlaylistForPlayer resolves the full ordered playlist for a polling
// player. The payload hash doubles as an ETag so an unchanged playlist costs
// a fleet of frequent pollers a 304 instead of a body. The current hash is
// kept in redis keyed by playlist; a conditional poll that matches it is
// answered without resolving the playlist at all, and mutations drop the key
// so the next poll falls through to a fresh resolve.
func (d *DeliveryController) getPlaylistForPlayer(ctx *gin.Context) {
	playerID := ctx.Param("playerId")

	match := ctx.GetHeader("If-None-Match")
	if match == "" {
		match = ctx.GetHeader("X-If-None-Match")
	}

	if match != "" {
		if playlistID, err := d.store.GetAssignedPlaylistID(playerID); err == nil {
			key := fmt.Sprintf("playlist:%d:etag", playlistID)
			if cached, ok := redis.Get(ctx, key); ok && cached == match {
				ctx.Header("ETag", cached)
				ctx.Header("X-Content-ETag", cached)
				ctx.Status(http.StatusNotModified)
				return
			}
		}
	}

	resolved, err := d.store.ResolvePlaylistForPlayer(playerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "no playlist assigned to this player"})
			return
		}
		log.Error().Err(err).Str("player_id", playerID).Msg("[delivery] could not resolve playlist")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve playlist"})
		return
	}

	payload, err := json.Marshal(resolved)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve playlist"})
		return
	}
	etag := fmt.Sprintf("\"%x\"", sha256.Sum256(payload))

	// repopulate the cache so later conditional polls short-circuit above
	redis.Set(ctx, fmt.Sprintf("playlist:%d:etag", resolved.PlaylistID), etag, 0)

	ctx.Header("ETag", etag)
	ctx.Header("X-Content-ETag", etag)

	if match != "" && match == etag {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"playlist": resolved})
}
