package endpoints

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lumacast/lumacast/internal/db"
	"github.com/lumacast/lumacast/internal/http/api"
	"github.com/lumacast/lumacast/internal/http/api/admin/packets"
	"github.com/lumacast/lumacast/internal/model"
)

type PlayerController struct {
	store db.Store
}

func newPlayerController(store db.Store) *PlayerController {
	return &PlayerController{store: store}
}

// PlayerModule mounts player registry and assignment endpoints.
func PlayerModule(store db.Store) api.Module {
	ctl := newPlayerController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/player/register", ctl.registerPlayer)
		c.GET("/player/:playerId", ctl.getPlayer)
		c.GET("/players", ctl.listPlayers)
		c.PUT("/players/:playerId/status", ctl.updateStatus)
		c.DELETE("/players/:playerId", ctl.deletePlayer)
		c.POST("/players/:playerId/assign-playlist", ctl.assignPlaylist)
	})
}

// registerPlayer creates a player row for an externally chosen player id.
// A duplicate id is a conflict, never an overwrite.
func (p *PlayerController) registerPlayer(ctx *gin.Context) (any, *api.Error) {
	var req packets.RegisterPlayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("[player] register: bad request")
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "player ID and location are required"}
	}

	player, err := p.store.RegisterPlayer(req.PlayerID, req.Location)
	if err != nil {
		if errors.Is(err, db.ErrConflict) {
			return nil, &api.Error{Code: http.StatusConflict, Message: "player already registered"}
		}
		log.Error().Err(err).Str("player_id", req.PlayerID).Msg("[player] register: could not create player")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not register player"}
	}

	return mapPlayer(player), nil
}

func (p *PlayerController) getPlayer(ctx *gin.Context) (any, *api.Error) {
	player, err := p.store.GetPlayerByPlayerID(ctx.Param("playerId"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "player not found"}
		}
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not get player"}
	}
	return mapPlayer(player), nil
}

func (p *PlayerController) listPlayers(ctx *gin.Context) (any, *api.Error) {
	all, err := p.store.ListPlayers()
	if err != nil {
		log.Error().Err(err).Msg("[player] list: could not list players")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list players"}
	}

	out := make([]packets.PlayerResponse, 0, len(all))
	for _, pl := range all {
		out = append(out, mapPlayer(pl))
	}
	return out, nil
}

// updateStatus flips a player between online and offline, for operators
// marking devices out of rotation.
func (p *PlayerController) updateStatus(ctx *gin.Context) (any, *api.Error) {
	var req packets.UpdatePlayerStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "status is required"}
	}
	if req.Status != model.PlayerStatusOnline && req.Status != model.PlayerStatusOffline {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "status must be online or offline"}
	}

	player, err := p.store.UpdatePlayerStatus(ctx.Param("playerId"), req.Status)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "player not found"}
		}
		log.Error().Err(err).Str("player_id", ctx.Param("playerId")).Msg("[player] status: could not update player")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update player status"}
	}
	return mapPlayer(player), nil
}

// deletePlayer removes a player by its internal id; the assignment row
// cascades away with it.
func (p *PlayerController) deletePlayer(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("playerId"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid player id"}
	}

	if err := p.store.DeletePlayer(id); err != nil {
		log.Error().Err(err).Int("id", id).Msg("[player] delete: could not delete player")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete player"}
	}
	return gin.H{"message": "player deleted"}, nil
}

// assignPlaylist replaces the player's current assignment.
func (p *PlayerController) assignPlaylist(ctx *gin.Context) (any, *api.Error) {
	var req packets.AssignPlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "playlist ID is required"}
	}

	playerID := ctx.Param("playerId")

	// remember the outgoing playlist so its cached ETag can be dropped too
	oldPlaylistID, oldErr := p.store.GetAssignedPlaylistID(playerID)

	assignment, err := p.store.AssignPlaylistToPlayer(playerID, req.PlaylistID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "player or playlist not found"}
		}
		log.Error().Err(err).Str("player_id", playerID).Msg("[player] assign: could not assign playlist")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not assign playlist"}
	}

	// the player's next poll must see the new playlist, not a cached 304
	if oldErr == nil && oldPlaylistID != req.PlaylistID {
		invalidatePlaylistETag(oldPlaylistID)
	}
	invalidatePlaylistETag(req.PlaylistID)

	return mapAssignment(assignment), nil
}

func mapPlayer(p model.Player) packets.PlayerResponse {
	return packets.PlayerResponse{
		ID:        p.ID,
		PlayerID:  p.PlayerID,
		Location:  p.Location,
		Status:    p.Status,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

func mapAssignment(a model.Assignment) packets.AssignmentResponse {
	return packets.AssignmentResponse{
		ID:         a.ID,
		PlayerID:   a.PlayerID,
		PlaylistID: a.PlaylistID,
		AssignedAt: a.AssignedAt.Format(time.RFC3339),
	}
}
