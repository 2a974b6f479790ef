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

type PlaylistController struct {
	store db.Store
}

func newPlaylistController(store db.Store) *PlaylistController {
	return &PlaylistController{store: store}
}

// PlaylistModule mounts playlist catalog endpoints.
func PlaylistModule(store db.Store) api.Module {
	ctl := newPlaylistController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/playlists", ctl.createPlaylist)
		c.GET("/playlists", ctl.listPlaylists)
		c.GET("/playlists/:id", ctl.getPlaylist)
		c.DELETE("/playlists/:id", ctl.deletePlaylist)
		c.POST("/playlists/:id/add-content", ctl.addContent)
	})
}

func (p *PlaylistController) createPlaylist(ctx *gin.Context) (any, *api.Error) {
	var req packets.CreatePlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("[playlist] create: bad request")
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "playlist name is required"}
	}

	pl, err := p.store.CreatePlaylist(req.Name, req.Description)
	if err != nil {
		log.Error().Err(err).Msg("[playlist] create: could not create playlist")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create playlist"}
	}

	return mapPlaylist(pl), nil
}

func (p *PlaylistController) listPlaylists(ctx *gin.Context) (any, *api.Error) {
	all, err := p.store.ListPlaylists()
	if err != nil {
		log.Error().Err(err).Msg("[playlist] list: could not list playlists")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list playlists"}
	}

	out := make([]packets.PlaylistResponse, 0, len(all))
	for _, pl := range all {
		out = append(out, mapPlaylist(pl))
	}
	return out, nil
}

func (p *PlaylistController) getPlaylist(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid playlist id"}
	}

	pl, err := p.store.GetPlaylistByID(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "playlist not found"}
		}
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not get playlist"}
	}
	return mapPlaylist(pl), nil
}

// deletePlaylist removes a playlist; its membership rows and any assignment
// cascade away atomically in the database.
func (p *PlaylistController) deletePlaylist(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid playlist id"}
	}

	if err := p.store.DeletePlaylist(id); err != nil {
		log.Error().Err(err).Int("id", id).Msg("[playlist] delete: could not delete playlist")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete playlist"}
	}

	invalidatePlaylistETag(id)

	return gin.H{"message": "playlist deleted"}, nil
}

// addContent appends a content item to the end of a playlist. Order
// computation is atomic in the store layer.
func (p *PlaylistController) addContent(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid playlist id"}
	}

	var req packets.AddContentToPlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "content ID is required"}
	}

	pc, err := p.store.AddContentToPlaylist(id, req.ContentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "playlist or content not found"}
		}
		log.Error().Err(err).Int("playlist_id", id).Msg("[playlist] add content: could not add content")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not add content to playlist"}
	}

	invalidatePlaylistETag(id)

	return mapPlaylistContent(pc), nil
}

func mapPlaylist(pl model.Playlist) packets.PlaylistResponse {
	return packets.PlaylistResponse{
		ID:          pl.ID,
		Name:        pl.Name,
		Description: pl.Description,
		CreatedAt:   pl.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   pl.UpdatedAt.Format(time.RFC3339),
	}
}

func mapPlaylistContent(pc model.PlaylistContent) packets.PlaylistContentResponse {
	return packets.PlaylistContentResponse{
		ID:           pc.ID,
		PlaylistID:   pc.PlaylistID,
		ContentID:    pc.ContentID,
		ContentOrder: pc.ContentOrder,
	}
}
