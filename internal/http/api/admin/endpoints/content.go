package endpoints

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lumacast/lumacast/internal/db"
	"github.com/lumacast/lumacast/internal/http/api"
	"github.com/lumacast/lumacast/internal/http/api/admin/packets"
	"github.com/lumacast/lumacast/internal/model"
	"github.com/lumacast/lumacast/internal/storage"
)

type ContentController struct {
	store   db.Store
	storage storage.Storage
}

func newContentController(store db.Store, storageSystem storage.Storage) *ContentController {
	return &ContentController{store: store, storage: storageSystem}
}

// ContentModule mounts content store endpoints.
func ContentModule(store db.Store, storageSystem storage.Storage) api.Module {
	ctl := newContentController(store, storageSystem)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/contents", ctl.uploadContent)
		c.GET("/contents", ctl.listContent)
		c.GET("/contents/:id", ctl.getContent)
		c.DELETE("/contents/:id", ctl.deleteContent)
	})
}

// uploadContent accepts a multipart upload ("contentFile" field), persists
// the bytes through the storage backend and records the asset. The content
// type is the major MIME component of the uploaded file.
func (c *ContentController) uploadContent(ctx *gin.Context) (any, *api.Error) {
	fileHeader, err := ctx.FormFile("contentFile")
	if err != nil {
		log.Warn().Err(err).Msg("[content] upload: missing file")
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "no file uploaded"}
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	fileType := strings.SplitN(mimeType, "/", 2)[0]
	if fileType == "" {
		fileType = "application"
	}

	storedName, url, err := c.storage.SaveFile(fileHeader)
	if err != nil {
		log.Error().Err(err).Str("file", fileHeader.Filename).Msg("[content] upload: save failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not save file"}
	}

	content, err := c.store.CreateContent(storedName, fileHeader.Filename, fileType, url)
	if err != nil {
		log.Error().Err(err).Str("filename", storedName).Msg("[content] upload: db create failed")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create content"}
	}

	return mapContent(content), nil
}

func (c *ContentController) listContent(ctx *gin.Context) (any, *api.Error) {
	all, err := c.store.ListContent()
	if err != nil {
		log.Error().Err(err).Msg("[content] list: could not list content")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list content"}
	}

	out := make([]packets.ContentResponse, 0, len(all))
	for _, x := range all {
		out = append(out, mapContent(x))
	}
	return out, nil
}

func (c *ContentController) getContent(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid content id"}
	}

	x, err := c.store.GetContentByID(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "content not found"}
		}
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not get content"}
	}
	return mapContent(x), nil
}

// deleteContent removes the asset record; membership rows cascade away, so
// playlists shrink but keep their relative order. Affected playlists get
// their cached ETags dropped once the delete succeeds.
func (c *ContentController) deleteContent(ctx *gin.Context) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid content id"}
	}

	affected, err := c.store.GetPlaylistsUsingContent(id)
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("[content] delete: could not list affected playlists")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete content"}
	}

	if err := c.store.DeleteContent(id); err != nil {
		log.Error().Err(err).Int("id", id).Msg("[content] delete: could not delete content")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete content"}
	}

	for _, playlistID := range affected {
		invalidatePlaylistETag(playlistID)
	}

	return gin.H{"message": "content deleted"}, nil
}

func mapContent(x model.Content) packets.ContentResponse {
	return packets.ContentResponse{
		ID:           x.ID,
		Filename:     x.Filename,
		OriginalName: x.OriginalName,
		Type:         x.Type,
		URL:          x.URL,
		CreatedAt:    x.CreatedAt.Format(time.RFC3339),
	}
}
