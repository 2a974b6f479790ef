package endpoints_test

import (
	"sort"
	"sync"
	"time"

	"github.com/lumacast/lumacast/internal/db"
	"github.com/lumacast/lumacast/internal/model"
)

// fakeStore is an in-memory db.Store with the same relational semantics as
// the Postgres implementation: unique player ids, append ordering, replace
// assignment and cascade deletes. It lets the HTTP surface be tested without
// a database.
type fakeStore struct {
	mu          sync.Mutex
	nextID      int
	players     map[int]model.Player
	playlists   map[int]model.Playlist
	contents    map[int]model.Content
	items       []model.PlaylistContent
	assignments map[int]model.Assignment // keyed by internal player id
}

var _ db.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		players:     make(map[int]model.Player),
		playlists:   make(map[int]model.Playlist),
		contents:    make(map[int]model.Content),
		assignments: make(map[int]model.Assignment),
	}
}

func (f *fakeStore) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) RegisterPlayer(playerID, location string) (model.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.players {
		if p.PlayerID == playerID {
			return model.Player{}, db.ErrConflict
		}
	}
	p := model.Player{
		ID:        f.id(),
		PlayerID:  playerID,
		Location:  location,
		Status:    model.PlayerStatusOnline,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.players[p.ID] = p
	return p, nil
}

func (f *fakeStore) GetPlayerByPlayerID(playerID string) (model.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.players {
		if p.PlayerID == playerID {
			return p, nil
		}
	}
	return model.Player{}, db.ErrNotFound
}

func (f *fakeStore) ListPlayers() ([]model.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Player, 0, len(f.players))
	for _, p := range f.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) UpdatePlayerStatus(playerID, status string) (model.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, p := range f.players {
		if p.PlayerID == playerID {
			p.Status = status
			p.UpdatedAt = time.Now()
			f.players[id] = p
			return p, nil
		}
	}
	return model.Player{}, db.ErrNotFound
}

func (f *fakeStore) DeletePlayer(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.players, id)
	delete(f.assignments, id)
	return nil
}

func (f *fakeStore) CreatePlaylist(name string, description *string) (model.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := model.Playlist{
		ID:          f.id(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.playlists[p.ID] = p
	return p, nil
}

func (f *fakeStore) GetPlaylistByID(id int) (model.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.playlists[id]
	if !ok {
		return model.Playlist{}, db.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) ListPlaylists() ([]model.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Playlist, 0, len(f.playlists))
	for _, p := range f.playlists {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) DeletePlaylist(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.playlists, id)
	kept := f.items[:0]
	for _, it := range f.items {
		if it.PlaylistID != id {
			kept = append(kept, it)
		}
	}
	f.items = kept
	for playerID, a := range f.assignments {
		if a.PlaylistID == id {
			delete(f.assignments, playerID)
		}
	}
	return nil
}

func (f *fakeStore) AddContentToPlaylist(playlistID, contentID int) (model.PlaylistContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.playlists[playlistID]; !ok {
		return model.PlaylistContent{}, db.ErrNotFound
	}
	if _, ok := f.contents[contentID]; !ok {
		return model.PlaylistContent{}, db.ErrNotFound
	}
	maxOrder := 0
	for _, it := range f.items {
		if it.PlaylistID == playlistID && it.ContentOrder > maxOrder {
			maxOrder = it.ContentOrder
		}
	}
	pc := model.PlaylistContent{
		ID:           f.id(),
		PlaylistID:   playlistID,
		ContentID:    contentID,
		ContentOrder: maxOrder + 1,
	}
	f.items = append(f.items, pc)
	return pc, nil
}

func (f *fakeStore) ListPlaylistContents(playlistID int) ([]model.PlaylistContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.PlaylistContent
	for _, it := range f.items {
		if it.PlaylistID == playlistID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContentOrder < out[j].ContentOrder })
	return out, nil
}

func (f *fakeStore) CreateContent(filename, originalName, contentType, url string) (model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := model.Content{
		ID:           f.id(),
		Filename:     filename,
		OriginalName: originalName,
		Type:         contentType,
		URL:          url,
		CreatedAt:    time.Now(),
	}
	f.contents[c.ID] = c
	return c, nil
}

func (f *fakeStore) GetContentByID(id int) (model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.contents[id]
	if !ok {
		return model.Content{}, db.ErrNotFound
	}
	return c, nil
}

func (f *fakeStore) ListContent() ([]model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Content, 0, len(f.contents))
	for _, c := range f.contents {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) DeleteContent(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.contents, id)
	kept := f.items[:0]
	for _, it := range f.items {
		if it.ContentID != id {
			kept = append(kept, it)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeStore) GetPlaylistsUsingContent(contentID int) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[int]bool)
	var out []int
	for _, it := range f.items {
		if it.ContentID == contentID && !seen[it.PlaylistID] {
			seen[it.PlaylistID] = true
			out = append(out, it.PlaylistID)
		}
	}
	return out, nil
}

func (f *fakeStore) AssignPlaylistToPlayer(playerID string, playlistID int) (model.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var internal int
	found := false
	for _, p := range f.players {
		if p.PlayerID == playerID {
			internal = p.ID
			found = true
			break
		}
	}
	if !found {
		return model.Assignment{}, db.ErrNotFound
	}
	if _, ok := f.playlists[playlistID]; !ok {
		return model.Assignment{}, db.ErrNotFound
	}
	a := model.Assignment{
		ID:         f.id(),
		PlayerID:   internal,
		PlaylistID: playlistID,
		AssignedAt: time.Now(),
	}
	f.assignments[internal] = a
	return a, nil
}

func (f *fakeStore) GetAssignedPlaylistID(playerID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.players {
		if p.PlayerID == playerID {
			if a, ok := f.assignments[p.ID]; ok {
				return a.PlaylistID, nil
			}
			return 0, db.ErrNotFound
		}
	}
	return 0, db.ErrNotFound
}

func (f *fakeStore) ResolvePlaylistForPlayer(playerID string) (model.ResolvedPlaylist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var internal int
	found := false
	for _, p := range f.players {
		if p.PlayerID == playerID {
			internal = p.ID
			found = true
			break
		}
	}
	if !found {
		return model.ResolvedPlaylist{}, db.ErrNotFound
	}
	a, ok := f.assignments[internal]
	if !ok {
		return model.ResolvedPlaylist{}, db.ErrNotFound
	}
	pl, ok := f.playlists[a.PlaylistID]
	if !ok {
		return model.ResolvedPlaylist{}, db.ErrNotFound
	}

	var items []model.PlaylistContent
	for _, it := range f.items {
		if it.PlaylistID == pl.ID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ContentOrder < items[j].ContentOrder })

	out := model.ResolvedPlaylist{
		PlaylistID:  pl.ID,
		Name:        pl.Name,
		Description: pl.Description,
		UpdatedAt:   pl.UpdatedAt,
		Contents:    []model.ResolvedContent{},
	}
	for _, it := range items {
		c := f.contents[it.ContentID]
		out.Contents = append(out.Contents, model.ResolvedContent{
			ID:           c.ID,
			OriginalName: c.OriginalName,
			Type:         c.Type,
			URL:          c.URL,
		})
	}
	return out, nil
}
