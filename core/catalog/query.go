package catalog

import (
	"context"

	"streammusic/core/apperr"
	"streammusic/model"
)

const noTracksMessage = "No tracks available"

// ListTracks returns one page of tracks ordered by id.
func (s *Service) ListTracks(ctx context.Context, page, limit int, viewer *int64) (*model.TrackPage, error) {
	total, err := s.store.Tracks().Count(ctx)
	if err != nil {
		return nil, apperr.Store("count tracks", err)
	}
	p := Paginate(total, page, limit)
	if total == 0 {
		return &model.TrackPage{
			Tracks:      []model.TrackView{},
			CurrentPage: p.Number,
			Message:     noTracksMessage,
		}, nil
	}

	tracks, err := s.store.Tracks().List(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, apperr.Store("list tracks", err)
	}
	views, err := trackViews(ctx, s.store, tracks, viewer)
	if err != nil {
		return nil, err
	}
	return &model.TrackPage{
		Tracks:      views,
		Total:       total,
		Pages:       p.Pages,
		CurrentPage: p.Number,
	}, nil
}

func (s *Service) GetTrack(ctx context.Context, id int64, viewer *int64) (*model.TrackView, error) {
	track, err := s.TrackRow(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := trackView(ctx, s.store, track, viewer)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// PopularTracks ranks tracks by like count. A limit of 0 means the default.
func (s *Service) PopularTracks(ctx context.Context, limit int, viewer *int64) ([]model.TrackView, error) {
	if limit == 0 {
		limit = DefaultPopularLimit
	}
	tracks, err := s.store.Tracks().Popular(ctx, ClampLimit(limit))
	if err != nil {
		return nil, apperr.Store("list popular tracks", err)
	}
	return trackViews(ctx, s.store, tracks, viewer)
}

func (s *Service) ListArtists(ctx context.Context, page, limit int) (*model.ArtistPage, error) {
	total, err := s.store.Artists().Count(ctx)
	if err != nil {
		return nil, apperr.Store("count artists", err)
	}
	p := Paginate(total, page, limit)
	if total == 0 {
		return &model.ArtistPage{Artists: []model.Artist{}, CurrentPage: p.Number}, nil
	}
	artists, err := s.store.Artists().List(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, apperr.Store("list artists", err)
	}
	return &model.ArtistPage{
		Artists:     artists,
		Total:       total,
		Pages:       p.Pages,
		CurrentPage: p.Number,
	}, nil
}

func (s *Service) ArtistDetail(ctx context.Context, id int64, viewer *int64) (*model.ArtistDetail, error) {
	artist, err := s.store.Artists().GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("load artist", err)
	}
	if artist == nil {
		return nil, apperr.NotFound("Artist not found")
	}

	tracks, err := s.store.Tracks().ListByArtist(ctx, id)
	if err != nil {
		return nil, apperr.Store("list artist tracks", err)
	}
	views, err := trackViews(ctx, s.store, tracks, viewer)
	if err != nil {
		return nil, err
	}

	albums, err := s.store.Albums().ListByArtist(ctx, id)
	if err != nil {
		return nil, apperr.Store("list artist albums", err)
	}
	albumViews := make([]model.AlbumView, 0, len(albums))
	for i := range albums {
		albumViews = append(albumViews, albums[i].ToResponse())
	}

	return &model.ArtistDetail{Artist: *artist, Tracks: views, Albums: albumViews}, nil
}

// UserLikedTracks lists a user's liked tracks, most recent first.
func (s *Service) UserLikedTracks(ctx context.Context, userID int64, viewer *int64) (*model.UserLikes, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Store("load user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	tracks, err := s.store.Tracks().LikedBy(ctx, userID)
	if err != nil {
		return nil, apperr.Store("list liked tracks", err)
	}
	if viewer == nil {
		viewer = &userID
	}
	views, err := trackViews(ctx, s.store, tracks, viewer)
	if err != nil {
		return nil, err
	}
	return &model.UserLikes{
		UserID:      user.ID,
		Username:    user.Username,
		LikedTracks: views,
		TotalLikes:  len(views),
	}, nil
}

func (s *Service) UserPlaylists(ctx context.Context, userID int64) ([]model.PlaylistView, error) {
	playlists, err := s.store.Playlists().ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Store("list playlists", err)
	}
	ids := make([]int64, len(playlists))
	for i := range playlists {
		ids[i] = playlists[i].ID
	}
	counts, err := s.store.Playlists().TrackCounts(ctx, ids)
	if err != nil {
		return nil, apperr.Store("count playlist tracks", err)
	}

	views := make([]model.PlaylistView, 0, len(playlists))
	for i := range playlists {
		views = append(views, playlists[i].ToResponse(counts[playlists[i].ID]))
	}
	return views, nil
}

// PlaylistDetail loads a playlist and, when withTracks is set, its tracks in order.
func (s *Service) PlaylistDetail(ctx context.Context, id int64, withTracks bool, viewer *int64) (*model.PlaylistView, error) {
	playlist, err := s.store.Playlists().GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("load playlist", err)
	}
	if playlist == nil {
		return nil, apperr.NotFound("Playlist not found")
	}
	return s.playlistView(ctx, playlist, withTracks, viewer)
}

func (s *Service) playlistView(ctx context.Context, playlist *model.Playlist, withTracks bool, viewer *int64) (*model.PlaylistView, error) {
	counts, err := s.store.Playlists().TrackCounts(ctx, []int64{playlist.ID})
	if err != nil {
		return nil, apperr.Store("count playlist tracks", err)
	}
	v := playlist.ToResponse(counts[playlist.ID])
	if withTracks {
		tracks, err := s.store.Tracks().InPlaylist(ctx, playlist.ID)
		if err != nil {
			return nil, apperr.Store("list playlist tracks", err)
		}
		v.Tracks, err = trackViews(ctx, s.store, tracks, viewer)
		if err != nil {
			return nil, err
		}
	}
	return &v, nil
}

func (s *Service) SubscriptionPlans(ctx context.Context) ([]model.SubscriptionPlan, error) {
	plans, err := s.store.Plans().List(ctx)
	if err != nil {
		return nil, apperr.Store("list subscription plans", err)
	}
	if plans == nil {
		plans = []model.SubscriptionPlan{}
	}
	return plans, nil
}

// Health pings the store and reports catalog sizes.
func (s *Service) Health(ctx context.Context) (*model.Health, error) {
	if err := s.store.Ping(ctx); err != nil {
		return nil, apperr.Store("ping database", err)
	}
	c, err := s.store.Counts(ctx)
	if err != nil {
		return nil, apperr.Store("count rows", err)
	}
	return &model.Health{
		Status:   "healthy",
		Database: "connected",
		Users:    c.Users,
		Tracks:   c.Tracks,
		Artists:  c.Artists,
		Albums:   c.Albums,
	}, nil
}

// TrackRow loads the raw track row, as needed to locate its audio file.
func (s *Service) TrackRow(ctx context.Context, id int64) (*model.Track, error) {
	track, err := s.store.Tracks().GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("load track", err)
	}
	if track == nil {
		return nil, apperr.NotFound("Track not found")
	}
	return track, nil
}
