package catalog

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"streammusic/core/apperr"
	"streammusic/logger"
	"streammusic/model"
	"streammusic/repository"
)

func (s *Service) CreatePlaylist(ctx context.Context, userID int64, req model.CreatePlaylistRequest) (*model.PlaylistView, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validation("Title is required")
	}
	if utf8.RuneCountInString(title) > model.MaxPlaylistTitle {
		return nil, apperr.Validation("Title must be at most %d characters", model.MaxPlaylistTitle)
	}

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Store("load user", err)
	}
	if user == nil {
		return nil, apperr.Auth("User not found")
	}

	if req.ParentPlaylistID != nil {
		parent, err := s.store.Playlists().GetByID(ctx, *req.ParentPlaylistID)
		if err != nil {
			return nil, apperr.Store("load parent playlist", err)
		}
		if parent == nil {
			return nil, apperr.NotFound("Parent playlist not found")
		}
	}

	playlist := &model.Playlist{
		UserID:           userID,
		Title:            title,
		CreationDate:     s.now(),
		ParentPlaylistID: req.ParentPlaylistID,
	}
	if err := s.store.Playlists().Create(ctx, playlist); err != nil {
		return nil, apperr.Store("create playlist", err)
	}
	logger.Info("playlist created", logger.Int64("playlistId", playlist.ID), logger.Int64("userId", userID))

	v := playlist.ToResponse(0)
	return &v, nil
}

// ownedPlaylist loads a playlist the caller owns.
func ownedPlaylist(ctx context.Context, store repository.Store, userID, playlistID int64) (*model.Playlist, error) {
	playlist, err := store.Playlists().GetByID(ctx, playlistID)
	if err != nil {
		return nil, apperr.Store("load playlist", err)
	}
	if playlist == nil {
		return nil, apperr.NotFound("Playlist not found")
	}
	if playlist.UserID != userID {
		return nil, apperr.Auth("Not authorized to modify this playlist")
	}
	return playlist, nil
}

// AddToPlaylist appends trackID after the playlist's current last entry.
// The order is computed inside the transaction; a concurrent append that
// takes the same position fails on the unique order index and is reported
// as a conflict.
func (s *Service) AddToPlaylist(ctx context.Context, userID, playlistID, trackID int64) (*model.PlaylistView, error) {
	if trackID <= 0 {
		return nil, apperr.Validation("track_id is required")
	}

	var playlist *model.Playlist
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		playlist, err = ownedPlaylist(ctx, tx, userID, playlistID)
		if err != nil {
			return err
		}

		track, err := tx.Tracks().GetByID(ctx, trackID)
		if err != nil {
			return apperr.Store("load track", err)
		}
		if track == nil {
			return apperr.NotFound("Track not found")
		}

		present, err := tx.Playlists().HasTrack(ctx, playlistID, trackID)
		if err != nil {
			return apperr.Store("check playlist entry", err)
		}
		if present {
			return apperr.Conflict("Track already in playlist")
		}

		max, err := tx.Playlists().MaxOrder(ctx, playlistID)
		if err != nil {
			return apperr.Store("load playlist order", err)
		}
		err = tx.Playlists().AddTrack(ctx, &model.PlaylistTrack{
			PlaylistID: playlistID,
			TrackID:    trackID,
			OrderNum:   max + 1,
		})
		if errors.Is(err, repository.ErrDuplicate) {
			return apperr.Conflict("Track already in playlist")
		}
		if err != nil {
			return apperr.Store("add playlist entry", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.playlistView(ctx, playlist, true, &userID)
}

// RemoveFromPlaylist drops one entry. Remaining entries keep their order numbers.
func (s *Service) RemoveFromPlaylist(ctx context.Context, userID, playlistID, trackID int64) (*model.PlaylistView, error) {
	playlist, err := ownedPlaylist(ctx, s.store, userID, playlistID)
	if err != nil {
		return nil, err
	}
	removed, err := s.store.Playlists().RemoveTrack(ctx, playlistID, trackID)
	if err != nil {
		return nil, apperr.Store("remove playlist entry", err)
	}
	if !removed {
		return nil, apperr.NotFound("Track not in playlist")
	}
	return s.playlistView(ctx, playlist, true, &userID)
}
