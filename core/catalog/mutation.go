package catalog

import (
	"context"
	"errors"

	"streammusic/core/apperr"
	"streammusic/logger"
	"streammusic/model"
	"streammusic/repository"
)

// Like records userID liking trackID. A repeated like is a conflict; the
// composite key makes that hold under concurrent requests too.
func (s *Service) Like(ctx context.Context, userID, trackID int64) (*model.LikeResult, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Store("load user", err)
	}
	if user == nil {
		return nil, apperr.Auth("User not found")
	}

	track, err := s.store.Tracks().GetByID(ctx, trackID)
	if err != nil {
		return nil, apperr.Store("load track", err)
	}
	if track == nil {
		return nil, apperr.NotFound("Track not found")
	}

	err = s.store.Likes().Create(ctx, &model.Like{UserID: userID, TrackID: trackID, LikedAt: s.now()})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("Track already liked")
		}
		return nil, apperr.Store("create like", err)
	}

	return s.likeResult(ctx, "Track liked", track, userID)
}

func (s *Service) Unlike(ctx context.Context, userID, trackID int64) (*model.LikeResult, error) {
	track, err := s.store.Tracks().GetByID(ctx, trackID)
	if err != nil {
		return nil, apperr.Store("load track", err)
	}
	if track == nil {
		return nil, apperr.NotFound("Track not found")
	}

	removed, err := s.store.Likes().Delete(ctx, userID, trackID)
	if err != nil {
		return nil, apperr.Store("delete like", err)
	}
	if !removed {
		return nil, apperr.NotFound("Like not found")
	}

	return s.likeResult(ctx, "Track unliked", track, userID)
}

func (s *Service) likeResult(ctx context.Context, msg string, track *model.Track, userID int64) (*model.LikeResult, error) {
	v, err := trackView(ctx, s.store, track, &userID)
	if err != nil {
		return nil, err
	}
	return &model.LikeResult{
		Message:       msg,
		LikesCount:    v.LikesCount,
		IsLikedByUser: v.IsLikedByUser,
		Track:         v,
	}, nil
}

// DeleteTrack removes the track with its likes and playlist entries, then
// the backing file. Any authenticated user may delete any track.
func (s *Service) DeleteTrack(ctx context.Context, userID, trackID int64) error {
	var filePath *string
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		track, err := tx.Tracks().GetByID(ctx, trackID)
		if err != nil {
			return apperr.Store("load track", err)
		}
		if track == nil {
			return apperr.NotFound("Track not found")
		}
		filePath = track.FilePath

		if err := tx.Likes().DeleteByTrack(ctx, trackID); err != nil {
			return apperr.Store("delete likes", err)
		}
		if err := tx.Playlists().RemoveTrackEverywhere(ctx, trackID); err != nil {
			return apperr.Store("delete playlist entries", err)
		}
		if _, err := tx.Tracks().Delete(ctx, trackID); err != nil {
			return apperr.Store("delete track", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("track deleted", logger.Int64("trackId", trackID), logger.Int64("userId", userID))

	// the row is gone, so file cleanup failures only leave an orphan
	if filePath != nil && *filePath != "" {
		if err := s.files.Remove(*filePath); err != nil {
			logger.Warn("failed to remove audio file", logger.String("file", *filePath), logger.ErrorField(err))
		}
		if s.mirror != nil {
			if err := s.mirror.Remove(ctx, *filePath); err != nil {
				logger.Warn("failed to remove mirrored object", logger.String("file", *filePath), logger.ErrorField(err))
			}
		}
	}
	return nil
}
