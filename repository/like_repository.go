package repository

import (
	"context"

	"streammusic/model"

	"gorm.io/gorm"
)

// LikeRepository reads and writes likes.
type LikeRepository interface {
	// Create fails with ErrDuplicate when the pair already exists.
	Create(ctx context.Context, like *model.Like) error
	Delete(ctx context.Context, userID, trackID int64) (bool, error)
	DeleteByTrack(ctx context.Context, trackID int64) error
	// Counts returns like totals keyed by track id. Missing keys mean zero.
	Counts(ctx context.Context, trackIDs []int64) (map[int64]int64, error)
	// LikedSet returns which of trackIDs the user has liked.
	LikedSet(ctx context.Context, userID int64, trackIDs []int64) (map[int64]bool, error)
}

type gormLikeRepository struct {
	db *gorm.DB
}

func NewGormLikeRepository(db *gorm.DB) LikeRepository {
	return &gormLikeRepository{db: db}
}

func (r *gormLikeRepository) Create(ctx context.Context, like *model.Like) error {
	return translate(r.db.WithContext(ctx).Create(like).Error)
}

func (r *gormLikeRepository) Delete(ctx context.Context, userID, trackID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND track_id = ?", userID, trackID).
		Delete(&model.Like{})
	return res.RowsAffected > 0, res.Error
}

func (r *gormLikeRepository) DeleteByTrack(ctx context.Context, trackID int64) error {
	return r.db.WithContext(ctx).Where("track_id = ?", trackID).Delete(&model.Like{}).Error
}

func (r *gormLikeRepository) Counts(ctx context.Context, trackIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(trackIDs))
	if len(trackIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		TrackID int64
		Total   int64
	}
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Select("track_id, COUNT(*) AS total").
		Where("track_id IN ?", trackIDs).
		Group("track_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TrackID] = row.Total
	}
	return counts, nil
}

func (r *gormLikeRepository) LikedSet(ctx context.Context, userID int64, trackIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool)
	if len(trackIDs) == 0 {
		return liked, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND track_id IN ?", userID, trackIDs).
		Pluck("track_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
