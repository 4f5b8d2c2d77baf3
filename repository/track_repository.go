package repository

import (
	"context"
	"errors"

	"streammusic/model"

	"gorm.io/gorm"
)

// TrackRepository reads and writes tracks. Every read preloads Artist and Album.
type TrackRepository interface {
	Create(ctx context.Context, track *model.Track) error
	GetByID(ctx context.Context, id int64) (*model.Track, error)
	// Delete removes the row and reports whether it existed.
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]model.Track, error)
	// Popular orders by like count descending then id ascending. Tracks
	// without likes are included.
	Popular(ctx context.Context, limit int) ([]model.Track, error)
	ListByArtist(ctx context.Context, artistID int64) ([]model.Track, error)
	LikedBy(ctx context.Context, userID int64) ([]model.Track, error)
	// InPlaylist returns the playlist's tracks by order_num.
	InPlaylist(ctx context.Context, playlistID int64) ([]model.Track, error)
}

type gormTrackRepository struct {
	db *gorm.DB
}

func NewGormTrackRepository(db *gorm.DB) TrackRepository {
	return &gormTrackRepository{db: db}
}

func (r *gormTrackRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Artist").Preload("Album")
}

func (r *gormTrackRepository) Create(ctx context.Context, track *model.Track) error {
	return translate(r.db.WithContext(ctx).Omit("Artist", "Album").Create(track).Error)
}

func (r *gormTrackRepository) GetByID(ctx context.Context, id int64) (*model.Track, error) {
	var track model.Track
	err := r.withRelations(ctx).First(&track, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &track, nil
}

func (r *gormTrackRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Track{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *gormTrackRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Track{}).Count(&count).Error
	return count, err
}

func (r *gormTrackRepository) List(ctx context.Context, offset, limit int) ([]model.Track, error) {
	var tracks []model.Track
	err := r.withRelations(ctx).
		Order("tracks.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&tracks).Error
	return tracks, err
}

func (r *gormTrackRepository) Popular(ctx context.Context, limit int) ([]model.Track, error) {
	var tracks []model.Track
	err := r.withRelations(ctx).
		Select("tracks.*").
		Joins("LEFT JOIN likes ON likes.track_id = tracks.id").
		Group("tracks.id").
		Order("COUNT(likes.track_id) DESC").
		Order("tracks.id ASC").
		Limit(limit).
		Find(&tracks).Error
	return tracks, err
}

func (r *gormTrackRepository) ListByArtist(ctx context.Context, artistID int64) ([]model.Track, error) {
	var tracks []model.Track
	err := r.withRelations(ctx).
		Where("tracks.artist_id = ?", artistID).
		Order("tracks.id ASC").
		Find(&tracks).Error
	return tracks, err
}

func (r *gormTrackRepository) LikedBy(ctx context.Context, userID int64) ([]model.Track, error) {
	var tracks []model.Track
	err := r.withRelations(ctx).
		Joins("JOIN likes ON likes.track_id = tracks.id").
		Where("likes.user_id = ?", userID).
		Order("likes.liked_at DESC").
		Order("tracks.id ASC").
		Find(&tracks).Error
	return tracks, err
}

func (r *gormTrackRepository) InPlaylist(ctx context.Context, playlistID int64) ([]model.Track, error) {
	var tracks []model.Track
	err := r.withRelations(ctx).
		Joins("JOIN playlist_tracks ON playlist_tracks.track_id = tracks.id").
		Where("playlist_tracks.playlist_id = ?", playlistID).
		Order("playlist_tracks.order_num ASC").
		Find(&tracks).Error
	return tracks, err
}
