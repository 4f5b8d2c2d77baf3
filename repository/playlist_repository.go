package repository

import (
	"context"
	"errors"

	"streammusic/model"

	"gorm.io/gorm"
)

// PlaylistRepository reads and writes playlists and their entries.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	GetByID(ctx context.Context, id int64) (*model.Playlist, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Playlist, error)
	// TrackCounts returns membership totals keyed by playlist id.
	TrackCounts(ctx context.Context, playlistIDs []int64) (map[int64]int64, error)

	HasTrack(ctx context.Context, playlistID, trackID int64) (bool, error)
	// MaxOrder returns the largest order_num in the playlist, 0 when empty.
	MaxOrder(ctx context.Context, playlistID int64) (int, error)
	// AddTrack fails with ErrDuplicate on a repeated track or order_num.
	AddTrack(ctx context.Context, entry *model.PlaylistTrack) error
	RemoveTrack(ctx context.Context, playlistID, trackID int64) (bool, error)
	// RemoveTrackEverywhere drops the track from every playlist.
	RemoveTrackEverywhere(ctx context.Context, trackID int64) error
}

type gormPlaylistRepository struct {
	db *gorm.DB
}

func NewGormPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &gormPlaylistRepository{db: db}
}

func (r *gormPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	return translate(r.db.WithContext(ctx).Create(playlist).Error)
}

func (r *gormPlaylistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.db.WithContext(ctx).First(&playlist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &playlist, nil
}

func (r *gormPlaylistRepository) ListByUser(ctx context.Context, userID int64) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&playlists).Error
	return playlists, err
}

func (r *gormPlaylistRepository) TrackCounts(ctx context.Context, playlistIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(playlistIDs))
	if len(playlistIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PlaylistID int64
		Total      int64
	}
	err := r.db.WithContext(ctx).Model(&model.PlaylistTrack{}).
		Select("playlist_id, COUNT(*) AS total").
		Where("playlist_id IN ?", playlistIDs).
		Group("playlist_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PlaylistID] = row.Total
	}
	return counts, nil
}

func (r *gormPlaylistRepository) HasTrack(ctx context.Context, playlistID, trackID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PlaylistTrack{}).
		Where("playlist_id = ? AND track_id = ?", playlistID, trackID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormPlaylistRepository) MaxOrder(ctx context.Context, playlistID int64) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Model(&model.PlaylistTrack{}).
		Select("COALESCE(MAX(order_num), 0)").
		Where("playlist_id = ?", playlistID).
		Row().Scan(&max)
	return max, err
}

func (r *gormPlaylistRepository) AddTrack(ctx context.Context, entry *model.PlaylistTrack) error {
	return translate(r.db.WithContext(ctx).Omit("Track").Create(entry).Error)
}

func (r *gormPlaylistRepository) RemoveTrack(ctx context.Context, playlistID, trackID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND track_id = ?", playlistID, trackID).
		Delete(&model.PlaylistTrack{})
	return res.RowsAffected > 0, res.Error
}

func (r *gormPlaylistRepository) RemoveTrackEverywhere(ctx context.Context, trackID int64) error {
	return r.db.WithContext(ctx).Where("track_id = ?", trackID).Delete(&model.PlaylistTrack{}).Error
}
