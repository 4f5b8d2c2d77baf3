package repository

import (
	"context"
	"errors"

	"streammusic/model"

	"gorm.io/gorm"
)

// AlbumRepository reads and writes albums.
type AlbumRepository interface {
	Create(ctx context.Context, album *model.Album) error
	// FindByTitle matches the exact title, scoped to artistID when it is set.
	FindByTitle(ctx context.Context, title string, artistID *int64) (*model.Album, error)
	ListByArtist(ctx context.Context, artistID int64) ([]model.Album, error)
}

type gormAlbumRepository struct {
	db *gorm.DB
}

func NewGormAlbumRepository(db *gorm.DB) AlbumRepository {
	return &gormAlbumRepository{db: db}
}

func (r *gormAlbumRepository) Create(ctx context.Context, album *model.Album) error {
	return translate(r.db.WithContext(ctx).Create(album).Error)
}

func (r *gormAlbumRepository) FindByTitle(ctx context.Context, title string, artistID *int64) (*model.Album, error) {
	q := r.db.WithContext(ctx).Where("title = ?", title)
	if artistID != nil {
		q = q.Where("artist_id = ?", *artistID)
	}

	var album model.Album
	if err := q.Order("id ASC").First(&album).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &album, nil
}

func (r *gormAlbumRepository) ListByArtist(ctx context.Context, artistID int64) ([]model.Album, error) {
	var albums []model.Album
	err := r.db.WithContext(ctx).
		Preload("Artist").
		Where("artist_id = ?", artistID).
		Order("id ASC").
		Find(&albums).Error
	return albums, err
}
