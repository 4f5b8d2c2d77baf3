package repository

import (
	"context"
	"errors"

	"streammusic/model"

	"gorm.io/gorm"
)

// ArtistRepository reads and writes artists.
type ArtistRepository interface {
	Create(ctx context.Context, artist *model.Artist) error
	GetByID(ctx context.Context, id int64) (*model.Artist, error)
	// FindByName matches case-insensitively and returns the lowest id on ties.
	FindByName(ctx context.Context, name string) (*model.Artist, error)
	List(ctx context.Context, offset, limit int) ([]model.Artist, error)
	Count(ctx context.Context) (int64, error)
}

type gormArtistRepository struct {
	db *gorm.DB
}

func NewGormArtistRepository(db *gorm.DB) ArtistRepository {
	return &gormArtistRepository{db: db}
}

func (r *gormArtistRepository) Create(ctx context.Context, artist *model.Artist) error {
	return translate(r.db.WithContext(ctx).Create(artist).Error)
}

func (r *gormArtistRepository) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	var artist model.Artist
	err := r.db.WithContext(ctx).First(&artist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &artist, nil
}

func (r *gormArtistRepository) FindByName(ctx context.Context, name string) (*model.Artist, error) {
	var artist model.Artist
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("id ASC").
		First(&artist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &artist, nil
}

func (r *gormArtistRepository) List(ctx context.Context, offset, limit int) ([]model.Artist, error) {
	var artists []model.Artist
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&artists).Error
	return artists, err
}

func (r *gormArtistRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Artist{}).Count(&count).Error
	return count, err
}
