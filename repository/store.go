package repository

import (
	"context"
	"fmt"

	"streammusic/model"

	"gorm.io/gorm"
)

// Counts holds catalog sizes reported by the health endpoint.
type Counts struct {
	Users   int64
	Tracks  int64
	Artists int64
	Albums  int64
}

// Store groups the repositories over one database handle.
type Store interface {
	Users() UserRepository
	Artists() ArtistRepository
	Albums() AlbumRepository
	Tracks() TrackRepository
	Likes() LikeRepository
	Playlists() PlaylistRepository
	Plans() PlanRepository

	// Transaction runs fn against a store bound to a single transaction.
	// Returning an error rolls back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
	Counts(ctx context.Context) (Counts, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a gorm handle.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository         { return NewGormUserRepository(s.db) }
func (s *gormStore) Artists() ArtistRepository     { return NewGormArtistRepository(s.db) }
func (s *gormStore) Albums() AlbumRepository       { return NewGormAlbumRepository(s.db) }
func (s *gormStore) Tracks() TrackRepository       { return NewGormTrackRepository(s.db) }
func (s *gormStore) Likes() LikeRepository         { return NewGormLikeRepository(s.db) }
func (s *gormStore) Playlists() PlaylistRepository { return NewGormPlaylistRepository(s.db) }
func (s *gormStore) Plans() PlanRepository         { return NewGormPlanRepository(s.db) }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *gormStore) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	targets := []struct {
		model interface{}
		dst   *int64
	}{
		{&model.User{}, &c.Users},
		{&model.Track{}, &c.Tracks},
		{&model.Artist{}, &c.Artists},
		{&model.Album{}, &c.Albums},
	}
	for _, t := range targets {
		if err := s.db.WithContext(ctx).Model(t.model).Count(t.dst).Error; err != nil {
			return Counts{}, fmt.Errorf("count %T: %w", t.model, err)
		}
	}
	return c, nil
}
