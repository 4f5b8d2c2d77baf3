// Package catalog implements catalog reads and the mutations on tracks,
// likes and playlists.
package catalog

import (
	"context"
	"time"

	"streammusic/core/apperr"
	"streammusic/model"
	"streammusic/repository"
	"streammusic/storage"
)

// MediaMirror receives copies of uploaded files. Failures are logged, never returned.
type MediaMirror interface {
	Put(ctx context.Context, name, path string) error
	Remove(ctx context.Context, name string) error
}

type Service struct {
	store  repository.Store
	files  *storage.Local
	mirror MediaMirror
	now    func() time.Time
}

// NewService builds the catalog service. mirror may be nil.
func NewService(store repository.Store, files *storage.Local, mirror MediaMirror) *Service {
	return &Service{store: store, files: files, mirror: mirror, now: time.Now}
}

// trackViews decorates tracks with like counts and, when viewer is set,
// whether the viewer liked each one.
func trackViews(ctx context.Context, store repository.Store, tracks []model.Track, viewer *int64) ([]model.TrackView, error) {
	views := make([]model.TrackView, 0, len(tracks))
	if len(tracks) == 0 {
		return views, nil
	}
	ids := make([]int64, len(tracks))
	for i := range tracks {
		ids[i] = tracks[i].ID
	}

	counts, err := store.Likes().Counts(ctx, ids)
	if err != nil {
		return nil, apperr.Store("count likes", err)
	}
	liked := map[int64]bool{}
	if viewer != nil {
		liked, err = store.Likes().LikedSet(ctx, *viewer, ids)
		if err != nil {
			return nil, apperr.Store("load liked set", err)
		}
	}
	for i := range tracks {
		views = append(views, tracks[i].ToResponse(counts[tracks[i].ID], liked[tracks[i].ID]))
	}
	return views, nil
}

func trackView(ctx context.Context, store repository.Store, track *model.Track, viewer *int64) (model.TrackView, error) {
	views, err := trackViews(ctx, store, []model.Track{*track}, viewer)
	if err != nil {
		return model.TrackView{}, err
	}
	return views[0], nil
}
