package catalog

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"streammusic/core/apperr"
	"streammusic/db/dbtest"
	"streammusic/model"
	"streammusic/repository"
	"streammusic/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMirror struct {
	mu      sync.Mutex
	put     []string
	removed []string
}

func (m *fakeMirror) Put(_ context.Context, name, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put = append(m.put, name)
	return nil
}

func (m *fakeMirror) Remove(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, name)
	return nil
}

type fixture struct {
	db     *gorm.DB
	svc    *Service
	store  repository.Store
	files  *storage.Local
	mirror *fakeMirror
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := dbtest.Open(t)
	store := repository.NewStore(gdb)
	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	mirror := &fakeMirror{}
	svc := NewService(store, files, mirror)
	svc.now = func() time.Time { return time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC) }
	return &fixture{db: gdb, svc: svc, store: store, files: files, mirror: mirror}
}

func (f *fixture) user(t *testing.T, name string) int64 {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u.ID
}

func (f *fixture) upload(t *testing.T, req model.UploadRequest) model.TrackView {
	t.Helper()
	v, err := f.svc.UploadTrack(context.Background(), 1, req, strings.NewReader("audio:"+req.Filename))
	require.NoError(t, err)
	return *v
}

func (f *fixture) tracks(t *testing.T, titles ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(titles))
	for _, title := range titles {
		tr := &model.Track{Title: title}
		require.NoError(t, f.store.Tracks().Create(context.Background(), tr))
		ids = append(ids, tr.ID)
	}
	return ids
}

func TestListTracksEmptyCatalog(t *testing.T) {
	f := newFixture(t)
	page, err := f.svc.ListTracks(context.Background(), 1, 50, nil)
	require.NoError(t, err)
	assert.Empty(t, page.Tracks)
	assert.NotNil(t, page.Tracks)
	assert.Zero(t, page.Total)
	assert.Zero(t, page.Pages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, "No tracks available", page.Message)
}

func TestListTracksClampsPage(t *testing.T) {
	f := newFixture(t)
	ids := f.tracks(t, "a", "b", "c")

	page, err := f.svc.ListTracks(context.Background(), 5, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, 2, page.CurrentPage)
	require.Len(t, page.Tracks, 1)
	assert.Equal(t, ids[2], page.Tracks[0].TrackID)

	page, err = f.svc.ListTracks(context.Background(), 1, 500, nil)
	require.NoError(t, err)
	assert.Len(t, page.Tracks, 3)
	assert.Equal(t, 1, page.Pages)
}

func TestLikeLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.user(t, "ann")
	tid := f.tracks(t, "song")[0]

	res, err := f.svc.Like(ctx, uid, tid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikesCount)
	assert.True(t, res.IsLikedByUser)
	assert.True(t, res.Track.IsLikedByUser)

	_, err = f.svc.Like(ctx, uid, tid)
	assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)

	v, err := f.svc.GetTrack(ctx, tid, &uid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.LikesCount)

	res, err = f.svc.Unlike(ctx, uid, tid)
	require.NoError(t, err)
	assert.Zero(t, res.LikesCount)
	assert.False(t, res.IsLikedByUser)

	_, err = f.svc.Unlike(ctx, uid, tid)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	res, err = f.svc.Like(ctx, uid, tid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikesCount)

	_, err = f.svc.Like(ctx, uid, 9999)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestLikeRequiresExistingUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tid := f.tracks(t, "song")[0]

	_, err := f.svc.Like(ctx, 9999, tid)
	assert.True(t, apperr.Is(err, apperr.KindAuth), "got %v", err)

	counts, err := f.store.Likes().Counts(ctx, []int64{tid})
	require.NoError(t, err)
	assert.Zero(t, counts[tid])
}

func TestPopularTracksIncludesUnliked(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ann, bob := f.user(t, "ann"), f.user(t, "bob")
	ids := f.tracks(t, "quiet", "hit", "ok")

	for _, l := range []struct{ u, t int64 }{{ann, ids[1]}, {bob, ids[1]}, {ann, ids[2]}} {
		_, err := f.svc.Like(ctx, l.u, l.t)
		require.NoError(t, err)
	}

	popular, err := f.svc.PopularTracks(ctx, 0, &bob)
	require.NoError(t, err)
	require.Len(t, popular, 3)
	assert.Equal(t, []string{"hit", "ok", "quiet"}, []string{popular[0].Title, popular[1].Title, popular[2].Title})
	assert.Equal(t, int64(2), popular[0].LikesCount)
	assert.True(t, popular[0].IsLikedByUser)
	assert.False(t, popular[1].IsLikedByUser)

	top, err := f.svc.PopularTracks(ctx, 1, nil)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestPlaylistOrdering(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner, other := f.user(t, "ann"), f.user(t, "bob")
	ids := f.tracks(t, "one", "two", "three")

	pl, err := f.svc.CreatePlaylist(ctx, owner, model.CreatePlaylistRequest{Title: "Road trip"})
	require.NoError(t, err)
	assert.Zero(t, pl.TrackCount)

	for _, id := range []int64{ids[1], ids[0]} {
		_, err := f.svc.AddToPlaylist(ctx, owner, pl.PlaylistID, id)
		require.NoError(t, err)
	}

	_, err = f.svc.AddToPlaylist(ctx, owner, pl.PlaylistID, ids[0])
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	_, err = f.svc.AddToPlaylist(ctx, other, pl.PlaylistID, ids[2])
	assert.True(t, apperr.Is(err, apperr.KindAuth))

	_, err = f.svc.AddToPlaylist(ctx, owner, 9999, ids[2])
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = f.svc.AddToPlaylist(ctx, owner, pl.PlaylistID, 9999)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = f.svc.AddToPlaylist(ctx, owner, pl.PlaylistID, 0)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	// removal leaves a gap, the next add goes after the highest number
	_, err = f.svc.RemoveFromPlaylist(ctx, owner, pl.PlaylistID, ids[1])
	require.NoError(t, err)
	view, err := f.svc.AddToPlaylist(ctx, owner, pl.PlaylistID, ids[2])
	require.NoError(t, err)

	assert.Equal(t, int64(2), view.TrackCount)
	require.Len(t, view.Tracks, 2)
	assert.Equal(t, "one", view.Tracks[0].Title)
	assert.Equal(t, "three", view.Tracks[1].Title)

	max, err := f.store.Playlists().MaxOrder(ctx, pl.PlaylistID)
	require.NoError(t, err)
	assert.Equal(t, 3, max)

	_, err = f.svc.RemoveFromPlaylist(ctx, owner, pl.PlaylistID, ids[1])
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = f.svc.RemoveFromPlaylist(ctx, other, pl.PlaylistID, ids[0])
	assert.True(t, apperr.Is(err, apperr.KindAuth))

	mine, err := f.svc.UserPlaylists(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(2), mine[0].TrackCount)
}

func TestCreatePlaylistValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.user(t, "ann")

	_, err := f.svc.CreatePlaylist(ctx, uid, model.CreatePlaylistRequest{Title: "   "})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = f.svc.CreatePlaylist(ctx, uid, model.CreatePlaylistRequest{Title: strings.Repeat("x", 151)})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = f.svc.CreatePlaylist(ctx, uid, model.CreatePlaylistRequest{Title: strings.Repeat("x", 150)})
	assert.NoError(t, err)

	_, err = f.svc.CreatePlaylist(ctx, 4242, model.CreatePlaylistRequest{Title: "ghost"})
	assert.True(t, apperr.Is(err, apperr.KindAuth))

	missing := int64(777)
	_, err = f.svc.CreatePlaylist(ctx, uid, model.CreatePlaylistRequest{Title: "child", ParentPlaylistID: &missing})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestUploadCreatesArtistAndAlbumOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.upload(t, model.UploadRequest{
		Filename:   "Blue Song.mp3",
		Title:      "Blue Song",
		ArtistName: "Nina",
		AlbumTitle: "Blue",
		Duration:   "3:20",
	})
	assert.Equal(t, "Nina", first.ArtistName)
	require.NotNil(t, first.AlbumTitle)
	assert.Equal(t, "Blue", *first.AlbumTitle)
	assert.Equal(t, "00:03:20", first.Duration)
	assert.Equal(t, 200, first.DurationSeconds)
	require.NotNil(t, first.ReleaseDate)
	assert.Equal(t, "2024-03-09", *first.ReleaseDate)
	require.NotNil(t, first.FilePath)
	assert.Equal(t, "Blue_Song.mp3", *first.FilePath)

	second := f.upload(t, model.UploadRequest{
		Filename:   "Blue Song.mp3",
		ArtistName: "nina",
		AlbumTitle: "Blue",
		Duration:   "not a time",
	})
	assert.Equal(t, *first.ArtistID, *second.ArtistID)
	assert.Equal(t, *first.AlbumID, *second.AlbumID)
	assert.Equal(t, "00:00:00", second.Duration)
	assert.NotEqual(t, *first.FilePath, *second.FilePath)
	// title falls back to the stored file name
	assert.Equal(t, *second.FilePath, second.Title)

	counts, err := f.store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Artists)
	assert.Equal(t, int64(1), counts.Albums)
	assert.Equal(t, int64(2), counts.Tracks)

	b, err := os.ReadFile(f.files.Path(*first.FilePath))
	require.NoError(t, err)
	assert.Equal(t, "audio:Blue Song.mp3", string(b))
	assert.Equal(t, []string{*first.FilePath, *second.FilePath}, f.mirror.put)
}

func TestUploadRejectsBadFiles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.UploadTrack(ctx, 1, model.UploadRequest{Filename: ""}, strings.NewReader("x"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = f.svc.UploadTrack(ctx, 1, model.UploadRequest{Filename: "virus.exe"}, strings.NewReader("x"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	names, err := f.files.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestUploadStoreFailureKeepsFileAndRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.db.Migrator().DropTable(&model.Track{}))

	_, err := f.svc.UploadTrack(ctx, 1, model.UploadRequest{
		Filename:   "a.mp3",
		Title:      "A",
		ArtistName: "Nobody",
		AlbumTitle: "Nothing",
	}, strings.NewReader("audio"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindStore), "got %v", err)

	names, err := f.files.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mp3"}, names)

	n, err := f.store.Artists().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	album, err := f.store.Albums().FindByTitle(ctx, "Nothing", nil)
	require.NoError(t, err)
	assert.Nil(t, album)
	assert.Empty(t, f.mirror.put)
}

func TestDeleteTrackRemovesRowsAndFile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.user(t, "ann")
	tr := f.upload(t, model.UploadRequest{Filename: "gone.mp3", Title: "Gone"})

	_, err := f.svc.Like(ctx, uid, tr.TrackID)
	require.NoError(t, err)
	pl, err := f.svc.CreatePlaylist(ctx, uid, model.CreatePlaylistRequest{Title: "p"})
	require.NoError(t, err)
	_, err = f.svc.AddToPlaylist(ctx, uid, pl.PlaylistID, tr.TrackID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteTrack(ctx, uid, tr.TrackID))

	_, err = f.svc.GetTrack(ctx, tr.TrackID, nil)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.False(t, f.files.Exists(*tr.FilePath))
	assert.Equal(t, []string{*tr.FilePath}, f.mirror.removed)

	counts, err := f.store.Likes().Counts(ctx, []int64{tr.TrackID})
	require.NoError(t, err)
	assert.Zero(t, counts[tr.TrackID])
	view, err := f.svc.PlaylistDetail(ctx, pl.PlaylistID, true, nil)
	require.NoError(t, err)
	assert.Zero(t, view.TrackCount)
	assert.Empty(t, view.Tracks)

	err = f.svc.DeleteTrack(ctx, uid, tr.TrackID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestArtistQueries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tr := f.upload(t, model.UploadRequest{Filename: "a.mp3", Title: "A", ArtistName: "Nina", AlbumTitle: "Blue"})
	f.upload(t, model.UploadRequest{Filename: "b.mp3", Title: "B", ArtistName: "Otis"})

	page, err := f.svc.ListArtists(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.Pages)
	require.Len(t, page.Artists, 1)
	assert.Equal(t, "Nina", page.Artists[0].Name)

	detail, err := f.svc.ArtistDetail(ctx, *tr.ArtistID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Nina", detail.Artist.Name)
	require.Len(t, detail.Tracks, 1)
	require.Len(t, detail.Albums, 1)
	assert.Equal(t, "Blue", detail.Albums[0].Title)
	assert.Equal(t, "Nina", detail.Albums[0].ArtistName)

	_, err = f.svc.ArtistDetail(ctx, 9999, nil)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestUserLikedTracks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.user(t, "ann")
	ids := f.tracks(t, "x", "y")
	_, err := f.svc.Like(ctx, uid, ids[1])
	require.NoError(t, err)

	likes, err := f.svc.UserLikedTracks(ctx, uid, nil)
	require.NoError(t, err)
	assert.Equal(t, "ann", likes.Username)
	assert.Equal(t, 1, likes.TotalLikes)
	require.Len(t, likes.LikedTracks, 1)
	assert.Equal(t, "y", likes.LikedTracks[0].Title)
	assert.True(t, likes.LikedTracks[0].IsLikedByUser)

	_, err = f.svc.UserLikedTracks(ctx, 9999, nil)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestHealthAndPlans(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "ann")
	f.tracks(t, "x")

	h, err := f.svc.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, "connected", h.Database)
	assert.Equal(t, int64(1), h.Users)
	assert.Equal(t, int64(1), h.Tracks)

	plans, err := f.svc.SubscriptionPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, len(model.DefaultPlans))
	assert.Equal(t, "Free", plans[0].Name)
}
