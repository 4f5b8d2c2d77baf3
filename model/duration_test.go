package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:03:25", 205, false},
		{"1:02:03", 3723, false},
		{"03:25", 205, false},
		{"3:25", 205, false},
		{" 04:00 ", 240, false},
		{"abc", 0, true},
		{"", 0, true},
		{"3:75", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Seconds())
		})
	}
}

func TestDurationScan(t *testing.T) {
	var d Duration

	require.NoError(t, d.Scan([]byte("00:04:10.000000")))
	assert.Equal(t, "00:04:10", d.String())

	require.NoError(t, d.Scan("01:00:01"))
	assert.Equal(t, 3601, d.Seconds())

	require.NoError(t, d.Scan(time.Date(0, 1, 1, 0, 2, 30, 0, time.UTC)))
	assert.Equal(t, 150, d.Seconds())

	assert.Error(t, d.Scan(3.5))
}

func TestTrackToResponseDefaults(t *testing.T) {
	tr := &Track{ID: 7, Title: "Untitled"}
	v := tr.ToResponse(0, false)

	assert.Equal(t, UnknownArtist, v.ArtistName)
	assert.Equal(t, "00:00:00", v.Duration)
	assert.Nil(t, v.AlbumTitle)
	assert.Nil(t, v.ReleaseDate)

	d := DurationFromSeconds(200)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tr.Duration = &d
	tr.ReleaseDate = &day
	tr.Artist = &Artist{Name: "Nina"}
	tr.Album = &Album{Title: "Blue"}
	v = tr.ToResponse(3, true)

	assert.Equal(t, "Nina", v.ArtistName)
	assert.Equal(t, "Blue", *v.AlbumTitle)
	assert.Equal(t, "00:03:20", v.Duration)
	assert.Equal(t, 200, v.DurationSeconds)
	assert.Equal(t, "2024-05-01", *v.ReleaseDate)
	assert.Equal(t, int64(3), v.LikesCount)
	assert.True(t, v.IsLikedByUser)
}

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	u := &User{ID: 1, Username: "ann", Email: "ann@example.com", PasswordHash: "secret-hash"}
	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret-hash")

	b, err = json.Marshal(u.ToResponse())
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret-hash")
}
