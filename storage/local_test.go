package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"My Song.MP3":          "My_Song.mp3",
		"../../etc/passwd":     "passwd",
		`C:\music\track 1.wav`: "track_1.wav",
		"héllo wörld.flac":     "hllo_wrld.flac",
		"???.ogg":              "fallback_filename.ogg",
		".hidden":              "fallback_filename.hidden",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFilename(in), in)
	}
}

func TestSaveAvoidsCollisions(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	l.now = func() time.Time { return time.Unix(1700000000, 0) }

	first, err := l.Save("song.mp3", strings.NewReader("one"))
	require.NoError(t, err)
	assert.Equal(t, "song.mp3", first)

	second, err := l.Save("song.mp3", strings.NewReader("two"))
	require.NoError(t, err)
	assert.Equal(t, "song_1700000000.mp3", second)

	third, err := l.Save("song.mp3", strings.NewReader("three"))
	require.NoError(t, err)
	assert.Equal(t, "song_1700000000_1.mp3", third)

	b, err := os.ReadFile(filepath.Join(l.Dir(), first))
	require.NoError(t, err)
	assert.Equal(t, "one", string(b))

	names, err := l.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"song.mp3", "song_1700000000.mp3", "song_1700000000_1.mp3"}, names)
}

func TestRemoveMissingIsNotAnError(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	name, err := l.Save("a.mp3", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, l.Exists(name))
	require.NoError(t, l.Remove(name))
	assert.False(t, l.Exists(name))
	assert.NoError(t, l.Remove(name))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "audio/mpeg", ContentType("a.mp3"))
	assert.Equal(t, "audio/flac", ContentType("b.flac"))
	assert.Equal(t, "application/octet-stream", ContentType("noext"))
	assert.Equal(t, "audio/x.mp3", ObjectName("/tmp/x.mp3"))
}
