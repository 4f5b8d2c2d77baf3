// Package media maps tracks onto audio files in the upload directory.
package media

import (
	"strconv"
	"strings"
	"unicode"

	"streammusic/core/apperr"
	"streammusic/logger"
	"streammusic/model"
)

// FileIndex is the view of the upload directory the resolver needs.
type FileIndex interface {
	Exists(name string) bool
	List() ([]string, error)
	Path(name string) string
}

type Resolver struct {
	files FileIndex
}

func NewResolver(files FileIndex) *Resolver {
	return &Resolver{files: files}
}

// Resolve returns the absolute path of the file backing track.
//
// The stored file_path wins when it exists. Otherwise the first file whose
// name contains the decimal track id is used, then the first whose
// normalized name contains the normalized title. The fallbacks are
// heuristics: id 1 also matches "12.mp3", and a short title can match an
// unrelated file.
func (r *Resolver) Resolve(track *model.Track) (string, error) {
	if track.FilePath != nil && r.files.Exists(*track.FilePath) {
		return r.files.Path(*track.FilePath), nil
	}

	names, err := r.files.List()
	if err != nil {
		return "", apperr.Store("list upload dir", err)
	}

	id := strconv.FormatInt(track.ID, 10)
	for _, name := range names {
		if strings.Contains(name, id) {
			logger.Debug("resolved track by id", logger.Int64("trackId", track.ID), logger.String("file", name))
			return r.files.Path(name), nil
		}
	}

	if title := normalize(track.Title); title != "" {
		for _, name := range names {
			if strings.Contains(normalize(name), title) {
				logger.Debug("resolved track by title", logger.Int64("trackId", track.ID), logger.String("file", name))
				return r.files.Path(name), nil
			}
		}
	}

	logger.Warn("audio file not found", logger.Int64("trackId", track.ID))
	return "", apperr.NotFound("Audio file not found")
}

// normalize keeps letters and digits, lowercased.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
