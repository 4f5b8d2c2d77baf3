package catalog

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"streammusic/core/apperr"
	"streammusic/logger"
	"streammusic/model"
	"streammusic/repository"
)

var allowedExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".m4a":  true,
	".flac": true,
}

// UploadTrack stores the audio in body and creates its catalog row, creating
// the artist and album when they do not exist yet.
//
// The file is written before the transaction starts. If the transaction
// fails the file stays on disk unreferenced.
func (s *Service) UploadTrack(ctx context.Context, userID int64, req model.UploadRequest, body io.Reader) (*model.TrackView, error) {
	if strings.TrimSpace(req.Filename) == "" {
		return nil, apperr.Validation("No selected file")
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(req.Filename))] {
		return nil, apperr.Validation("File type not allowed")
	}

	stored, err := s.files.Save(req.Filename, body)
	if err != nil {
		return nil, apperr.Store("save upload", err)
	}
	logger.Info("file saved", logger.String("file", stored), logger.Int64("userId", userID))

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = stored
	}
	track := &model.Track{
		Title:       title,
		FilePath:    &stored,
		ReleaseDate: today(s.now()),
	}
	if d := strings.TrimSpace(req.Duration); d != "" {
		if parsed, err := model.ParseDuration(d); err == nil {
			track.Duration = &parsed
		} else {
			logger.Debug("ignoring unparsable duration", logger.String("duration", d))
		}
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if name := strings.TrimSpace(req.ArtistName); name != "" {
			artist, err := findOrCreateArtist(ctx, tx, name)
			if err != nil {
				return err
			}
			track.ArtistID = &artist.ID
		}
		if albumTitle := strings.TrimSpace(req.AlbumTitle); albumTitle != "" {
			album, err := findOrCreateAlbum(ctx, tx, albumTitle, track.ArtistID)
			if err != nil {
				return err
			}
			track.AlbumID = &album.ID
		}
		if err := tx.Tracks().Create(ctx, track); err != nil {
			return apperr.Store("create track", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("upload left unreferenced file", logger.String("file", stored), logger.ErrorField(err))
		return nil, err
	}

	if s.mirror != nil {
		if err := s.mirror.Put(ctx, stored, s.files.Path(stored)); err != nil {
			logger.Warn("failed to mirror upload", logger.String("file", stored), logger.ErrorField(err))
		}
	}

	created, err := s.store.Tracks().GetByID(ctx, track.ID)
	if err != nil {
		return nil, apperr.Store("load track", err)
	}
	if created == nil {
		return nil, apperr.Store("load track", errors.New("created track not found"))
	}
	v := created.ToResponse(0, false)
	return &v, nil
}

func findOrCreateArtist(ctx context.Context, tx repository.Store, name string) (*model.Artist, error) {
	artist, err := tx.Artists().FindByName(ctx, name)
	if err != nil {
		return nil, apperr.Store("find artist", err)
	}
	if artist != nil {
		return artist, nil
	}
	artist = &model.Artist{Name: name}
	if err := tx.Artists().Create(ctx, artist); err != nil {
		return nil, apperr.Store("create artist", err)
	}
	return artist, nil
}

func findOrCreateAlbum(ctx context.Context, tx repository.Store, title string, artistID *int64) (*model.Album, error) {
	album, err := tx.Albums().FindByTitle(ctx, title, artistID)
	if err != nil {
		return nil, apperr.Store("find album", err)
	}
	if album != nil {
		return album, nil
	}
	album = &model.Album{Title: title, ArtistID: artistID}
	if err := tx.Albums().Create(ctx, album); err != nil {
		return nil, apperr.Store("create album", err)
	}
	return album, nil
}

func today(now time.Time) *time.Time {
	y, m, d := now.Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
