package model

import "time"

// UnknownArtist is shown for tracks and albums without an artist row.
const UnknownArtist = "Unknown"

// Track represents an audio track in the catalog.
type Track struct {
	ID          int64      `json:"track_id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"size:150;not null;index"`
	ArtistID    *int64     `json:"artist_id" gorm:"index"`
	AlbumID     *int64     `json:"album_id" gorm:"index"`
	FilePath    *string    `json:"file_path" gorm:"size:255"` // nil for catalog-only rows
	Duration    *Duration  `json:"duration" gorm:"type:time"`
	ReleaseDate *time.Time `json:"release_date" gorm:"type:date"`

	Artist *Artist `json:"-" gorm:"foreignKey:ArtistID"`
	Album  *Album  `json:"-" gorm:"foreignKey:AlbumID"`
}

func (Track) TableName() string {
	return "tracks"
}

// TrackView is the API form of a track, enriched with like data.
type TrackView struct {
	TrackID         int64   `json:"track_id"`
	Title           string  `json:"title"`
	ArtistID        *int64  `json:"artist_id"`
	ArtistName      string  `json:"artist_name"`
	AlbumID         *int64  `json:"album_id"`
	AlbumTitle      *string `json:"album_title"`
	Duration        string  `json:"duration"`
	DurationSeconds int     `json:"duration_seconds"`
	ReleaseDate     *string `json:"release_date"`
	LikesCount      int64   `json:"likes_count"`
	IsLikedByUser   bool    `json:"is_liked_by_user"`
	FilePath        *string `json:"file_path"`
}

// ToResponse converts the row into its API form. Artist and Album must be
// preloaded for their names to appear.
func (t *Track) ToResponse(likes int64, liked bool) TrackView {
	v := TrackView{
		TrackID:       t.ID,
		Title:         t.Title,
		ArtistID:      t.ArtistID,
		ArtistName:    UnknownArtist,
		AlbumID:       t.AlbumID,
		Duration:      "00:00:00",
		ReleaseDate:   formatDate(t.ReleaseDate),
		LikesCount:    likes,
		IsLikedByUser: liked,
		FilePath:      t.FilePath,
	}
	if t.Artist != nil {
		v.ArtistName = t.Artist.Name
	}
	if t.Album != nil {
		title := t.Album.Title
		v.AlbumTitle = &title
	}
	if t.Duration != nil {
		v.Duration = t.Duration.String()
		v.DurationSeconds = t.Duration.Seconds()
	}
	return v
}

// TrackPage is one page of the track listing.
type TrackPage struct {
	Tracks      []TrackView `json:"tracks"`
	Total       int64       `json:"total"`
	Pages       int         `json:"pages"`
	CurrentPage int         `json:"current_page"`
	Message     string      `json:"message,omitempty"`
}

// Like records that a user liked a track. The pair is the primary key, so a
// second like of the same track fails at the store.
type Like struct {
	UserID  int64     `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	TrackID int64     `json:"track_id" gorm:"primaryKey;autoIncrement:false;index"`
	LikedAt time.Time `json:"liked_at" gorm:"autoCreateTime"`
}

func (Like) TableName() string {
	return "likes"
}

// LikeResult is returned by like and unlike.
type LikeResult struct {
	Message       string    `json:"message"`
	LikesCount    int64     `json:"likes_count"`
	IsLikedByUser bool      `json:"is_liked_by_user"`
	Track         TrackView `json:"track"`
}

// UserLikes lists the tracks a user has liked.
type UserLikes struct {
	UserID      int64       `json:"user_id"`
	Username    string      `json:"username"`
	LikedTracks []TrackView `json:"liked_tracks"`
	TotalLikes  int         `json:"total_likes"`
}

// UploadRequest carries a multipart upload after parsing.
type UploadRequest struct {
	Filename   string
	Title      string
	ArtistName string
	AlbumTitle string
	Duration   string
}
