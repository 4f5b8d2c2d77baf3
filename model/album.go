package model

import "time"

// Artist is a performer tracks and albums are credited to.
type Artist struct {
	ID    int64  `json:"artist_id" gorm:"primaryKey;autoIncrement"`
	Name  string `json:"name" gorm:"size:100;not null;index"`
	Genre string `json:"genre" gorm:"size:50"`
}

func (Artist) TableName() string {
	return "artists"
}

// Album groups tracks, optionally under one artist.
type Album struct {
	ID          int64      `json:"album_id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"size:150;not null;index"`
	ArtistID    *int64     `json:"artist_id" gorm:"index"`
	ReleaseDate *time.Time `json:"release_date" gorm:"type:date"`
	Artist      *Artist    `json:"-" gorm:"foreignKey:ArtistID"`
}

func (Album) TableName() string {
	return "albums"
}

// AlbumView is the API form of an album.
type AlbumView struct {
	AlbumID     int64   `json:"album_id"`
	Title       string  `json:"title"`
	ArtistID    *int64  `json:"artist_id"`
	ArtistName  string  `json:"artist_name"`
	ReleaseDate *string `json:"release_date"`
}

func (a *Album) ToResponse() AlbumView {
	name := UnknownArtist
	if a.Artist != nil {
		name = a.Artist.Name
	}
	return AlbumView{
		AlbumID:     a.ID,
		Title:       a.Title,
		ArtistID:    a.ArtistID,
		ArtistName:  name,
		ReleaseDate: formatDate(a.ReleaseDate),
	}
}

// ArtistDetail groups an artist with their catalog.
type ArtistDetail struct {
	Artist Artist      `json:"artist"`
	Tracks []TrackView `json:"tracks"`
	Albums []AlbumView `json:"albums"`
}

// ArtistPage is one page of the artist listing.
type ArtistPage struct {
	Artists     []Artist `json:"artists"`
	Total       int64    `json:"total"`
	Pages       int      `json:"pages"`
	CurrentPage int      `json:"current_page"`
	Message     string   `json:"message,omitempty"`
}

func formatDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
