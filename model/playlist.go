package model

import "time"

// MaxPlaylistTitle bounds Playlist.Title in characters.
const MaxPlaylistTitle = 150

// Playlist is an ordered collection of tracks owned by one user.
type Playlist struct {
	ID               int64     `json:"playlist_id" gorm:"primaryKey;autoIncrement"`
	UserID           int64     `json:"user_id" gorm:"index;not null"`
	Title            string    `json:"title" gorm:"size:150;not null"`
	CreationDate     time.Time `json:"creation_date" gorm:"autoCreateTime"`
	ParentPlaylistID *int64    `json:"parent_playlist_id" gorm:"index"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistTrack places a track in a playlist. OrderNum is unique within a
// playlist and grows with each insertion. Removal leaves gaps.
type PlaylistTrack struct {
	PlaylistID int64  `json:"playlist_id" gorm:"primaryKey;autoIncrement:false;uniqueIndex:idx_playlist_order,priority:1"`
	TrackID    int64  `json:"track_id" gorm:"primaryKey;autoIncrement:false;index"`
	OrderNum   int    `json:"order_num" gorm:"not null;uniqueIndex:idx_playlist_order,priority:2"`
	Track      *Track `json:"-" gorm:"foreignKey:TrackID"`
}

func (PlaylistTrack) TableName() string {
	return "playlist_tracks"
}

// PlaylistView is the API form of a playlist. Tracks is only set on detail reads.
type PlaylistView struct {
	PlaylistID       int64       `json:"playlist_id"`
	UserID           int64       `json:"user_id"`
	Title            string      `json:"title"`
	CreationDate     time.Time   `json:"creation_date"`
	ParentPlaylistID *int64      `json:"parent_playlist_id"`
	TrackCount       int64       `json:"track_count"`
	Tracks           []TrackView `json:"tracks,omitempty"`
}

func (p *Playlist) ToResponse(trackCount int64) PlaylistView {
	return PlaylistView{
		PlaylistID:       p.ID,
		UserID:           p.UserID,
		Title:            p.Title,
		CreationDate:     p.CreationDate,
		ParentPlaylistID: p.ParentPlaylistID,
		TrackCount:       trackCount,
	}
}

// CreatePlaylistRequest is the body of POST /api/playlists.
type CreatePlaylistRequest struct {
	Title            string `json:"title"`
	ParentPlaylistID *int64 `json:"parent_playlist_id"`
}

// AddTrackRequest is the body of POST /api/playlists/{id}/tracks.
type AddTrackRequest struct {
	TrackID int64 `json:"track_id"`
}

// PlaylistResult wraps a playlist mutation response.
type PlaylistResult struct {
	Message  string       `json:"message"`
	Playlist PlaylistView `json:"playlist"`
}

// Health summarizes store connectivity and catalog size.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Users    int64  `json:"users"`
	Tracks   int64  `json:"tracks"`
	Artists  int64  `json:"artists"`
	Albums   int64  `json:"albums"`
}

// AllModels lists every persisted type, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&SubscriptionPlan{},
		&User{},
		&Artist{},
		&Album{},
		&Track{},
		&Like{},
		&Playlist{},
		&PlaylistTrack{},
		&Payment{},
	}
}
