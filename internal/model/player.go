package model

import "time"

// Player is a registered display device. PlayerID is the externally chosen
// identity the device itself knows; ID is internal to the database.
type Player struct {
	ID        int       `db:"id"         json:"id"`
	PlayerID  string    `db:"player_id"  json:"player_id"`
	Location  string    `db:"location"   json:"location"`
	Status    string    `db:"status"     json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

const (
	PlayerStatusOnline  = "online"
	PlayerStatusOffline = "offline"
)
