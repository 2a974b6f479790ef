package model

import "time"

type Content struct {
	ID           int       `db:"id"            json:"id"`
	Filename     string    `db:"filename"      json:"filename"`
	OriginalName string    `db:"original_name" json:"original_name"`
	Type         string    `db:"type"          json:"type"`
	URL          string    `db:"url"           json:"url"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}
