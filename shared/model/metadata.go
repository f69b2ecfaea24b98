package model

import "time"

type Metadata struct {
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Touch stamps both timestamps for a fresh row.
func (m *Metadata) Touch(now time.Time) {
	m.CreatedAt = now
	m.UpdatedAt = now
}
