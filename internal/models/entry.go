package models

import "time"

// SymptomEntry is a user's symptom report for a single UTC calendar day.
// Date carries the canonical day key (midnight UTC); the (user_id, date)
// pair is unique, so repeated submissions for the same day always land on
// the same row.
type SymptomEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_entry_user_date" json:"userId"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_entry_user_date" json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntrySymptom links an entry to a catalog symptom. It is a pure junction
// row with no identity of its own; membership for an entry is only ever
// replaced as a whole.
type EntrySymptom struct {
	EntryID   uint `gorm:"primaryKey;autoIncrement:false"`
	SymptomID uint `gorm:"primaryKey;autoIncrement:false"`
}

func (EntrySymptom) TableName() string {
	return "entry_symptoms"
}

// LocatedEntry is the read model produced by the recent-window scan: an
// entry row joined with its owner's coordinates. Only rows whose owner has
// a full coordinate pair are ever produced.
type LocatedEntry struct {
	EntryID   uint      `gorm:"column:id"`
	UserID    uint      `gorm:"column:user_id"`
	Date      time.Time `gorm:"column:date"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	Latitude  float64   `gorm:"column:latitude"`
	Longitude float64   `gorm:"column:longitude"`
}
