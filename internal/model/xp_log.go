package model

import (
	"time"
)

// XPLog is the append-only ledger of XP grants. DedupKey, when set, makes a
// grant one-shot per participant: the composite unique index rejects a second
// insert (Postgres leaves NULL keys unconstrained, so regular quiz grants
// repeat freely). The gamification service treats that rejection as a no-op.
type XPLog struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ParticipantID uint      `json:"participant_id" gorm:"not null;index;uniqueIndex:idx_xp_logs_dedup"`
	Amount        int       `json:"amount" gorm:"not null"`
	Reason        string    `json:"reason" gorm:"not null"`
	DedupKey      *string   `json:"-" gorm:"uniqueIndex:idx_xp_logs_dedup"`
	CreatedAt     time.Time `json:"created_at"`
}
