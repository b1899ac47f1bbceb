package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote is an immutable mirror of an on-chain ballot. The unique nullifier is the
// sole double-vote guard; it is stored as opaque client-supplied data and never
// recomputed or verified here.
type Vote struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	PollDbID    string `gorm:"type:uuid;not null;index" json:"pollDbId"`
	VoterID     string `gorm:"type:uuid;not null" json:"voterId"`
	Voter       *User  `gorm:"foreignKey:VoterID" json:"-"`
	OptionIndex int    `gorm:"not null" json:"optionIndex"`
	Nullifier   string `gorm:"uniqueIndex;not null" json:"nullifier"`
	TxID        string `json:"txId"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for the Vote model
func (Vote) TableName() string {
	return "votes"
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
