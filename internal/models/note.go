package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note mirrors an encrypted on-chain note. The only mutable record type: pin
// state and txId change on every on-chain update, and notes can be hard deleted.
type Note struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	NoteID   string `gorm:"uniqueIndex;not null" json:"noteId"`
	OwnerID  string `gorm:"type:uuid;not null;index" json:"ownerId"`
	Owner    *User  `gorm:"foreignKey:OwnerID" json:"-"`
	IsPinned bool   `gorm:"default:false" json:"isPinned"`
	TxID     string `json:"txId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Note model
func (Note) TableName() string {
	return "notes"
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
