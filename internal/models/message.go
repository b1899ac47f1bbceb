package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is an immutable mirror of a wallet-to-wallet message settled on chain.
// SenderHash is an opaque client-supplied value, deliberately not a User reference,
// so a stored message cannot be linked back to a sender row.
type Message struct {
	ID               string `gorm:"primaryKey;type:uuid" json:"id"`
	MessageID        string `gorm:"uniqueIndex;not null" json:"messageId"`
	RecipientID      string `gorm:"type:uuid;not null;index" json:"recipientId"`
	Recipient        *User  `gorm:"foreignKey:RecipientID" json:"-"`
	SenderHash       string `gorm:"not null" json:"senderHash"`
	EncryptedContent string `gorm:"default:''" json:"encryptedContent"`
	TxID             string `json:"txId"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
