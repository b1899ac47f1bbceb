package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Poll is an immutable mirror of an on-chain poll. Options is the ordered option
// list serialized as JSON; every reader must go through OptionList so the
// serialize/deserialize contract stays in one place.
type Poll struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	PollID    string         `gorm:"uniqueIndex;not null" json:"pollId"`
	Question  string         `gorm:"not null" json:"question"`
	Options   datatypes.JSON `json:"options"`
	CreatorID string         `gorm:"type:uuid;not null;index" json:"creatorId"`
	Creator   *User          `gorm:"foreignKey:CreatorID" json:"-"`
	EndBlock  int64          `json:"endBlock"`
	TxID      string         `json:"txId"`

	CreatedAt time.Time `json:"createdAt"`

	Votes []Vote `gorm:"foreignKey:PollDbID" json:"votes,omitempty"`
}

// TableName specifies the table name for the Poll model
func (Poll) TableName() string {
	return "polls"
}

func (p *Poll) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// OptionList deserializes the stored options column
func (p *Poll) OptionList() ([]string, error) {
	var options []string
	if err := json.Unmarshal(p.Options, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// SerializeOptions encodes an ordered option list for storage
func SerializeOptions(options []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
