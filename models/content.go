package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type ContentType string

const (
	ContentAbout   ContentType = "about"
	ContentHistory ContentType = "history"
	ContentContact ContentType = "contact"
	ContentHero    ContentType = "hero"
	ContentOther   ContentType = "other"
)

func (t ContentType) IsValid() bool {
	switch t {
	case ContentAbout, ContentHistory, ContentContact, ContentHero, ContentOther:
		return true
	}
	return false
}

// Metadata is a free-form string map stored as a JSON column.
type Metadata map[string]string

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		m = Metadata{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal Metadata: unsupported type %T", value)
	}
	return json.Unmarshal(data, m)
}

// Content is a keyed page-text entry, upserted by the back office.
type Content struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	Key       string      `json:"key" gorm:"uniqueIndex"`
	Title     string      `json:"title"`
	TitleEn   string      `json:"titleEn"`
	Body      string      `json:"content"`
	BodyEn    string      `json:"contentEn"`
	Type      ContentType `json:"type" gorm:"default:other"`
	Metadata  Metadata    `json:"metadata" gorm:"type:text"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
