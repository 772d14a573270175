// newshound/sources/psql/models/news.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewsRecord is one accepted search result persisted for later queries.
type NewsRecord struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	RunID       string     `json:"run_id" gorm:"type:varchar(64);index"`
	Title       string     `json:"title" gorm:"type:text"`
	PublishedAt *time.Time `json:"published_at"`
	Description string     `json:"description" gorm:"type:text"`
	Picture     string     `json:"picture" gorm:"type:varchar(128)"`
	PhraseCount int        `json:"phrase_count"`
	HasMoney    bool       `json:"has_money"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (NewsRecord) TableName() string {
	return "news_records"
}

// BeforeCreate assigns the id in Go so the model works on both postgres
// and the sqlite test database.
func (n *NewsRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
