package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identity and timestamps shared by every table.
type Base struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// BeforeCreate assigns the id on the client so the same models work on
// postgres and on the sqlite databases used in tests.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All lists every model managed by AutoMigrate, parents before children.
func All() []interface{} {
	return []interface{}{
		&Post{},
		&PostRelation{},
		&Banner{},
		&PageBanner{},
		&Event{},
		&Testimonial{},
		&Financial{},
		&SiteSettings{},
		&Department{},
		&DepartmentMember{},
		&AboutPageCover{},
		&GalleryLink{},
		&AdminUser{},
	}
}

// ClearIdentity drops a client supplied id and timestamps before a create.
func (b *Base) ClearIdentity() {
	b.ID = uuid.Nil
	b.CreatedAt = time.Time{}
	b.UpdatedAt = time.Time{}
}
