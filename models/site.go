package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Banner is a slide of the home page carousel.
type Banner struct {
	Base
	Title      string  `json:"title" db:"title" gorm:"column:title;type:text;not null" validate:"required,max=120"`
	Subtitle   *string `json:"subtitle,omitempty" db:"subtitle" gorm:"column:subtitle;type:text"`
	ImageURL   string  `json:"image_url" db:"image_url" gorm:"column:image_url;type:text;not null" validate:"required,url"`
	LinkURL    *string `json:"link_url,omitempty" db:"link_url" gorm:"column:link_url;type:text" validate:"omitempty,url"`
	ButtonText *string `json:"button_text,omitempty" db:"button_text" gorm:"column:button_text;type:text"`
	Position   int     `json:"position" db:"position" gorm:"column:position;not null;default:0"`
	Active     bool    `json:"active" db:"active" gorm:"column:active;not null"`
}

// PageBanner is the header image of an inner page (about, blog, estudos...).
type PageBanner struct {
	Base
	Page     string  `json:"page" db:"page" gorm:"column:page;type:text;not null;uniqueIndex:idx_page_banners_page" validate:"required,max=60"`
	Title    string  `json:"title" db:"title" gorm:"column:title;type:text;not null" validate:"required"`
	Subtitle *string `json:"subtitle,omitempty" db:"subtitle" gorm:"column:subtitle;type:text"`
	ImageURL string  `json:"image_url" db:"image_url" gorm:"column:image_url;type:text;not null" validate:"required,url"`
}

type Event struct {
	Base
	Title       string     `json:"title" db:"title" gorm:"column:title;type:text;not null" validate:"required,max=150"`
	Description string     `json:"description" db:"description" gorm:"column:description;type:text;not null;default:''"`
	Location    *string    `json:"location,omitempty" db:"location" gorm:"column:location;type:text"`
	StartsAt    time.Time  `json:"starts_at" db:"starts_at" gorm:"column:starts_at;not null;index:idx_events_starts_at" validate:"required"`
	EndsAt      *time.Time `json:"ends_at,omitempty" db:"ends_at" gorm:"column:ends_at"`
	ImageURL    *string    `json:"image_url,omitempty" db:"image_url" gorm:"column:image_url;type:text" validate:"omitempty,url"`
	Published   bool       `json:"published" db:"published" gorm:"column:published;not null"`
}

type Testimonial struct {
	Base
	Name     string  `json:"name" db:"name" gorm:"column:name;type:text;not null" validate:"required,max=100"`
	Role     *string `json:"role,omitempty" db:"role" gorm:"column:role;type:text"`
	Message  string  `json:"message" db:"message" gorm:"column:message;type:text;not null" validate:"required"`
	PhotoURL *string `json:"photo_url,omitempty" db:"photo_url" gorm:"column:photo_url;type:text" validate:"omitempty,url"`
	Approved bool    `json:"approved" db:"approved" gorm:"column:approved;not null"`
	Position int     `json:"position" db:"position" gorm:"column:position;not null;default:0"`
}

// Financial holds the giving information (tithes and offerings) shown on the
// site. There is a single row.
type Financial struct {
	Base
	PixKey          string  `json:"pix_key" db:"pix_key" gorm:"column:pix_key;type:text;not null" validate:"required"`
	PixKeyType      string  `json:"pix_key_type" db:"pix_key_type" gorm:"column:pix_key_type;type:text;not null" validate:"required,oneof=cpf cnpj email phone random"`
	BeneficiaryName string  `json:"beneficiary_name" db:"beneficiary_name" gorm:"column:beneficiary_name;type:text;not null" validate:"required"`
	BankName        *string `json:"bank_name,omitempty" db:"bank_name" gorm:"column:bank_name;type:text"`
	Agency          *string `json:"agency,omitempty" db:"agency" gorm:"column:agency;type:text"`
	Account         *string `json:"account,omitempty" db:"account" gorm:"column:account;type:text"`
	QRCodeURL       *string `json:"qr_code_url,omitempty" db:"qr_code_url" gorm:"column:qr_code_url;type:text" validate:"omitempty,url"`
	Notes           *string `json:"notes,omitempty" db:"notes" gorm:"column:notes;type:text"`
}

type SocialLink struct {
	Network string `json:"network" validate:"required"`
	URL     string `json:"url" validate:"required,url"`
}

// SiteSettings is the single row of global contact and branding settings.
type SiteSettings struct {
	Base
	SiteName     string                          `json:"site_name" db:"site_name" gorm:"column:site_name;type:text;not null" validate:"required"`
	Address      *string                         `json:"address,omitempty" db:"address" gorm:"column:address;type:text"`
	Phone        *string                         `json:"phone,omitempty" db:"phone" gorm:"column:phone;type:text"`
	WhatsApp     *string                         `json:"whatsapp,omitempty" db:"whatsapp" gorm:"column:whatsapp;type:text"`
	Email        *string                         `json:"email,omitempty" db:"email" gorm:"column:email;type:text" validate:"omitempty,email"`
	ServiceTimes *string                         `json:"service_times,omitempty" db:"service_times" gorm:"column:service_times;type:text"`
	MapURL       *string                         `json:"map_url,omitempty" db:"map_url" gorm:"column:map_url;type:text" validate:"omitempty,url"`
	LogoURL      *string                         `json:"logo_url,omitempty" db:"logo_url" gorm:"column:logo_url;type:text" validate:"omitempty,url"`
	SocialLinks  datatypes.JSONSlice[SocialLink] `json:"social_links" db:"social_links" gorm:"column:social_links" validate:"dive"`
}

type Department struct {
	Base
	Name        string             `json:"name" db:"name" gorm:"column:name;type:text;not null" validate:"required,max=100"`
	Description string             `json:"description" db:"description" gorm:"column:description;type:text;not null;default:''"`
	ImageURL    *string            `json:"image_url,omitempty" db:"image_url" gorm:"column:image_url;type:text" validate:"omitempty,url"`
	Position    int                `json:"position" db:"position" gorm:"column:position;not null;default:0"`
	Members     []DepartmentMember `json:"members,omitempty" gorm:"foreignKey:DepartmentID;references:ID;constraint:OnDelete:CASCADE" validate:"-"`
}

// DepartmentMember is a person serving in a department. Leaders are members
// flagged with IsLeader.
type DepartmentMember struct {
	Base
	DepartmentID uuid.UUID `json:"department_id" db:"department_id" gorm:"column:department_id;type:uuid;not null;index:idx_department_members_department_id" validate:"required"`
	Name         string    `json:"name" db:"name" gorm:"column:name;type:text;not null" validate:"required,max=100"`
	Role         *string   `json:"role,omitempty" db:"role" gorm:"column:role;type:text"`
	PhotoURL     *string   `json:"photo_url,omitempty" db:"photo_url" gorm:"column:photo_url;type:text" validate:"omitempty,url"`
	IsLeader     bool      `json:"is_leader" db:"is_leader" gorm:"column:is_leader;not null;default:false"`
	Position     int       `json:"position" db:"position" gorm:"column:position;not null;default:0"`
}

// AboutPageCover is the single hero block of the about page.
type AboutPageCover struct {
	Base
	Title    string  `json:"title" db:"title" gorm:"column:title;type:text;not null" validate:"required"`
	Subtitle *string `json:"subtitle,omitempty" db:"subtitle" gorm:"column:subtitle;type:text"`
	ImageURL string  `json:"image_url" db:"image_url" gorm:"column:image_url;type:text;not null" validate:"required,url"`
}

func (AboutPageCover) TableName() string {
	return "about_page_cover"
}

// GalleryLink points to an external photo album.
type GalleryLink struct {
	Base
	Title     string     `json:"title" db:"title" gorm:"column:title;type:text;not null" validate:"required,max=150"`
	URL       string     `json:"url" db:"url" gorm:"column:url;type:text;not null" validate:"required,url"`
	CoverURL  *string    `json:"cover_url,omitempty" db:"cover_url" gorm:"column:cover_url;type:text" validate:"omitempty,url"`
	EventDate *time.Time `json:"event_date,omitempty" db:"event_date" gorm:"column:event_date"`
	Position  int        `json:"position" db:"position" gorm:"column:position;not null;default:0"`
}

type AdminUser struct {
	Base
	Email        string `json:"email" db:"email" gorm:"column:email;type:text;not null;uniqueIndex:idx_admin_users_email"`
	Name         string `json:"name" db:"name" gorm:"column:name;type:text;not null;default:''"`
	PasswordHash string `json:"-" db:"password_hash" gorm:"column:password_hash;type:text;not null"`
}
