package database

import (
	"context"

	"github.com/igreja-site/cms-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db                   *gorm.DB
	postRepo             *PostRepo
	postRelationRepo     *PostRelationRepo
	bannerRepo           *TableRepo[models.Banner]
	pageBannerRepo       *TableRepo[models.PageBanner]
	eventRepo            *TableRepo[models.Event]
	testimonialRepo      *TableRepo[models.Testimonial]
	departmentRepo       *DepartmentRepo
	departmentMemberRepo *TableRepo[models.DepartmentMember]
	galleryLinkRepo      *TableRepo[models.GalleryLink]
	aboutCoverRepo       *SingletonRepo[models.AboutPageCover]
	financialRepo        *SingletonRepo[models.Financial]
	siteSettingsRepo     *SingletonRepo[models.SiteSettings]
	adminUserRepo        *AdminUserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                   db,
		postRepo:             NewPostRepo(db),
		postRelationRepo:     NewPostRelationRepo(db),
		bannerRepo:           NewTableRepo[models.Banner](db, "position asc, created_at asc"),
		pageBannerRepo:       NewTableRepo[models.PageBanner](db, "page asc"),
		eventRepo:            NewTableRepo[models.Event](db, "starts_at asc"),
		testimonialRepo:      NewTableRepo[models.Testimonial](db, "position asc, created_at desc"),
		departmentRepo:       NewDepartmentRepo(db),
		departmentMemberRepo: NewTableRepo[models.DepartmentMember](db, "is_leader desc, position asc, name asc"),
		galleryLinkRepo:      NewTableRepo[models.GalleryLink](db, "position asc, event_date desc"),
		aboutCoverRepo:       NewSingletonRepo[models.AboutPageCover](db),
		financialRepo:        NewSingletonRepo[models.Financial](db),
		siteSettingsRepo:     NewSingletonRepo[models.SiteSettings](db),
		adminUserRepo:        NewAdminUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) PostRelationRepo() *PostRelationRepo {
	return d.postRelationRepo
}

func (d Database) BannerRepo() *TableRepo[models.Banner] {
	return d.bannerRepo
}

func (d Database) PageBannerRepo() *TableRepo[models.PageBanner] {
	return d.pageBannerRepo
}

func (d Database) EventRepo() *TableRepo[models.Event] {
	return d.eventRepo
}

func (d Database) TestimonialRepo() *TableRepo[models.Testimonial] {
	return d.testimonialRepo
}

func (d Database) DepartmentRepo() *DepartmentRepo {
	return d.departmentRepo
}

func (d Database) DepartmentMemberRepo() *TableRepo[models.DepartmentMember] {
	return d.departmentMemberRepo
}

func (d Database) GalleryLinkRepo() *TableRepo[models.GalleryLink] {
	return d.galleryLinkRepo
}

func (d Database) AboutCoverRepo() *SingletonRepo[models.AboutPageCover] {
	return d.aboutCoverRepo
}

func (d Database) FinancialRepo() *SingletonRepo[models.Financial] {
	return d.financialRepo
}

func (d Database) SiteSettingsRepo() *SingletonRepo[models.SiteSettings] {
	return d.siteSettingsRepo
}

func (d Database) AdminUserRepo() *AdminUserRepo {
	return d.adminUserRepo
}

// Migrate creates or alters every table to match the models.
func (d Database) Migrate() error {
	return d.db.AutoMigrate(models.All()...)
}

// Ping checks that the underlying connection is alive.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
