// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	authadapters "cms_backend/internal/feature/auth/adapters"
	authusecase "cms_backend/internal/feature/auth/usecase"
	authoradapters "cms_backend/internal/feature/author/adapters"
	authorusecase "cms_backend/internal/feature/author/usecase"
	categoryadapters "cms_backend/internal/feature/category/adapters"
	categoryusecase "cms_backend/internal/feature/category/usecase"
	contentadapters "cms_backend/internal/feature/content/adapters"
	contentusecase "cms_backend/internal/feature/content/usecase"
	"cms_backend/internal/platform/config"
	"cms_backend/internal/platform/db"
	platformmongo "cms_backend/internal/platform/mongo"
)

// Repositories is one repository per feature, all backed by the same store.
type Repositories struct {
	Users      authusecase.UserRepository
	Categories categoryusecase.CategoryRepository
	Authors    authorusecase.AuthorRepository
	Content    contentusecase.ContentRepository

	// Migrate declares the indexes (mongo) or tables (gorm).
	Migrate func(ctx context.Context) error
	// Ping backs the readiness check.
	Ping  func(ctx context.Context) error
	Close func(ctx context.Context) error
}

// GormModels lists every table of the relational backend.
func GormModels() []any {
	var models []any
	models = append(models, authadapters.GormModels()...)
	models = append(models, categoryadapters.GormModels()...)
	models = append(models, authoradapters.GormModels()...)
	models = append(models, contentadapters.GormModels()...)
	return models
}

// OpenRepositories connects to the configured store and builds the repositories.
// A failure here is fatal: the process must not serve without its store.
func OpenRepositories(ctx context.Context, cfg config.StoreConfig) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		store, err := platformmongo.Connect(ctx, platformmongo.Config{
			URL:            cfg.MongoURL,
			Database:       cfg.MongoDB,
			ConnectTimeout: cfg.ConnectTimeout,
		})
		if err != nil {
			return nil, err
		}
		return NewMongoRepositories(store), nil
	case config.DriverSQLite, config.DriverPostgres:
		opener, err := db.OpenerFor(cfg.Driver)
		if err != nil {
			return nil, err
		}
		gdb, err := db.ConnectWithRetry(ctx, cfg.DSN, cfg.ConnectTimeout, opener)
		if err != nil {
			return nil, err
		}
		return NewGormRepositories(gdb), nil
	default:
		return nil, fmt.Errorf("%w: %q", db.ErrUnsupportedDriver, cfg.Driver)
	}
}

// NewMongoRepositories builds the document-store repositories over store.
func NewMongoRepositories(store *platformmongo.Store) *Repositories {
	database := store.Database()
	users := authadapters.NewUserMongo(database)
	categories := categoryadapters.NewCategoryMongo(database)
	authors := authoradapters.NewAuthorMongo(database)
	content := contentadapters.NewContentMongo(database)

	return &Repositories{
		Users:      users,
		Categories: categories,
		Authors:    authors,
		Content:    content,
		Migrate: func(ctx context.Context) error {
			return platformmongo.EnsureIndexes(ctx, users, categories, authors, content)
		},
		Ping:  store.Ping,
		Close: store.Close,
	}
}

// NewGormRepositories builds the relational repositories over gdb.
func NewGormRepositories(gdb *gorm.DB) *Repositories {
	return &Repositories{
		Users:      authadapters.NewUserGorm(gdb),
		Categories: categoryadapters.NewCategoryGorm(gdb),
		Authors:    authoradapters.NewAuthorGorm(gdb),
		Content:    contentadapters.NewContentGorm(gdb),
		Migrate: func(ctx context.Context) error {
			return db.Migrate(ctx, gdb, GormModels()...)
		},
		Ping: func(ctx context.Context) error {
			return db.Ping(ctx, gdb)
		},
		Close: func(context.Context) error {
			return db.Close(gdb)
		},
	}
}
