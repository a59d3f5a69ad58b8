package db

import (
	"emberlink/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to postgres and runs migrations. The returned handle is
// injected into repositories; there is no package-level connection.
func Open(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate creates or updates the schema. Exported so tests can run it
// against an in-memory sqlite handle.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.PostUpvote{},
		&models.CommentUpvote{},
	)
}
