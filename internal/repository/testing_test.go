package repository

import (
	"fmt"
	"strings"
	"testing"

	"emberlink/internal/db"
	"emberlink/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory sqlite database per test. cache=shared
// keeps every pooled connection on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return conn
}

func seedUser(t *testing.T, conn *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{ID: uuid.New().String(), Username: username, Password: "hash"}
	require.NoError(t, conn.Create(&user).Error)
	return user
}

func seedPost(t *testing.T, conn *gorm.DB, userID, title string) models.Post {
	t.Helper()
	post := models.Post{UserID: userID, Title: title, Content: "some content"}
	require.NoError(t, conn.Create(&post).Error)
	return post
}
