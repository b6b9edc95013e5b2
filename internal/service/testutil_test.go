package service

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/incidentline/authcore/internal/model"
	"github.com/incidentline/authcore/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.ClientRoleAssignment{},
		&model.AccessToken{},
		&model.AuditEvent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func newTestAudit(db *gorm.DB) *AuditService {
	return NewAuditService(repository.NewAuditRepository(db))
}

func newTestIssuer(t *testing.T) *SessionIssuer {
	t.Helper()
	codec, err := NewTokenCodec("test-secret", "authcore-test", 0)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return NewSessionIssuer(codec, DefaultCookieVariants(), "", false)
}

func newGinContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, rec
}

func seedUser(t *testing.T, db *gorm.DB, email, password, systemRole string) *model.User {
	t.Helper()

	user := &model.User{Name: "Test User", Email: email, SystemRole: systemRole}
	if password != "" {
		hash, err := HashPassword(password)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		user.PasswordHash = hash
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
