package db

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:db-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := Open(DriverSQLite, dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestEnsureAdminCreatesAndPromotes(t *testing.T) {
	gdb := openTestDB(t)

	if err := EnsureAdmin(gdb, " Admin@Example.com ", "secret123"); err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}

	var admin User
	if err := gdb.Where("email = ?", "admin@example.com").First(&admin).Error; err != nil {
		t.Fatalf("expected admin to be created: %v", err)
	}
	if !admin.IsAdmin() {
		t.Fatalf("expected role admin, got %q", admin.Role)
	}
	if admin.ID == "" {
		t.Fatal("expected generated id")
	}

	member := User{Email: "member@example.com", Password: "hashed", Role: RoleUser}
	if err := gdb.Create(&member).Error; err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
	if err := EnsureAdmin(gdb, "member@example.com", "whatever"); err != nil {
		t.Fatalf("ensure admin for member failed: %v", err)
	}

	var promoted User
	if err := gdb.First(&promoted, "id = ?", member.ID).Error; err != nil {
		t.Fatalf("reload member failed: %v", err)
	}
	if promoted.Role != RoleAdmin {
		t.Fatalf("expected member to be promoted, got %q", promoted.Role)
	}
	if promoted.Password != "hashed" {
		t.Fatal("password must not be overwritten")
	}
}

func TestEnsureAdminSkipsEmptyCredentials(t *testing.T) {
	gdb := openTestDB(t)

	if err := EnsureAdmin(gdb, "", "secret"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var count int64
	gdb.Model(&User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no users, got %d", count)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "x", nil); err == nil {
		t.Fatal("expected unsupported driver error")
	}
}
