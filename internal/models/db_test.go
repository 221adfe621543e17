package models

import (
	"testing"

	"gorm.io/gorm/logger"
)

func TestWithSQLiteForeignKeys(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "./db/tienda.db", want: "./db/tienda.db?_pragma=foreign_keys(1)"},
		{in: "file:test?mode=memory", want: "file:test?mode=memory&_pragma=foreign_keys(1)"},
		{in: "file:test?_pragma=foreign_keys(1)", want: "file:test?_pragma=foreign_keys(1)"},
	}
	for _, tc := range cases {
		if got := withSQLiteForeignKeys(tc.in); got != tc.want {
			t.Fatalf("withSQLiteForeignKeys(%q) want %q got %q", tc.in, tc.want, got)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	if ParseLogLevel("silent") != logger.Silent {
		t.Fatalf("silent not parsed")
	}
	if ParseLogLevel(" INFO ") != logger.Info {
		t.Fatalf("info not parsed")
	}
	if ParseLogLevel("unknown") != logger.Warn {
		t.Fatalf("unknown level should fall back to warn")
	}
}

func TestOpenDBRejectsUnknownDriver(t *testing.T) {
	if _, err := OpenDB("oracle", "x", DBPoolConfig{}, logger.Silent); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}

// 未配置空闲连接数时保留连接池默认值，共享内存库不会在迁移途中被释放
func TestOpenDBZeroIdleKeepsSharedMemoryDB(t *testing.T) {
	db, err := OpenDB("sqlite", "file:zero_idle?mode=memory&cache=shared", DBPoolConfig{MaxOpenConns: 1}, logger.Silent)
	if err != nil {
		t.Fatalf("open db failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	defer sqlDB.Close()

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := db.Create(&Category{Name: "Vestidos"}).Error; err != nil {
		t.Fatalf("insert after migrate failed: %v", err)
	}
	var count int64
	if err := db.Model(&Category{}).Count(&count).Error; err != nil || count != 1 {
		t.Fatalf("expected 1 category, got %d err=%v", count, err)
	}
	if stats := sqlDB.Stats(); stats.Idle == 0 {
		t.Fatalf("expected an idle connection to be kept, got %+v", stats)
	}
}

func TestInitDefaultStaffOnlyOnce(t *testing.T) {
	db, err := OpenDB("sqlite", "file:init_staff?mode=memory&cache=shared", DBPoolConfig{MaxOpenConns: 1, MaxIdleConns: 1}, logger.Silent)
	if err != nil {
		t.Fatalf("open db failed: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := InitDefaultStaff(db, "jefa", "clave-segura-123"); err != nil {
		t.Fatalf("init staff failed: %v", err)
	}
	if err := InitDefaultStaff(db, "otra", "clave-segura-456"); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	var users []User
	if err := db.Where("is_staff = ?", true).Find(&users).Error; err != nil {
		t.Fatalf("query staff failed: %v", err)
	}
	if len(users) != 1 || users[0].Username != "jefa" {
		t.Fatalf("expected single staff jefa, got %+v", users)
	}
}
