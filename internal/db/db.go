package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	// DriverSQLite 使用本地 sqlite 文件，开发与测试默认值。
	DriverSQLite = "sqlite"
	// DriverPostgres 连接托管的 Postgres 数据库。
	DriverPostgres = "postgres"
)

// DB 是一个全局的数据库连接实例，供命令行工具等旧路径使用
var DB *gorm.DB

// Init 打开数据库连接并执行自动迁移。
// dsn 为空时 sqlite 将回退到默认值 agency.db。
func Init(driver, dsn string) error {
	gdb, err := Open(driver, dsn, &gorm.Config{})
	if err != nil {
		return err
	}
	if err := Migrate(gdb); err != nil {
		return err
	}
	DB = gdb
	return nil
}

// Open 根据驱动名称建立 gorm 连接，不做迁移。
func Open(driver, dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	if cfg == nil {
		cfg = &gorm.Config{}
	}

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite:
		path := strings.TrimSpace(dsn)
		if path == "" {
			path = "agency.db"
		}
		if !strings.HasPrefix(path, "file:") {
			if err := ensureParentDir(path); err != nil {
				return nil, err
			}
		}
		return gorm.Open(sqlite.Open(path), cfg)
	case DriverPostgres, "postgresql", "pgx":
		connConfig, err := pgx.ParseConfig(strings.TrimSpace(dsn))
		if err != nil {
			return nil, fmt.Errorf("parse postgres dsn: %w", err)
		}
		sqlDB := stdlib.OpenDB(*connConfig)
		return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Models 返回需要迁移的全部模型，顺序保证外键引用的表先创建。
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Setting{},
		&ContactInformation{},
		&ServiceOffering{},
		&Product{},
		&Category{},
		&Project{},
		&Worker{},
		&WorkApplication{},
		&StudentAssignment{},
		&ChatFellowRequest{},
		&ContactSubmission{},
	}
}

// Migrate 自动迁移模式，为核心模型创建表
func Migrate(gdb *gorm.DB) error {
	if gdb == nil {
		return errors.New("database not initialized")
	}
	return gdb.AutoMigrate(Models()...)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
