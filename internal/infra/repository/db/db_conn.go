package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ConnOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

func DefaultConnOptions() ConnOptions {
	return ConnOptions{
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		LogLevel:        logger.Warn,
	}
}

// GetDbConn 建立 postgres 連線
func GetDbConn(dbname, host, port, user, pas string, opts ConnOptions) (*gorm.DB, error) {
	// 資料來源名稱 (DSN)
	dsn := fmt.Sprintf("user=%s password=%s host=%s port=%s dbname=%s sslmode=disable", user, pas, host, port, dbname)
	return OpenDB(postgres.Open(dsn), opts)
}

// OpenDB 以任意 dialector 開啟 gorm 連線並設定連線池
func OpenDB(dialector gorm.Dialector, opts ConnOptions) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      logger.Default.LogMode(opts.LogLevel),
		NowFunc:     func() time.Time { return time.Now().UTC() },
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	return db, nil
}
