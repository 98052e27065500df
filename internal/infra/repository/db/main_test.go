package db

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB 以 sqlite 檔案建立測試用 db，單一連線讓交易依序執行
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "orderline_test.db")
	conn, err := OpenDB(sqlite.Open(dsn), ConnOptions{MaxOpenConns: 1, LogLevel: logger.Silent})
	require.NoError(t, err)
	require.NoError(t, NewDbDao(conn).InitMigrate())
	return conn
}

func closeTestDB(conn *gorm.DB) {
	if sqlDB, err := conn.DB(); err == nil {
		sqlDB.Close()
	}
}
