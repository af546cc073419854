package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Dialector picks the gorm driver for the configured backend. For sqlite the
// dsn is a file path or ":memory:".
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverMySQL, "":
		return mysql.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

func OpenGorm(driver, dsn string) (*gorm.DB, error) {
	dial, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	gdb, err := OpenGormWithDialector(dial)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// sqlite allows a single writer; one connection keeps ":memory:" shared too
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	logrus.WithField("driver", dial.Name()).Info("gorm: connected")
	return gdb, nil
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
	gdb, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return gdb, nil
}
