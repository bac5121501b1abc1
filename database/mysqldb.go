// Package database opens the MySQL connection of the mint journal.
package database

import (
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"prism/log"
	"prism/model"
)

// Open connects to dsn and syncs the table structure. With reset the tables are dropped first.
func Open(dsn string, reset bool) (*gorm.DB, error) {
	if !strings.Contains(dsn, "?") {
		dsn += "?charset=utf8mb4&parseTime=True&loc=Local"
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if reset {
		log.Warnf("dropping journal tables")
		if err = model.DropTable(db); err != nil {
			return nil, err
		}
	}
	// compare the structs with the database and run the DDL needed
	if err = model.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
