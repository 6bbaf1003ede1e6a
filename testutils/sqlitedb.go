package testutils

import (
	"dueday/dueday/database"
	"dueday/dueday/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupSqliteDB opens an in-memory database with the real schema, including
// the unique indexes the duplicate-detection paths depend on. Use it for tests
// that exercise constraint and transaction behavior rather than SQL text.
func SetupSqliteDB() (*database.Database, func()) {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	// Every pooled connection to :memory: would get its own database, so pin
	// the pool to a single connection.
	sqlDB, err := gormDB.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gormDB.AutoMigrate(&models.User{}, &models.Task{}, &models.Event{}); err != nil {
		panic(err)
	}

	db := &database.Database{DB: gormDB}

	close := func() {
		db.Close()
	}

	return db, close
}
