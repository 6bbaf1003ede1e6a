package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestClose(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	database := &Database{DB: db}

	assert.NotPanics(t, func() {
		database.Close()
	})
}

func TestRunMigrations(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	defer (&Database{DB: db}).Close()

	assert.NoError(t, RunMigrations(db))

	for _, table := range []string{"users", "tasks", "events"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestExecuteAndQuery(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	database := &Database{DB: db}
	defer database.Close()

	err = database.Execute("CREATE TABLE test (id INTEGER PRIMARY KEY, name TEXT)")
	assert.NoError(t, err)
	err = database.Execute("INSERT INTO test (name) VALUES (?)", "test_name")
	assert.NoError(t, err)

	result, err := database.Query("SELECT * FROM test WHERE name = ?", "test_name")
	assert.NoError(t, err)

	var rows []map[string]interface{}
	err = result.Scan(&rows).Error
	assert.NoError(t, err)

	assert.Len(t, rows, 1)
	assert.Equal(t, "test_name", rows[0]["name"])
}
