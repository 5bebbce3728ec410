package helper

import (
	"testing"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTable(t *testing.T, db *gorm.DB, status string, capacity, customerCount int) *model.Table {
	t.Helper()
	table := model.Table{TableNumber: "T9", Capacity: capacity, Status: status, CustomerCount: customerCount}
	require.NoError(t, db.Create(&table).Error)
	return &table
}

func TestSeatTableSeatsParty(t *testing.T) {
	db := setupTestDB(t)
	table := seedTable(t, db, constants.TABLE_AVAILABLE, 4, 0)

	seated, err := SeatTable(db, table.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, constants.TABLE_OCCUPIED, seated.Status)
	assert.Equal(t, 3, seated.CustomerCount)

	var reloaded model.Table
	require.NoError(t, db.First(&reloaded, table.ID).Error)
	assert.Equal(t, constants.TABLE_OCCUPIED, reloaded.Status)
	assert.Equal(t, 3, reloaded.CustomerCount)
}

func TestSeatTableRejectsOverCapacity(t *testing.T) {
	db := setupTestDB(t)
	table := seedTable(t, db, constants.TABLE_AVAILABLE, 4, 0)

	_, err := SeatTable(db, table.ID, 6)
	assert.ErrorIs(t, err, ErrTableOverCapacity)

	var reloaded model.Table
	require.NoError(t, db.First(&reloaded, table.ID).Error)
	assert.Equal(t, constants.TABLE_AVAILABLE, reloaded.Status)
	assert.Equal(t, 0, reloaded.CustomerCount)
}

func TestSeatTableRejectsOccupied(t *testing.T) {
	db := setupTestDB(t)
	table := seedTable(t, db, constants.TABLE_OCCUPIED, 4, 2)

	_, err := SeatTable(db, table.ID, 2)
	assert.ErrorIs(t, err, ErrTableOccupied)

	var reloaded model.Table
	require.NoError(t, db.First(&reloaded, table.ID).Error)
	assert.Equal(t, constants.TABLE_OCCUPIED, reloaded.Status)
	assert.Equal(t, 2, reloaded.CustomerCount)
}

func TestSeatTableUnknownTable(t *testing.T) {
	db := setupTestDB(t)

	_, err := SeatTable(db, 404, 2)
	assert.ErrorIs(t, err, ErrTableNotFound)
}
