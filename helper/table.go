package helper

import (
	"errors"
	"fmt"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"gorm.io/gorm"
)

var (
	ErrTableNotFound     = errors.New("table not found")
	ErrTableOccupied     = errors.New("table is already occupied")
	ErrTableOverCapacity = errors.New("customer count exceeds table capacity")
)

// SeatTable occupies the table for a party. Occupied tables and parties
// larger than the capacity are rejected before anything is written.
func SeatTable(db *gorm.DB, tableId uint, customerCount int) (*model.Table, error) {
	var table model.Table
	if err := db.First(&table, tableId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}

	if table.Status == constants.TABLE_OCCUPIED {
		return nil, ErrTableOccupied
	}
	if customerCount > table.Capacity {
		return nil, fmt.Errorf("%w: capacity %d, got %d", ErrTableOverCapacity, table.Capacity, customerCount)
	}

	err := db.Model(&table).Updates(map[string]any{
		"status":         constants.TABLE_OCCUPIED,
		"customer_count": customerCount,
	}).Error
	if err != nil {
		return nil, err
	}

	table.Status = constants.TABLE_OCCUPIED
	table.CustomerCount = customerCount
	return &table, nil
}
