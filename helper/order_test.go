package helper

import (
	"testing"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, status string) *model.Order {
	t.Helper()

	table := model.Table{TableNumber: "T1", Capacity: 4, Status: constants.TABLE_OCCUPIED, CustomerCount: 2}
	require.NoError(t, db.Create(&table).Error)

	category := model.Category{Name: "Mains"}
	require.NoError(t, db.Create(&category).Error)
	menuItem := model.MenuItem{Name: "Burger", Slug: "burger", Price: 12.5, CategoryId: category.ID, Available: true}
	require.NoError(t, db.Create(&menuItem).Error)

	order := model.Order{
		OrderNumber:   "ORD-1000",
		TableId:       &table.ID,
		Status:        status,
		PaymentStatus: constants.PAYMENT_PENDING,
		TotalAmount:   25,
		WaiterId:      1,
	}
	require.NoError(t, db.Create(&order).Error)

	items := []model.OrderItem{
		{OrderId: order.ID, MenuItemId: menuItem.ID, Quantity: 2, Price: 12.5, Status: constants.ITEM_PENDING},
	}
	require.NoError(t, db.Create(&items).Error)

	return &order
}

func TestTransitionRights(t *testing.T) {
	cases := []struct {
		role    string
		target  string
		allowed bool
	}{
		{constants.ROLE_ADMIN, constants.ORDER_CANCELLED, true},
		{constants.ROLE_MANAGER, constants.ORDER_CANCELLED, true},
		{constants.ROLE_CASHIER, constants.ORDER_CANCELLED, false},
		{constants.ROLE_CASHIER, constants.ORDER_COMPLETED, true},
		{constants.ROLE_CHEF, constants.ORDER_PREPARING, true},
		{constants.ROLE_CHEF, constants.ORDER_READY, true},
		{constants.ROLE_CHEF, constants.ORDER_COMPLETED, false},
		{constants.ROLE_WAITER, constants.ORDER_COMPLETED, true},
		{constants.ROLE_WAITER, constants.ORDER_PREPARING, false},
		{constants.ROLE_WAITER, constants.ORDER_CANCELLED, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.role, tc.target), "%s -> %s", tc.role, tc.target)
	}
}

func TestValidTransitions(t *testing.T) {
	assert.True(t, IsValidTransition(constants.ORDER_PENDING, constants.ORDER_PREPARING))
	assert.True(t, IsValidTransition(constants.ORDER_PENDING, constants.ORDER_READY))
	assert.True(t, IsValidTransition(constants.ORDER_PREPARING, constants.ORDER_COMPLETED))
	assert.True(t, IsValidTransition(constants.ORDER_READY, constants.ORDER_CANCELLED))

	assert.False(t, IsValidTransition(constants.ORDER_PENDING, constants.ORDER_COMPLETED))
	assert.False(t, IsValidTransition(constants.ORDER_READY, constants.ORDER_PREPARING))
	assert.False(t, IsValidTransition(constants.ORDER_COMPLETED, constants.ORDER_CANCELLED))
	assert.False(t, IsValidTransition(constants.ORDER_CANCELLED, constants.ORDER_PENDING))
}

func TestApplyOrderStatusPreparing(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_PENDING)

	updated, err := ApplyOrderStatus(db, order.ID, constants.ORDER_PREPARING, constants.ROLE_CHEF)
	require.NoError(t, err)

	assert.Equal(t, constants.ORDER_PREPARING, updated.Status)
	require.NotNil(t, updated.EstimatedReadyTime)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, constants.ITEM_PREPARING, updated.Items[0].Status)
}

func TestApplyOrderStatusReadyActivatesPager(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_PENDING)

	pager := model.Pager{PagerNumber: 5, Status: constants.PAGER_AVAILABLE}
	require.NoError(t, db.Create(&pager).Error)
	_, err := AssignPager(db, 5, order.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.Order{}).Where("id = ?", order.ID).Update("pager_number", 5).Error)

	updated, err := ApplyOrderStatus(db, order.ID, constants.ORDER_READY, constants.ROLE_CHEF)
	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_READY, updated.Status)
	require.NotNil(t, updated.ActualReadyTime)

	var got model.Pager
	require.NoError(t, db.Where("pager_number = ?", 5).First(&got).Error)
	assert.Equal(t, constants.PAGER_ACTIVE, got.Status)
}

func TestApplyOrderStatusCompletedReleasesResources(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_PENDING)

	pager := model.Pager{PagerNumber: 3, Status: constants.PAGER_AVAILABLE}
	require.NoError(t, db.Create(&pager).Error)
	_, err := AssignPager(db, 3, order.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.Order{}).Where("id = ?", order.ID).Update("pager_number", 3).Error)

	_, err = ApplyOrderStatus(db, order.ID, constants.ORDER_PREPARING, constants.ROLE_CHEF)
	require.NoError(t, err)
	_, err = ApplyOrderStatus(db, order.ID, constants.ORDER_READY, constants.ROLE_CHEF)
	require.NoError(t, err)
	updated, err := ApplyOrderStatus(db, order.ID, constants.ORDER_COMPLETED, constants.ROLE_WAITER)
	require.NoError(t, err)

	assert.Equal(t, constants.ORDER_COMPLETED, updated.Status)
	require.NotNil(t, updated.CompletedTime)
	for _, item := range updated.Items {
		assert.Equal(t, constants.ITEM_SERVED, item.Status)
	}

	var table model.Table
	require.NoError(t, db.First(&table, *order.TableId).Error)
	assert.Equal(t, constants.TABLE_AVAILABLE, table.Status)
	assert.Equal(t, 0, table.CustomerCount)

	var got model.Pager
	require.NoError(t, db.Where("pager_number = ?", 3).First(&got).Error)
	assert.Equal(t, constants.PAGER_AVAILABLE, got.Status)
	assert.Nil(t, got.OrderId)
	assert.Nil(t, got.AssignedAt)
}

func TestApplyOrderStatusCancelledFreesTable(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_PREPARING)

	updated, err := ApplyOrderStatus(db, order.ID, constants.ORDER_CANCELLED, constants.ROLE_MANAGER)
	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_CANCELLED, updated.Status)

	var table model.Table
	require.NoError(t, db.First(&table, *order.TableId).Error)
	assert.Equal(t, constants.TABLE_AVAILABLE, table.Status)
}

func TestApplyOrderStatusDeniedRole(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_PENDING)

	_, err := ApplyOrderStatus(db, order.ID, constants.ORDER_PREPARING, constants.ROLE_WAITER)
	assert.ErrorIs(t, err, ErrTransitionDenied)

	// Nothing moved.
	var got model.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, constants.ORDER_PENDING, got.Status)
}

func TestApplyOrderStatusInvalid(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_PENDING)

	_, err := ApplyOrderStatus(db, order.ID, constants.ORDER_COMPLETED, constants.ROLE_CASHIER)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApplyOrderStatusTerminal(t *testing.T) {
	db := setupTestDB(t)
	completed := seedOrder(t, db, constants.ORDER_COMPLETED)

	_, err := ApplyOrderStatus(db, completed.ID, constants.ORDER_CANCELLED, constants.ROLE_ADMIN)
	assert.ErrorIs(t, err, ErrOrderTerminal)
}

func TestApplyOrderStatusNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := ApplyOrderStatus(db, 9999, constants.ORDER_PREPARING, constants.ROLE_ADMIN)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestAssignPagerOnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_PENDING)
	other := seedOtherOrder(t, db)

	pager := model.Pager{PagerNumber: 7, Status: constants.PAGER_AVAILABLE}
	require.NoError(t, db.Create(&pager).Error)

	first, err := AssignPager(db, 7, order.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.PAGER_ASSIGNED, first.Status)
	require.NotNil(t, first.OrderId)
	assert.Equal(t, order.ID, *first.OrderId)
	assert.NotNil(t, first.AssignedAt)

	// Second claim loses the conditional update.
	_, err = AssignPager(db, 7, other.ID)
	require.Error(t, err)

	var got model.Pager
	require.NoError(t, db.Where("pager_number = ?", 7).First(&got).Error)
	assert.Equal(t, order.ID, *got.OrderId)
}

func seedOtherOrder(t *testing.T, db *gorm.DB) *model.Order {
	t.Helper()
	order := model.Order{
		OrderNumber:   "ORD-1001",
		Status:        constants.ORDER_PENDING,
		PaymentStatus: constants.PAYMENT_PENDING,
		WaiterId:      1,
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

func TestGenerateOrderNumberSequence(t *testing.T) {
	db := setupTestDB(t)

	assert.Equal(t, "ORD-1000", GenerateOrderNumber(db))

	seedOrder(t, db, constants.ORDER_PENDING)
	assert.Equal(t, "ORD-1001", GenerateOrderNumber(db))

	seedOtherOrder(t, db)
	assert.Equal(t, "ORD-1002", GenerateOrderNumber(db))
}
