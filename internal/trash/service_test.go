package trash

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/internal/items"
	"github.com/jlindqvist/stocklist/internal/storetest"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn := storetest.Open(t)
	svc, err := NewService(ServiceParams{
		Tx:    &storetest.Writer{DB: conn},
		Repo:  NewRepository(conn),
		Items: items.NewRepository(conn),
	})
	require.NoError(t, err)
	return svc, conn
}

func reload(t *testing.T, conn *gorm.DB, id uuid.UUID) *models.Item {
	t.Helper()
	var item models.Item
	require.NoError(t, conn.First(&item, "id = ?", id).Error)
	return &item
}

func rowCount(t *testing.T, conn *gorm.DB, id uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, conn.Model(&models.Item{}).Where("id = ?", id).Count(&count).Error)
	return count
}

func TestSoftDelete(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)

	item := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "milk",
		ShoppingAmount:  storetest.IntPtr(2),
		InventoryAmount: storetest.IntPtr(1),
	})
	require.NoError(t, conn.Model(item).Updates(map[string]any{
		"selected_in_shopping": true,
		"expanded_in_shopping": true,
	}).Error)

	trashed, err := svc.SoftDelete(ctx, enums.ListKindShopping, []uuid.UUID{item.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), trashed)

	got := reload(t, conn, item.ID)
	assert.True(t, got.InShoppingTrash)
	assert.False(t, got.SelectedInShopping)
	assert.False(t, got.ExpandedInShopping)
	// Inventory membership is untouched.
	require.NotNil(t, got.InventoryAmount)
	assert.False(t, got.InInventoryTrash)

	// Re-trashing is not counted again.
	trashed, err = svc.SoftDelete(ctx, enums.ListKindShopping, []uuid.UUID{item.ID})
	require.NoError(t, err)
	assert.Zero(t, trashed)
}

func TestSoftDeleteSelected(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)

	picked := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "milk", ShoppingAmount: storetest.IntPtr(1),
	})
	require.NoError(t, conn.Model(picked).Update("selected_in_shopping", true).Error)
	other := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "eggs", ShoppingAmount: storetest.IntPtr(2),
	})

	trashed, err := svc.SoftDeleteSelected(ctx, enums.ListKindShopping)
	require.NoError(t, err)
	assert.Equal(t, int64(1), trashed)

	got := reload(t, conn, picked.ID)
	assert.True(t, got.InShoppingTrash)
	assert.False(t, got.SelectedInShopping)
	assert.False(t, reload(t, conn, other.ID).InShoppingTrash)
}

func TestRestoreAll(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)

	a := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "milk", ShoppingAmount: storetest.IntPtr(1),
	})
	b := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "eggs", ShoppingAmount: storetest.IntPtr(2),
	})

	_, err := svc.SoftDelete(ctx, enums.ListKindShopping, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)

	// One undo restores the whole trash, not just the last deletion.
	require.NoError(t, svc.RestoreAll(ctx, enums.ListKindShopping))
	assert.False(t, reload(t, conn, a.ID).InShoppingTrash)
	assert.False(t, reload(t, conn, b.ID).InShoppingTrash)
}

func TestEmptyTrash(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)

	dualRole := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "milk",
		ShoppingAmount:  storetest.IntPtr(2),
		InventoryAmount: storetest.IntPtr(1),
	})
	shoppingOnly := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "eggs", ShoppingAmount: storetest.IntPtr(6),
	})
	kept := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "peas", ShoppingAmount: storetest.IntPtr(3),
	})

	_, err := svc.SoftDelete(ctx, enums.ListKindShopping, []uuid.UUID{dualRole.ID, shoppingOnly.ID})
	require.NoError(t, err)
	require.NoError(t, svc.EmptyTrash(ctx, enums.ListKindShopping))

	// The dual-role item survives as inventory-only, the other is gone.
	got := reload(t, conn, dualRole.ID)
	assert.Nil(t, got.ShoppingAmount)
	require.NotNil(t, got.InventoryAmount)
	assert.False(t, got.InShoppingTrash)
	assert.Zero(t, rowCount(t, conn, shoppingOnly.ID))
	assert.Equal(t, int64(1), rowCount(t, conn, kept.ID))
}

func TestUndoBeforeEmptyRestoresEverything(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)

	item := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "milk", ShoppingAmount: storetest.IntPtr(2),
	})

	_, err := svc.SoftDelete(ctx, enums.ListKindShopping, []uuid.UUID{item.ID})
	require.NoError(t, err)
	require.NoError(t, svc.RestoreAll(ctx, enums.ListKindShopping))
	require.NoError(t, svc.EmptyTrash(ctx, enums.ListKindShopping))

	// Restored before emptying, so the item is untouched.
	got := reload(t, conn, item.ID)
	require.NotNil(t, got.ShoppingAmount)
	assert.Equal(t, 2, *got.ShoppingAmount)
}

func TestValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	bad := enums.ListKind("junk")

	_, err := svc.SoftDelete(ctx, bad, nil)
	assert.Error(t, err)
	_, err = svc.SoftDeleteSelected(ctx, bad)
	assert.Error(t, err)
	assert.Error(t, svc.RestoreAll(ctx, bad))
	assert.Error(t, svc.EmptyTrash(ctx, bad))
}
