package items

import (
	"context"
	"testing"

	"github.com/google/uuid"
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
		Tx:   &storetest.Writer{DB: conn},
		Repo: NewRepository(conn),
	})
	require.NoError(t, err)
	return svc, conn
}

func mustFind(t *testing.T, conn *gorm.DB, id uuid.UUID) *models.Item {
	t.Helper()
	var item models.Item
	require.NoError(t, conn.First(&item, "id = ?", id).Error)
	return &item
}

func TestServiceAdd(t *testing.T) {
	t.Run("creates a shopping member", func(t *testing.T) {
		svc, conn := newTestService(t)
		group := storetest.MustCreateGroup(t, conn, "pantry", true)

		dto, err := svc.Add(context.Background(), AddItemInput{
			GroupID:        group.ID,
			Name:           "  milk  ",
			ShoppingAmount: storetest.IntPtr(2),
		})
		require.NoError(t, err)
		assert.Equal(t, "milk", dto.Name)
		require.NotNil(t, dto.ShoppingAmount)
		assert.Equal(t, 2, *dto.ShoppingAmount)
		assert.Nil(t, dto.InventoryAmount)
	})

	t.Run("assigns increasing sequence numbers", func(t *testing.T) {
		svc, conn := newTestService(t)
		group := storetest.MustCreateGroup(t, conn, "pantry", true)
		ctx := context.Background()

		first, err := svc.Add(ctx, AddItemInput{GroupID: group.ID, Name: "milk", ShoppingAmount: storetest.IntPtr(1)})
		require.NoError(t, err)
		second, err := svc.Add(ctx, AddItemInput{GroupID: group.ID, Name: "eggs", ShoppingAmount: storetest.IntPtr(1)})
		require.NoError(t, err)

		a := mustFind(t, conn, first.ID)
		b := mustFind(t, conn, second.ID)
		assert.Greater(t, b.Seq, a.Seq)
	})

	t.Run("restock fires when the rule already applies", func(t *testing.T) {
		svc, conn := newTestService(t)
		group := storetest.MustCreateGroup(t, conn, "pantry", true)

		dto, err := svc.Add(context.Background(), AddItemInput{
			GroupID:           group.ID,
			Name:              "milk",
			InventoryAmount:   storetest.IntPtr(1),
			AutoAddToShopping: true,
			AutoAddThreshold:  3,
		})
		require.NoError(t, err)
		require.NotNil(t, dto.ShoppingAmount)
		assert.Equal(t, 2, *dto.ShoppingAmount)
	})

	t.Run("rejects an item on neither list", func(t *testing.T) {
		svc, conn := newTestService(t)
		group := storetest.MustCreateGroup(t, conn, "pantry", true)

		_, err := svc.Add(context.Background(), AddItemInput{GroupID: group.ID, Name: "milk"})
		assert.Error(t, err)
	})
}

func TestServiceSetChecked(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)
	member := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "milk", ShoppingAmount: storetest.IntPtr(1),
	})
	outsider := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "flour", InventoryAmount: storetest.IntPtr(4),
	})

	require.NoError(t, svc.SetChecked(ctx, member.ID, true))
	require.NoError(t, svc.SetChecked(ctx, outsider.ID, true))

	assert.True(t, mustFind(t, conn, member.ID).Checked)
	assert.False(t, mustFind(t, conn, outsider.ID).Checked)
}

func TestServiceSetAmount(t *testing.T) {
	t.Run("leaving the shopping list clears its per-list state", func(t *testing.T) {
		svc, conn := newTestService(t)
		group := storetest.MustCreateGroup(t, conn, "pantry", true)
		item := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
			Group: group, Name: "milk",
			ShoppingAmount:  storetest.IntPtr(2),
			InventoryAmount: storetest.IntPtr(1),
			Checked:         true,
		})
		require.NoError(t, conn.Model(item).Updates(map[string]any{
			"in_shopping_trash":    true,
			"selected_in_shopping": true,
			"expanded_in_shopping": true,
		}).Error)

		require.NoError(t, svc.SetAmount(context.Background(), item.ID, enums.ListKindShopping, nil))

		got := mustFind(t, conn, item.ID)
		assert.Nil(t, got.ShoppingAmount)
		assert.False(t, got.Checked)
		assert.False(t, got.InShoppingTrash)
		assert.False(t, got.SelectedInShopping)
		assert.False(t, got.ExpandedInShopping)
		require.NotNil(t, got.InventoryAmount)
		assert.Equal(t, 1, *got.InventoryAmount)
	})

	t.Run("leaving the last list deletes the row", func(t *testing.T) {
		svc, conn := newTestService(t)
		group := storetest.MustCreateGroup(t, conn, "pantry", true)
		item := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
			Group: group, Name: "milk", ShoppingAmount: storetest.IntPtr(2),
		})

		require.NoError(t, svc.SetAmount(context.Background(), item.ID, enums.ListKindShopping, nil))

		var count int64
		require.NoError(t, conn.Model(&models.Item{}).Where("id = ?", item.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("negative amounts mean leaving the list", func(t *testing.T) {
		svc, conn := newTestService(t)
		group := storetest.MustCreateGroup(t, conn, "pantry", true)
		item := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
			Group: group, Name: "milk",
			ShoppingAmount:  storetest.IntPtr(2),
			InventoryAmount: storetest.IntPtr(1),
		})

		require.NoError(t, svc.SetAmount(context.Background(), item.ID, enums.ListKindShopping, storetest.IntPtr(-5)))

		assert.Nil(t, mustFind(t, conn, item.ID).ShoppingAmount)
	})

	t.Run("an inventory drop below the threshold restocks", func(t *testing.T) {
		svc, conn := newTestService(t)
		group := storetest.MustCreateGroup(t, conn, "pantry", true)
		item := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
			Group: group, Name: "milk",
			InventoryAmount: storetest.IntPtr(5),
			AutoAdd:         true,
			Threshold:       4,
		})

		require.NoError(t, svc.SetAmount(context.Background(), item.ID, enums.ListKindInventory, storetest.IntPtr(1)))

		got := mustFind(t, conn, item.ID)
		require.NotNil(t, got.ShoppingAmount)
		assert.Equal(t, 3, *got.ShoppingAmount)
	})

	t.Run("stale id is a no-op", func(t *testing.T) {
		svc, _ := newTestService(t)
		err := svc.SetAmount(context.Background(), uuid.New(), enums.ListKindShopping, storetest.IntPtr(2))
		assert.NoError(t, err)
	})
}

func TestServiceAutoAddUpdates(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)
	item := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "milk",
		InventoryAmount: storetest.IntPtr(1),
		Threshold:       3,
	})

	// Enabling the rule restocks right away.
	require.NoError(t, svc.SetAutoAdd(ctx, item.ID, true))
	got := mustFind(t, conn, item.ID)
	require.NotNil(t, got.ShoppingAmount)
	assert.Equal(t, 2, *got.ShoppingAmount)

	// Raising the threshold deepens the deficit.
	require.NoError(t, svc.SetAutoAddThreshold(ctx, item.ID, 6))
	got = mustFind(t, conn, item.ID)
	require.NotNil(t, got.ShoppingAmount)
	assert.Equal(t, 5, *got.ShoppingAmount)

	// The floor keeps thresholds at one or above.
	require.NoError(t, svc.SetAutoAddThreshold(ctx, item.ID, 0))
	assert.Equal(t, 1, mustFind(t, conn, item.ID).AutoAddThreshold)

	require.NoError(t, svc.SetAutoAdd(ctx, uuid.New(), true))
}

func TestServiceDeleteAll(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)
	both := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "milk",
		ShoppingAmount:  storetest.IntPtr(2),
		InventoryAmount: storetest.IntPtr(1),
	})
	shoppingOnly := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "eggs", ShoppingAmount: storetest.IntPtr(6),
	})

	require.NoError(t, svc.DeleteAll(ctx, enums.ListKindShopping))

	got := mustFind(t, conn, both.ID)
	assert.Nil(t, got.ShoppingAmount)
	require.NotNil(t, got.InventoryAmount)

	var count int64
	require.NoError(t, conn.Model(&models.Item{}).Where("id = ?", shoppingOnly.ID).Count(&count).Error)
	assert.Zero(t, count)
}
