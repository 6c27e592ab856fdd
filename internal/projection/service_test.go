package projection

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/internal/storetest"
	"github.com/jlindqvist/stocklist/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn := storetest.Open(t)
	svc, err := NewService(ServiceParams{
		Read: storetest.Writer{DB: conn},
		Repo: NewRepository(conn),
	})
	require.NoError(t, err)
	return svc, conn
}

func names(view ViewDTO) []string {
	out := make([]string, 0, len(view.Items))
	for _, it := range view.Items {
		out = append(out, it.Name)
	}
	return out
}

func TestViewFiltering(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	selected := storetest.MustCreateGroup(t, conn, "pantry", true)
	hidden := storetest.MustCreateGroup(t, conn, "freezer", false)

	storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: selected, Name: "milk", ShoppingAmount: storetest.IntPtr(1),
	})
	storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: selected, Name: "flour", InventoryAmount: storetest.IntPtr(2),
	})
	trashed := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: selected, Name: "eggs", ShoppingAmount: storetest.IntPtr(6),
	})
	require.NoError(t, conn.Model(trashed).Update("in_shopping_trash", true).Error)
	storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: hidden, Name: "peas", ShoppingAmount: storetest.IntPtr(3),
	})

	view, err := svc.View(ctx, ViewQuery{Kind: enums.ListKindShopping})
	require.NoError(t, err)
	assert.Equal(t, []string{"milk"}, names(view))

	view, err = svc.View(ctx, ViewQuery{Kind: enums.ListKindInventory})
	require.NoError(t, err)
	assert.Equal(t, []string{"flour"}, names(view))
}

func TestViewSearch(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)

	storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "Whole Milk", ShoppingAmount: storetest.IntPtr(1),
	})
	storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "bread", ExtraInfo: "with milk chocolate", ShoppingAmount: storetest.IntPtr(1),
	})
	storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "butter", ShoppingAmount: storetest.IntPtr(1),
	})

	view, err := svc.View(ctx, ViewQuery{Kind: enums.ListKindShopping, Search: "MILK"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Whole Milk", "bread"}, names(view))

	// A like wildcard in the needle is matched literally.
	view, err = svc.View(ctx, ViewQuery{Kind: enums.ListKindShopping, Search: "%"})
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestViewOrdering(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)

	seedItem := func(name string, amount, color int) {
		storetest.MustCreateItem(t, conn, storetest.ItemSpec{
			Group: group, Name: name, ColorIndex: color,
			ShoppingAmount: storetest.IntPtr(amount),
		})
	}
	seedItem("banana", 3, 2)
	seedItem("Apple", 1, 1)
	seedItem("cherry", 2, 1)

	cases := []struct {
		sort enums.SortKey
		want []string
	}{
		{enums.SortKeyNameAsc, []string{"Apple", "banana", "cherry"}},
		{enums.SortKeyNameDesc, []string{"cherry", "banana", "Apple"}},
		{enums.SortKeyAmountAsc, []string{"Apple", "cherry", "banana"}},
		{enums.SortKeyAmountDesc, []string{"banana", "cherry", "Apple"}},
		// Equal colors keep insertion order.
		{enums.SortKeyColor, []string{"Apple", "cherry", "banana"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.sort), func(t *testing.T) {
			view, err := svc.View(ctx, ViewQuery{Kind: enums.ListKindShopping, Sort: tc.sort})
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(view))
		})
	}
}

func TestViewUncheckedFirst(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)

	storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "apple", ShoppingAmount: storetest.IntPtr(1), Checked: true,
	})
	storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "banana", ShoppingAmount: storetest.IntPtr(1),
	})

	view, err := svc.View(ctx, ViewQuery{
		Kind: enums.ListKindShopping, Sort: enums.SortKeyNameAsc, UncheckedFirst: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"banana", "apple"}, names(view))
	assert.Equal(t, int64(1), view.CheckedCount)
}

func TestViewCounters(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)

	picked := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "milk", ShoppingAmount: storetest.IntPtr(1), Checked: true,
	})
	require.NoError(t, conn.Model(picked).Update("selected_in_shopping", true).Error)
	storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "eggs", ShoppingAmount: storetest.IntPtr(1),
	})

	view, err := svc.View(ctx, ViewQuery{Kind: enums.ListKindShopping})
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.SelectedCount)
	assert.Equal(t, int64(1), view.CheckedCount)

	// Inventory views carry no checkout counter.
	view, err = svc.View(ctx, ViewQuery{Kind: enums.ListKindInventory})
	require.NoError(t, err)
	assert.Zero(t, view.CheckedCount)
}

func TestTrash(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)

	storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "milk", ShoppingAmount: storetest.IntPtr(1),
	})
	binned := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "eggs", ShoppingAmount: storetest.IntPtr(2),
	})
	require.NoError(t, conn.Model(binned).Update("in_shopping_trash", true).Error)

	rows, err := svc.Trash(ctx, enums.ListKindShopping)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, binned.ID, rows[0].ID)

	rows, err = svc.Trash(ctx, enums.ListKindInventory)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExportLines(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	group := storetest.MustCreateGroup(t, conn, "pantry", true)

	storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "Milk", ExtraInfo: "organic", ShoppingAmount: storetest.IntPtr(2),
	})
	storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "Bread", ShoppingAmount: storetest.IntPtr(1),
	})

	lines, err := svc.ExportLines(ctx, ViewQuery{Kind: enums.ListKindShopping, Sort: enums.SortKeyAmountDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"2x Milk, organic", "1x Bread"}, lines)
}

func TestNewServiceRequiresDeps(t *testing.T) {
	conn := storetest.Open(t)

	_, err := NewService(ServiceParams{Repo: NewRepository(conn)})
	assert.Error(t, err)

	_, err = NewService(ServiceParams{Read: storetest.Writer{DB: conn}})
	assert.Error(t, err)
}

func TestViewValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.View(ctx, ViewQuery{Kind: enums.ListKind("junk")})
	assert.Error(t, err)

	_, err = svc.View(ctx, ViewQuery{Kind: enums.ListKindShopping, Sort: enums.SortKey("junk")})
	assert.Error(t, err)

	_, err = svc.Trash(ctx, enums.ListKind("junk"))
	assert.Error(t, err)
}

func TestViewEmptyStore(t *testing.T) {
	svc, _ := newTestService(t)

	view, err := svc.View(context.Background(), ViewQuery{Kind: enums.ListKindShopping})
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.SelectedCount)
}

func TestVisibleIDs(t *testing.T) {
	conn := storetest.Open(t)
	repo := NewRepository(conn)
	group := storetest.MustCreateGroup(t, conn, "pantry", true)

	a := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "banana", ShoppingAmount: storetest.IntPtr(1),
	})
	b := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "apple", ShoppingAmount: storetest.IntPtr(1),
	})

	ids, err := repo.VisibleIDs(context.Background(), ViewQuery{
		Kind: enums.ListKindShopping, Sort: enums.SortKeyNameAsc,
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, b.ID.String(), mustUUID(t, ids[0]).String())
	assert.Equal(t, a.ID.String(), mustUUID(t, ids[1]).String())
}

func mustUUID(t *testing.T, raw string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(raw)
	require.NoError(t, err)
	return id
}

