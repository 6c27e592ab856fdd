package backup

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/internal/groups"
	"github.com/jlindqvist/stocklist/internal/items"
	"github.com/jlindqvist/stocklist/internal/storetest"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn := storetest.Open(t)
	svc, err := NewService(ServiceParams{
		Tx:       &storetest.Writer{DB: conn},
		Items:    items.NewRepository(conn),
		Groups:   groups.NewRepository(conn),
		Settings: groups.NewSettingsRepository(conn),
	})
	require.NoError(t, err)
	return svc, conn
}

func validSnapshot() Snapshot {
	groupID := uuid.New()
	return Snapshot{
		Version: SnapshotVersion,
		Groups: []GroupRecord{
			{ID: groupID, Name: "pantry", Selected: true},
		},
		Items: []ItemRecord{
			{
				ID:               uuid.New(),
				GroupID:          groupID,
				Name:             "milk",
				ShoppingAmount:   storetest.IntPtr(2),
				AutoAddThreshold: 1,
			},
		},
	}
}

func TestExport(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	storetest.MustCreateSettings(t, conn, enums.GroupSelectionModeSingle)
	group := storetest.MustCreateGroup(t, conn, "pantry", true)
	item := storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: group, Name: "milk", ExtraInfo: "organic",
		ShoppingAmount:  storetest.IntPtr(2),
		InventoryAmount: storetest.IntPtr(1),
	})

	snapshot, err := svc.Export(ctx)
	require.NoError(t, err)

	assert.Equal(t, SnapshotVersion, snapshot.Version)
	require.Len(t, snapshot.Groups, 1)
	assert.Equal(t, group.ID, snapshot.Groups[0].ID)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, item.ID, snapshot.Items[0].ID)
	assert.Equal(t, "organic", snapshot.Items[0].ExtraInfo)
	require.NotNil(t, snapshot.Settings)
	assert.Equal(t, enums.GroupSelectionModeSingle, snapshot.Settings.GroupSelectionMode)
}

func TestImportReplacesStore(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	// Pre-existing state that must be gone after the import.
	old := storetest.MustCreateGroup(t, conn, "stale", true)
	storetest.MustCreateItem(t, conn, storetest.ItemSpec{
		Group: old, Name: "stale item", ShoppingAmount: storetest.IntPtr(9),
	})

	snapshot := validSnapshot()
	require.NoError(t, svc.Import(ctx, snapshot))

	var groupRows []models.ItemGroup
	require.NoError(t, conn.Find(&groupRows).Error)
	require.Len(t, groupRows, 1)
	assert.Equal(t, snapshot.Groups[0].ID, groupRows[0].ID)

	var itemRows []models.Item
	require.NoError(t, conn.Find(&itemRows).Error)
	require.Len(t, itemRows, 1)
	assert.Equal(t, snapshot.Items[0].ID, itemRows[0].ID)
}

func TestImportSelectsAGroupWhenNoneSelected(t *testing.T) {
	svc, conn := newTestService(t)

	snapshot := validSnapshot()
	snapshot.Groups[0].Selected = false
	require.NoError(t, svc.Import(context.Background(), snapshot))

	var group models.ItemGroup
	require.NoError(t, conn.First(&group).Error)
	assert.True(t, group.Selected)
}

func TestImportRejectsBadSnapshots(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	existing := storetest.MustCreateGroup(t, conn, "keep", true)

	t.Run("no groups", func(t *testing.T) {
		snapshot := validSnapshot()
		snapshot.Groups = nil
		assert.Error(t, svc.Import(ctx, snapshot))
	})

	t.Run("unresolvable group reference", func(t *testing.T) {
		snapshot := validSnapshot()
		snapshot.Items[0].GroupID = uuid.New()
		assert.Error(t, svc.Import(ctx, snapshot))
	})

	t.Run("collects every problem", func(t *testing.T) {
		snapshot := validSnapshot()
		snapshot.Items[0].Name = ""
		snapshot.Items[0].ShoppingAmount = storetest.IntPtr(-1)
		snapshot.Items[0].AutoAddThreshold = 0

		err := svc.Import(ctx, snapshot)
		require.Error(t, err)
		assert.GreaterOrEqual(t, len(multierr.Errors(errors.Unwrap(err))), 3)
	})

	t.Run("unknown version", func(t *testing.T) {
		snapshot := validSnapshot()
		snapshot.Version = 99
		assert.Error(t, svc.Import(ctx, snapshot))
	})

	// A rejected import leaves the store untouched.
	var count int64
	require.NoError(t, conn.Model(&models.ItemGroup{}).Where("id = ?", existing.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestImportExportRoundTrip(t *testing.T) {
	source, sourceConn := newTestService(t)
	storetest.MustCreateSettings(t, sourceConn, enums.GroupSelectionModeMulti)
	group := storetest.MustCreateGroup(t, sourceConn, "pantry", true)
	storetest.MustCreateItem(t, sourceConn, storetest.ItemSpec{
		Group: group, Name: "milk",
		ShoppingAmount:  storetest.IntPtr(2),
		InventoryAmount: storetest.IntPtr(1),
		AutoAdd:         true,
		Threshold:       3,
	})

	snapshot, err := source.Export(context.Background())
	require.NoError(t, err)

	target, targetConn := newTestService(t)
	require.NoError(t, target.Import(context.Background(), snapshot))

	var item models.Item
	require.NoError(t, targetConn.First(&item).Error)
	assert.Equal(t, "milk", item.Name)
	assert.True(t, item.AutoAddToShopping)
	assert.Equal(t, 3, item.AutoAddThreshold)
	require.NotNil(t, item.ShoppingAmount)
	assert.Equal(t, 2, *item.ShoppingAmount)
}
