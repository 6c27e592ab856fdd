// Package storetest provides shared fixtures for repository and service
// tests: an in-memory sqlite store with the engine schema plus seed helpers.
package storetest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jlindqvist/stocklist/pkg/config"
	"github.com/jlindqvist/stocklist/pkg/db"
	"github.com/jlindqvist/stocklist/pkg/db/models"
	"github.com/jlindqvist/stocklist/pkg/enums"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const schema = `
CREATE TABLE item_groups (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  selected BOOLEAN NOT NULL DEFAULT FALSE,
  created_at TIMESTAMP,
  updated_at TIMESTAMP
);

CREATE TABLE items (
  id TEXT PRIMARY KEY,
  group_id TEXT NOT NULL REFERENCES item_groups (id) ON DELETE CASCADE,
  seq BIGINT NOT NULL,
  name TEXT NOT NULL,
  extra_info TEXT NOT NULL DEFAULT '',
  color_index INTEGER NOT NULL DEFAULT 0,
  shopping_amount INTEGER,
  inventory_amount INTEGER,
  checked BOOLEAN NOT NULL DEFAULT FALSE,
  expanded_in_shopping BOOLEAN NOT NULL DEFAULT FALSE,
  expanded_in_inventory BOOLEAN NOT NULL DEFAULT FALSE,
  selected_in_shopping BOOLEAN NOT NULL DEFAULT FALSE,
  selected_in_inventory BOOLEAN NOT NULL DEFAULT FALSE,
  in_shopping_trash BOOLEAN NOT NULL DEFAULT FALSE,
  in_inventory_trash BOOLEAN NOT NULL DEFAULT FALSE,
  auto_add_to_shopping BOOLEAN NOT NULL DEFAULT FALSE,
  auto_add_threshold INTEGER NOT NULL DEFAULT 1,
  created_at TIMESTAMP,
  updated_at TIMESTAMP
);

CREATE UNIQUE INDEX items_seq_key ON items (seq);
CREATE INDEX items_group_id_idx ON items (group_id);

CREATE TABLE settings (
  id BIGINT PRIMARY KEY,
  group_selection_mode TEXT NOT NULL DEFAULT 'single',
  default_list_kind TEXT NOT NULL DEFAULT 'shopping_list',
  keep_screen_on BOOLEAN NOT NULL DEFAULT FALSE,
  updated_at TIMESTAMP
);
`

// Writer runs write callbacks in a plain transaction, standing in for the
// serialized engine writer in service tests.
type Writer struct {
	DB *gorm.DB
}

func (w Writer) Write(_ context.Context, _ string, fn func(tx *gorm.DB) error) error {
	return w.DB.Transaction(fn)
}

// Read runs read callbacks directly against the store, standing in for the
// engine's read path.
func (w Writer) Read(ctx context.Context, fn func(conn *gorm.DB) error) error {
	return fn(w.DB.WithContext(ctx))
}

// OpenClient returns a db.Client backed by a fresh in-memory store with the
// schema applied. The pool is pinned to one connection so the in-memory
// database survives for the whole test.
func OpenClient(t *testing.T) *db.Client {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver:       "sqlite",
		Path:         "file::memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, nil)
	if err != nil {
		t.Fatalf("failed to open sqlite client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().Exec(schema).Error; err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return client
}

// Open returns a fresh in-memory store with the schema applied.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.Exec(schema).Error; err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return conn
}

// MustCreateGroup inserts a group and returns it.
func MustCreateGroup(t *testing.T, tx *gorm.DB, name string, selected bool) *models.ItemGroup {
	t.Helper()

	group := &models.ItemGroup{
		ID:       uuid.New(),
		Name:     name,
		Selected: selected,
	}
	if err := tx.Create(group).Error; err != nil {
		t.Fatalf("create group: %v", err)
	}
	return group
}

// MustCreateSettings inserts the singleton settings row.
func MustCreateSettings(t *testing.T, tx *gorm.DB, mode enums.GroupSelectionMode) *models.Settings {
	t.Helper()

	settings := &models.Settings{
		ID:                 models.SettingsRowID,
		GroupSelectionMode: mode,
		DefaultListKind:    enums.ListKindShopping,
	}
	if err := tx.Create(settings).Error; err != nil {
		t.Fatalf("create settings: %v", err)
	}
	return settings
}

// ItemSpec describes a test item. Amount pointers follow the membership
// encoding: nil means not on that list.
type ItemSpec struct {
	Group           *models.ItemGroup
	Name            string
	ExtraInfo       string
	ColorIndex      int
	ShoppingAmount  *int
	InventoryAmount *int
	Checked         bool
	AutoAdd         bool
	Threshold       int
}

var nextSeq int64

// MustCreateItem inserts an item built from the given ItemSpec and returns it.
func MustCreateItem(t *testing.T, tx *gorm.DB, spec ItemSpec) *models.Item {
	t.Helper()

	nextSeq++
	threshold := spec.Threshold
	if threshold == 0 {
		threshold = 1
	}
	item := &models.Item{
		ID:                uuid.New(),
		GroupID:           spec.Group.ID,
		Seq:               nextSeq,
		Name:              spec.Name,
		ExtraInfo:         spec.ExtraInfo,
		ColorIndex:        spec.ColorIndex,
		ShoppingAmount:    spec.ShoppingAmount,
		InventoryAmount:   spec.InventoryAmount,
		Checked:           spec.Checked,
		AutoAddToShopping: spec.AutoAdd,
		AutoAddThreshold:  threshold,
	}
	if err := tx.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

// IntPtr returns a pointer to the given amount.
func IntPtr(v int) *int {
	return &v
}
