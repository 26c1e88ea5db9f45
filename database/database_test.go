package database

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bplusdb/table"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// withTempDataDir chdirs into a fresh temp directory for the duration
// of the test so Save/Load's data/<name>/ path doesn't touch the repo.
func withTempDataDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func sampleSchema() []table.Column {
	return []table.Column{
		{Name: "id", Kind: table.KindInt},
		{Name: "name", Kind: table.KindStr},
	}
}

func TestCreateDropGetListTable(t *testing.T) {
	db := New("shop", quietLogger())

	err := db.CreateTable("users", sampleSchema(), "id")
	assert.NoError(t, err)

	err = db.CreateTable("users", sampleSchema(), "id")
	assert.Error(t, err)

	_, ok := db.GetTable("users")
	assert.True(t, ok)

	assert.Equal(t, []string{"users"}, db.ListTables())

	assert.True(t, db.DropTable("users"))
	assert.False(t, db.DropTable("users"))
	assert.Empty(t, db.ListTables())
}

func TestCreateTableRejectsBadPrimaryKey(t *testing.T) {
	db := New("shop", quietLogger())
	err := db.CreateTable("users", sampleSchema(), "missing")
	assert.Error(t, err)
}

// S6 / property 8: Database.Save followed by Load reconstructs a table
// whose select_all() equals the original.
func TestSaveLoadRoundTrip(t *testing.T) {
	withTempDataDir(t)

	db := New("shop", quietLogger())
	require.NoError(t, db.CreateTable("users", sampleSchema(), "id"))
	tb, _ := db.GetTable("users")
	require.NoError(t, tb.Insert(table.Row{"id": table.IntValue(1), "name": table.StrValue("a")}))

	require.NoError(t, db.Save())

	assert.FileExists(t, filepath.Join("data", "shop", "db.json"))

	loaded, ok := Load("shop", quietLogger())
	require.True(t, ok)

	loadedTable, ok := loaded.GetTable("users")
	require.True(t, ok)

	assert.Equal(t, tb.SelectAll(), loadedTable.SelectAll())
	assert.Equal(t, tb.Schema(), loadedTable.Schema())
	assert.Equal(t, tb.PrimaryKey(), loadedTable.PrimaryKey())
}

func TestLoadMissingDatabaseReturnsAbsent(t *testing.T) {
	withTempDataDir(t)
	_, ok := Load("does-not-exist", quietLogger())
	assert.False(t, ok)
}

func TestSaveLoadFloatKeyAndMixedTypes(t *testing.T) {
	withTempDataDir(t)

	db := New("multi", quietLogger())
	schema := []table.Column{
		{Name: "id", Kind: table.KindFloat},
		{Name: "tag", Kind: table.KindStr},
		{Name: "active", Kind: table.KindBool},
	}
	require.NoError(t, db.CreateTable("items", schema, "id"))
	tb, _ := db.GetTable("items")
	require.NoError(t, tb.Insert(table.Row{
		"id":     table.FloatValue(1.5),
		"tag":    table.StrValue("x"),
		"active": table.BoolValue(true),
	}))
	require.NoError(t, tb.Insert(table.Row{
		"id":     table.FloatValue(2.5),
		"tag":    table.StrValue("y"),
		"active": table.BoolValue(false),
	}))

	require.NoError(t, db.Save())
	loaded, ok := Load("multi", quietLogger())
	require.True(t, ok)

	loadedTable, _ := loaded.GetTable("items")
	assert.Equal(t, tb.SelectAll(), loadedTable.SelectAll())
}
