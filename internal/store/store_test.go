package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/versecraft/internal/util"
)

// brokenBackend fails every call, like storage in a locked-down profile.
type brokenBackend struct{}

var errUnavailable = errors.New("storage unavailable")

func (brokenBackend) Get(string) (string, bool, error) { return "", false, errUnavailable }
func (brokenBackend) Set(string, string) error          { return errUnavailable }
func (brokenBackend) Remove(string) error               { return errUnavailable }

func TestSelectionAbsentUntilSet(t *testing.T) {
	l := NewLocal(NewMemoryBackend(), nil)
	_, ok := l.Selection()
	assert.False(t, ok)

	l.SetSelection("oregon_trail", "founders")
	sel, ok := l.Selection()
	require.True(t, ok)
	assert.Equal(t, Selection{StoryID: "oregon_trail", PackID: "founders"}, sel)
}

func TestSelectionRepairsMissingPack(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.Set(KeySelectedStory, "world_of_lorecraft"))
	l := NewLocal(b, nil)

	sel, ok := l.Selection()
	require.True(t, ok)
	assert.Equal(t, "starter", sel.PackID)

	require.NoError(t, b.Set(KeySelectedStory, "timecop"))
	sel, _ = l.Selection()
	assert.Equal(t, "founders", sel.PackID)

	custom := NewLocal(b, func(string) string { return "custom" })
	sel, _ = custom.Selection()
	assert.Equal(t, "custom", sel.PackID)
}

func TestLastLibraryScreenDefault(t *testing.T) {
	l := NewLocal(NewMemoryBackend(), nil)
	assert.Equal(t, DefaultLibraryScreen, l.LastLibraryScreen())
	l.SetLastLibraryScreen("library2")
	assert.Equal(t, "library2", l.LastLibraryScreen())
}

func TestSaveAccessors(t *testing.T) {
	l := NewLocal(NewMemoryBackend(), nil)
	key := SaveKey("founders", "timecop")
	assert.Equal(t, "vc_save_founders__timecop", key)

	assert.False(t, l.HasSave(key))
	l.SetSaveCursor(key, `{"node":"S07"}`)
	v, ok := l.Save(key)
	require.True(t, ok)
	assert.Equal(t, `{"node":"S07"}`, v)

	l.ClearSave(key)
	assert.False(t, l.HasSave(key))

	l.SetRunCursor("S01")
	cur, ok := l.RunCursor()
	assert.True(t, ok)
	assert.Equal(t, "S01", cur)

	l.SetActiveSave("blob")
	blob, ok := l.ActiveSave()
	assert.True(t, ok)
	assert.Equal(t, "blob", blob)
}

func TestBrokenBackendFailsOpen(t *testing.T) {
	l := NewLocal(brokenBackend{}, nil)
	assert.NotPanics(t, func() {
		l.SetSelection("timecop", "founders")
		l.SetSaveCursor("k", "v")
		l.ClearSave("k")
		l.SetLastLibraryScreen("library2")
	})
	_, ok := l.Selection()
	assert.False(t, ok)
	_, ok = l.Save("k")
	assert.False(t, ok)
	assert.Equal(t, DefaultLibraryScreen, l.LastLibraryScreen())

	var nilBacked Local
	nilBacked.resolve = PackForStory
	_, ok = nilBacked.Selection()
	assert.False(t, ok)
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "versecraft.db")
	b, err := OpenSQLite(p, "alice")
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	_, ok, err := b.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Set("k", "one"))
	require.NoError(t, b.Set("k", "two"))
	v, ok, err := b.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)

	require.NoError(t, b.Remove("k"))
	_, ok, err = b.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteProfilesAndReopen(t *testing.T) {
	p := filepath.Join(t.TempDir(), "vc.db")
	alice, err := OpenSQLite(p, "alice")
	require.NoError(t, err)
	require.NoError(t, alice.Set(KeySelectedStory, "timecop"))
	require.NoError(t, alice.Close())

	// reopening must not re-run the schema and must keep data
	again, err := OpenSQLite(p, "alice")
	require.NoError(t, err)
	t.Cleanup(func() { _ = again.Close() })
	v, ok, err := again.Get(KeySelectedStory)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "timecop", v)

	bob, err := OpenSQLite(p, "bob")
	require.NoError(t, err)
	t.Cleanup(func() { _ = bob.Close() })
	_, ok, err = bob.Get(KeySelectedStory)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenBackendKinds(t *testing.T) {
	b, closeFn, err := OpenBackend(util.Config{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, b)
	assert.NoError(t, closeFn())

	_, closeFn, err = OpenBackend(util.Config{Backend: "floppy"})
	assert.Error(t, err)
	assert.NoError(t, closeFn())

	_, _, err = OpenBackend(util.Config{Backend: "postgres"})
	assert.Error(t, err)
}

func TestUpSection(t *testing.T) {
	assert.Equal(t, "\nA\n", upSection("-- +migrate Up\nA\n-- +migrate Down\nB"))
	assert.Equal(t, "plain", upSection("plain"))
}

func TestNewMigratorNeedsDSN(t *testing.T) {
	_, err := NewMigrator("")
	assert.Error(t, err)
}
