package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/versecraft/internal/content"
	"github.com/DaanHessen/versecraft/internal/dom"
)

func clientWith(t *testing.T, files map[string]string) *content.Client {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	c, err := content.NewClient(root)
	require.NoError(t, err)
	return c
}

func TestLoadManifestSlots(t *testing.T) {
	c := clientWith(t, map[string]string{"lib.json": `{"slots":[{"storyId":"timecop","title":"Timecop"},{"storyId":"","title":"Blank"}]}`})
	var cat Catalog
	cat.Load(context.Background(), c, "lib.json")
	require.Len(t, cat.Slots(), 2)
	assert.Equal(t, "timecop", cat.StoryForRow(0))
	// blank story id and rows past the manifest fall back to the built-in row
	assert.Equal(t, "relic_of_cylara", cat.StoryForRow(2))
	assert.Equal(t, "timecop", cat.StoryForRow(1))
	assert.Equal(t, "", cat.StoryForRow(12))
}

func TestLoadFallbacks(t *testing.T) {
	c := clientWith(t, map[string]string{
		"empty.json": `{"slots":[]}`,
		"bad.json":   `{"slots":"nope"}`,
	})
	for _, ref := range []string{"empty.json", "bad.json", "missing.json"} {
		var cat Catalog
		cat.Load(context.Background(), c, ref)
		assert.Equal(t, Fallback, cat.Slots(), ref)
	}
	var nilCat *Catalog
	assert.Equal(t, Fallback, nilCat.Slots())
}

func TestPopulateLabels(t *testing.T) {
	doc, err := dom.ParseString(`<html><body>
<span id="libLabel0">x</span><span id="libLabel3"></span><span id="libLabel4"></span><span id="libLabel7"></span>
</body></html>`)
	require.NoError(t, err)
	var cat Catalog

	cat.PopulateLabels(doc, 1)
	assert.Equal(t, "Backrooms", dom.Text(doc.ElementByID("libLabel0")))
	assert.Equal(t, "World of Lorecraft", dom.Text(doc.ElementByID("libLabel3")))
	assert.Equal(t, "", dom.Text(doc.ElementByID("libLabel4")))

	cat.PopulateLabels(doc, 2)
	assert.Equal(t, "Oregon Trail", dom.Text(doc.ElementByID("libLabel4")))
	assert.Equal(t, "Crimson Seagull", dom.Text(doc.ElementByID("libLabel7")))
}

func TestPageOf(t *testing.T) {
	assert.Equal(t, 1, PageOf(PageOne))
	assert.Equal(t, 2, PageOf(PageTwo))
	assert.Equal(t, 0, PageOf("launcher"))
}
