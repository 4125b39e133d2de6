package campaign

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefinitionsSortedByName(t *testing.T) {
	defs, err := LoadDefinitions("testdata")
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "Ashes of the North", defs[0].Name)
	assert.Equal(t, "Operation Dawn", defs[1].Name)
	assert.Equal(t, 6, defs[1].Allowance)
	assert.Equal(t, []string{"dawn/m01.xml", "dawn/m02.xml"}, defs[1].Levels)
}

func TestLoadDefinitionsRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "campaigns"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "campaigns", "bad.json"), []byte(`{"id":"x","allowance":-1}`), 0o644))

	_, err := LoadDefinitions(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
	assert.Contains(t, err.Error(), "missing name")
	assert.Contains(t, err.Error(), "negative allowance")
}

func TestLoadDefinitionsRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "campaigns"), 0o755))
	def := `{"id":"same","name":"N","dialogue":"d","traits":"t","levels":["l"]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "campaigns", "a.json"), []byte(def), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "campaigns", "b.json"), []byte(def), 0o644))

	_, err := LoadDefinitions(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `campaign id "same" already used`)
}

func TestFind(t *testing.T) {
	defs, err := LoadDefinitions("testdata")
	require.NoError(t, err)

	d, err := Find(defs, "dawn")
	require.NoError(t, err)
	assert.Equal(t, "Operation Dawn", d.Name)

	_, err = Find(defs, "nope")
	assert.ErrorIs(t, err, ErrUnknownCampaign)
}

func TestLoaderLoadsBundle(t *testing.T) {
	defs, err := LoadDefinitions("testdata")
	require.NoError(t, err)
	dawn, _ := Find(defs, "dawn")

	b, err := NewLoader("testdata", nil).Load(context.Background(), dawn)
	require.NoError(t, err)
	assert.Equal(t, "Barkeep", b.Person.Name)
	assert.Equal(t, 7, b.Catalog.Len())
	assert.Equal(t, filepath.Join("testdata", "dawn", "m02.xml"), b.Levels[1])
}

func TestLoaderReportsMissingLevel(t *testing.T) {
	defs, err := LoadDefinitions("testdata")
	require.NoError(t, err)
	ashes, _ := Find(defs, "ashes")

	_, err = NewLoader("testdata", nil).Load(context.Background(), ashes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level ashes/m02.xml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoaderHonoursCancellation(t *testing.T) {
	defs, err := LoadDefinitions("testdata")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewLoader("testdata", nil).Load(ctx, defs[1])
	assert.ErrorIs(t, err, context.Canceled)
}
