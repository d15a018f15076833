package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSchema = `
entities:
  - name: Sample
    collection: samples
    id: foo
    properties:
      - name: foo
      - name: reference
        type: Reference
        reference: true
      - name: customerName
        field: customer_name
      - name: tags
        type: string
        many: true
  - name: Reference
    properties:
      - name: id
        type: int64
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleSchema))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	require.Len(t, f.Entities, 2)
	assert.Equal(t, []string{"Sample", "Reference"}, f.EntityNames())

	sample, ok := f.Entity("Sample")
	require.True(t, ok)
	assert.Equal(t, "samples", sample.Collection)
	assert.Equal(t, "foo", sample.IDProperty())
	require.Len(t, sample.Properties, 4)
	assert.True(t, sample.Properties[1].Reference)
	assert.Equal(t, "Reference", sample.Properties[1].Type)
	assert.Equal(t, "customer_name", sample.Properties[2].Field)
	assert.True(t, sample.Properties[3].Many)

	ref, ok := f.Entity("Reference")
	require.True(t, ok)
	assert.Equal(t, "id", ref.IDProperty())

	_, ok = f.Entity("Missing")
	assert.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("entities: [name: x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse schema YAML")
}

func TestLoadAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entities.yaml")

	require.NoError(t, os.WriteFile(path, []byte(sampleSchema), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)

	out := filepath.Join(dir, "out.yaml")
	require.NoError(t, WriteFile(f, out))

	again, err := LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, f, again)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
