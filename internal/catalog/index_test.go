package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `01 哲学
0101 哲学类
010101 哲学
010102 逻辑学
010103K 宗教学

02 经济学
0201 经济学类
020101 经济学
020102 经济统计学
0202 财政学类
020201K 财政学
020202 税收学
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "major_list.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewIndexParsesTiers(t *testing.T) {
	idx, err := NewIndex(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, 7, idx.Len())

	e, ok := idx.Get("010101")
	require.True(t, ok)
	assert.Equal(t, "哲学", e.Name)
	assert.Equal(t, "哲学", e.Category)
	assert.Equal(t, "哲学类", e.Subject)

	// Leaf under the second subject of the second category.
	e, ok = idx.Get("020201K")
	require.True(t, ok)
	assert.Equal(t, "财政学", e.Name)
	assert.Equal(t, "经济学", e.Category)
	assert.Equal(t, "财政学类", e.Subject)

	// Category and subject lines never become entries.
	_, ok = idx.Get("01")
	assert.False(t, ok)
	_, ok = idx.Get("0101")
	assert.False(t, ok)
}

func TestNewIndexDeterministic(t *testing.T) {
	path := writeCatalog(t, sampleCatalog)

	first, err := NewIndex(path)
	require.NoError(t, err)
	second, err := NewIndex(path)
	require.NoError(t, err)

	assert.Equal(t, first.Leaves(), second.Leaves())
	assert.Equal(t, first.Len(), second.Len())
}

func TestNewIndexMissingFile(t *testing.T) {
	_, err := NewIndex(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestIndexReload(t *testing.T) {
	path := writeCatalog(t, sampleCatalog)
	idx, err := NewIndex(path)
	require.NoError(t, err)
	require.Equal(t, 7, idx.Len())

	extended := sampleCatalog + "020203 金融学\n"
	require.NoError(t, os.WriteFile(path, []byte(extended), 0o644))
	require.NoError(t, idx.Reload())

	assert.Equal(t, 8, idx.Len())
	e, ok := idx.Get("020203")
	require.True(t, ok)
	assert.Equal(t, "财政学类", e.Subject)
}

func TestParseSkipsUnexpectedCodeLengths(t *testing.T) {
	content := "01 哲学\n0101 哲学类\n123 奇怪行\n010101 哲学\n"
	idx, err := NewIndex(writeCatalog(t, content))
	require.NoError(t, err)

	assert.Equal(t, 1, idx.Len())
	_, ok := idx.Get("123")
	assert.False(t, ok)
}
