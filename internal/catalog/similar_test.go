package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarSameSubjectFirst(t *testing.T) {
	idx, err := NewIndex(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)

	similar := Similar(idx, "020101")
	require.Len(t, similar, 3)

	// The same-subject sibling comes first, then same-category leaves
	// from the other subject, all in file order.
	assert.Equal(t, "020102", similar[0].Code)
	assert.Equal(t, "020201K", similar[1].Code)
	assert.Equal(t, "020202", similar[2].Code)
}

func TestSimilarNeverIncludesTarget(t *testing.T) {
	idx, err := NewIndex(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)

	for _, leaf := range idx.Leaves() {
		for _, s := range Similar(idx, leaf.Code) {
			assert.NotEqual(t, leaf.Code, s.Code)
		}
	}
}

func TestSimilarTruncatesToFive(t *testing.T) {
	content := "01 工学\n0101 计算机类\n"
	for _, line := range []string{
		"010101 计算机科学与技术",
		"010102 软件工程",
		"010103 网络工程",
		"010104 信息安全",
		"010105 物联网工程",
		"010106 数字媒体技术",
		"010107 智能科学与技术",
	} {
		content += line + "\n"
	}

	idx, err := NewIndex(writeCatalog(t, content))
	require.NoError(t, err)

	similar := Similar(idx, "010101")
	assert.Len(t, similar, MaxSimilar)
}

func TestSimilarUnknownCode(t *testing.T) {
	idx, err := NewIndex(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)

	assert.Empty(t, Similar(idx, "999999"))
}

func TestSimilarCategoryFallbackExcludesOwnSubject(t *testing.T) {
	idx, err := NewIndex(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)

	// 010101's subject has two siblings; the fallback must not pull
	// leaves from another category.
	similar := Similar(idx, "010101")
	require.Len(t, similar, 2)
	assert.Equal(t, "010102", similar[0].Code)
	assert.Equal(t, "010103K", similar[1].Code)
}
