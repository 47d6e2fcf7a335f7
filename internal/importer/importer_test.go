package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFile = `01 哲学
0101 哲学类
010101 哲学
010102 逻辑学
010103K 宗教学

08 工学
0809 计算机类
080901 计算机科学与技术
080902 软件工程
080910T 数据科学与大数据技术
`

func parseSample(t *testing.T) *Records {
	t.Helper()
	path := filepath.Join(t.TempDir(), "major_list.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o644))
	rec, err := ParseFile(path)
	require.NoError(t, err)
	return rec
}

func TestParseFileTiers(t *testing.T) {
	rec := parseSample(t)

	require.Len(t, rec.Categories, 2)
	assert.Equal(t, "01", rec.Categories[0].Code)
	assert.Equal(t, "哲学", rec.Categories[0].Name)

	require.Len(t, rec.Subjects, 2)
	assert.Equal(t, "0809", rec.Subjects[1].Code)
	assert.Equal(t, "计算机", rec.Subjects[1].Name)
	assert.Equal(t, "08", rec.Subjects[1].CategoryCode)

	require.Len(t, rec.Majors, 6)
}

func TestParseFileMarkerSuffixes(t *testing.T) {
	rec := parseSample(t)

	var codes []string
	for _, m := range rec.Majors {
		codes = append(codes, m.Code)
	}
	assert.Contains(t, codes, "010103K")
	assert.Contains(t, codes, "080910T")
}

func TestParseFileMajorsFollowSubject(t *testing.T) {
	rec := parseSample(t)

	for _, m := range rec.Majors {
		switch m.Code[:2] {
		case "01":
			assert.Equal(t, "0101", m.SubjectCode)
		case "08":
			assert.Equal(t, "0809", m.SubjectCode)
		}
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
