package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		width int
		want  Table
	}{
		{"exact", "abcdef", 3, Table{"abc", "def"}},
		{"partial tail", "abcdefg", 3, Table{"abc", "def", "g"}},
		{"empty", "", 3, Table{}},
		{"zero width", "abc", 0, Table{}},
		{"multibyte", "жжжaaa", 3, Table{"жжж", "aaa"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chunk(tt.raw, tt.width))
		})
	}
}

func TestDuplicates(t *testing.T) {
	table := Table{"aaa", "bbb", "aaa", "ccc", "bbb", "aaa"}
	assert.Equal(t, [][]int{{0, 2, 5}, {1, 4}}, table.Duplicates())
	assert.Empty(t, Table{"aaa", "bbb"}.Duplicates())
}

func TestMalformed(t *testing.T) {
	assert.Equal(t, []int{1, 3}, Table{"aaa", "bb", "ccc", "dddd"}.Malformed(3))
}

func TestDiff(t *testing.T) {
	a := Table{"aaa", "bbb", "ccc"}
	b := Table{"aaa", "xxx", "ccc", "ddd"}
	assert.Equal(t, []int{1, 3}, a.Diff(b))
	assert.Empty(t, a.Diff(a.Clone()))
}

func TestCloneIsIndependent(t *testing.T) {
	a := Table{"aaa", "bbb"}
	b := a.Clone()
	b[0] = "zzz"
	assert.Equal(t, "aaa", a[0])
}

func TestIndexOf(t *testing.T) {
	table := Table{"aaa", "bbb"}
	assert.Equal(t, 1, table.IndexOf("bbb"))
	assert.Equal(t, -1, table.IndexOf("ccc"))
	assert.True(t, table.Contains("aaa"))
}

func TestFingerprint(t *testing.T) {
	a := Table{"aaa", "bbb"}
	assert.Len(t, a.Fingerprint(), 16)
	assert.Equal(t, a.Fingerprint(), a.Clone().Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), Table{"aaa", "bbc"}.Fingerprint())
	assert.Empty(t, Table{}.Fingerprint())
}

func TestReverse(t *testing.T) {
	assert.Equal(t, "cba", reverse("abc"))
	assert.Equal(t, "жya", reverse("ayж"))
	assert.Equal(t, "", reverse(""))
}
