package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/grid"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		text    string
		ok      bool
		key     string
		payload string
	}{
		{"@qpcr:assay", true, "assay", ""},
		{"@qpcr:normaliser", true, "normaliser", ""},
		{"@qpcr:group", true, "group", ""},
		{"@qpcr", true, "", ""},
		{"'@qpcr:assay", true, "assay", ""},
		{"  @qpcr:assay  ", true, "assay", ""},
		{"'@qpcr:group ActinB", true, "group", "ActinB"},
		{"@qpcr:", false, "", ""},
		{"@qpcrfoo", false, "", ""},
		{"@other:assay", false, "", ""},
		{"Name", false, "", ""},
		{"", false, "", ""},
	}
	for _, tt := range tests {
		d, ok := ParseToken(tt.text, DefaultNamespace)
		if ok != tt.ok {
			t.Errorf("ParseToken(%q) ok = %v, expected %v", tt.text, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if d.Key != tt.key || d.Payload != tt.payload {
			t.Errorf("ParseToken(%q) = key %q payload %q, expected key %q payload %q",
				tt.text, d.Key, d.Payload, tt.key, tt.payload)
		}
	}
}

func TestScan(t *testing.T) {
	g := grid.New([][]string{
		{"@qpcr:normaliser", "", ""},
		{"some header", "", "'@qpcr:assay"},
		{"Name", "Ct", ""},
	})

	found := Scan(g, DefaultNamespace)
	require.Len(t, found, 2)

	assert.Equal(t, KeyNormaliser, found[0].Key)
	assert.Equal(t, 0, found[0].Row)
	assert.Equal(t, 0, found[0].Col)

	assert.Equal(t, KeyAssay, found[1].Key)
	assert.Equal(t, 1, found[1].Row)
	assert.Equal(t, 2, found[1].Col)
}

func TestScanEmptyIsValid(t *testing.T) {
	g := grid.New([][]string{{"Name", "Ct"}, {"ctrl1", "24.5"}})
	assert.Empty(t, Scan(g, DefaultNamespace))
}

func TestFilterByKeyAndAt(t *testing.T) {
	decs := []Decorator{
		{Key: KeyAssay, Row: 0, Col: 0},
		{Key: KeyNormaliser, Row: 4, Col: 0},
		{Key: KeyGroup, Row: 0, Col: 2},
	}

	roles := FilterByKey(decs, KeyAssay, KeyNormaliser)
	require.Len(t, roles, 2)
	assert.Equal(t, KeyAssay, roles[0].Key)
	assert.Equal(t, KeyNormaliser, roles[1].Key)

	d, ok := At(decs, 4, 0)
	require.True(t, ok)
	assert.Equal(t, KeyNormaliser, d.Key)

	_, ok = At(decs, 1, 1)
	assert.False(t, ok)
}
