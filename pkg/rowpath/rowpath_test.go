package rowpath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"0", true},
		{"7", true},
		{"42", true},
		{"007", true},
		{"184467440737095516150", true}, // wider than uint64, still a key
		{"", false},
		{"-1", false},
		{"+1", false},
		{"1.5", false},
		{"1a", false},
		{"a1", false},
		{" 1", false},
		{"1 ", false},
		{"١٢٣", false}, // non-ASCII digits
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.Equal(t, tt.want, ValidKey(tt.key))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		path string
		want Path
	}{
		{"/", Path{Kind: Root}},
		{"/0", Path{Kind: Record, Key: "0"}},
		{"/42", Path{Kind: Record, Key: "42"}},
		{"/007", Path{Kind: Record, Key: "007"}},
		{"", Path{Kind: Invalid}},
		{"42", Path{Kind: Invalid}},
		{"//2", Path{Kind: Invalid}},
		{"/2/", Path{Kind: Invalid}},
		{"/2/3", Path{Kind: Invalid}},
		{"/abc", Path{Kind: Invalid}},
		{"/-1", Path{Kind: Invalid}},
		{"/1a", Path{Kind: Invalid}},
		{"/.", Path{Kind: Invalid}},
		{"/..", Path{Kind: Invalid}},
		{"relative/2", Path{Kind: Invalid}},
	}
	for _, tt := range tests {
		name := tt.path
		if name == "" {
			name = "(empty)"
		}
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.want, Parse(tt.path))
		})
	}
}

func TestParseLongKey(t *testing.T) {
	key := strings.Repeat("9", 100)
	p := Parse("/" + key)
	require.Equal(t, Record, p.Kind)
	require.Equal(t, key, p.Key)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "root", Root.String())
	require.Equal(t, "record", Record.String())
	require.Equal(t, "invalid", Invalid.String())
	require.Equal(t, "invalid", Kind(99).String())
}
