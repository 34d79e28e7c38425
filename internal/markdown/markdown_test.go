// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Sections
	}{
		{
			name: "empty input",
			in:   "",
			want: Sections{},
		},
		{
			name: "single section",
			in:   "# 项目名称\n智能小车\n",
			want: Sections{"项目名称": "智能小车\n"},
		},
		{
			name: "levels share one key space",
			in:   "# A\none\n### A\ntwo\n## B\nthree",
			want: Sections{"A": "one\ntwo\n", "B": "three\n"},
		},
		{
			name: "duplicate heading appends",
			in:   "# X\nfirst\n# Y\nmid\n# X\nsecond\n",
			want: Sections{"X": "first\nsecond\n", "Y": "mid\n"},
		},
		{
			name: "lines before first heading dropped",
			in:   "preamble\n\n# K\nv\n",
			want: Sections{"K": "v\n"},
		},
		{
			name: "heading text is trimmed",
			in:   "#   课前:教学内容  \nbody\n",
			want: Sections{"课前:教学内容": "body\n"},
		},
		{
			name: "line content is not trimmed",
			in:   "# K\n  indented\t\n",
			want: Sections{"K": "  indented\t\n"},
		},
		{
			name: "whitespace-only value kept",
			in:   "# K\n   \n",
			want: Sections{"K": "   \n"},
		},
		{
			name: "heading without body",
			in:   "# K\n# L\nx\n",
			want: Sections{"K": "", "L": "x\n"},
		},
		{
			name: "empty heading drops following lines",
			in:   "# K\nkeep\n# \nlost\n# L\nx\n",
			want: Sections{"K": "keep\n", "L": "x\n"},
		},
		{
			name: "deeper headings are content",
			in:   "# K\n#### not a heading\n#hashtag\n",
			want: Sections{"K": "#### not a heading\n#hashtag\n"},
		},
		{
			name: "crlf line endings",
			in:   "# K\r\nline\r\n",
			want: Sections{"K": "line\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	in := Sections{
		"项目名称":    "智能小车\n",
		"课前:教学内容": "第一行\n第二行\n",
		"学情分析":    "  缩进\n",
	}
	var b strings.Builder
	for _, k := range in.Keys() {
		b.WriteString("## " + k + "\n" + in[k])
	}
	assert.Equal(t, in, Parse(b.String()))
}

func TestGet(t *testing.T) {
	s := Parse("# K\n\n  value  \n\n")
	assert.Equal(t, "value", s.Get("K"))
	assert.Equal(t, "", s.Get("missing"))

	raw, ok := s.Lookup("K")
	assert.True(t, ok)
	assert.Equal(t, "\n  value  \n\n", raw)
	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestGet_NormalizesKey(t *testing.T) {
	// "é" precomposed in the heading, decomposed in the lookup.
	s := Parse("# caf\u00e9\nx\n")
	assert.Equal(t, "x", s.Get("cafe\u0301"))
}

func TestReadFile_StripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.md")
	require.NoError(t, os.WriteFile(path, []byte("\ufeff# 项目名称\n智能小车\n"), 0o644))

	s, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "智能小车", s.Get("项目名称"))
	assert.Equal(t, []string{"项目名称"}, s.Keys())
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.md")
}

func TestYAML(t *testing.T) {
	s := Parse("# B\nb\n# A\na\n")
	data, err := s.YAML()
	require.NoError(t, err)

	var back map[string]string
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, map[string]string{"A": "a\n", "B": "b\n"}, back)
	assert.Less(t, strings.Index(string(data), "A:"), strings.Index(string(data), "B:"))
}
