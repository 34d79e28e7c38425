// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"Unit-07.md", "07"},
		{"Final.md", "al"},
		{"X.md", "X"},
		{"lesson-.md", DefaultNumber},
		{"01-robotics.md", "cs"},
		{"-abc.md", "bc"},
		{"a-b.md", "b"},
		{"dir/sub/项目12.md", "12"},
		{"  padded 3  .md", " 3"},
		{".md", DefaultNumber},
		{"", DefaultNumber},
		{"plan.v2.md", "v2"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.path))
		})
	}
}

func TestDerive_DefaultPattern(t *testing.T) {
	name, err := Derive(types.DefaultNamePattern, "/in/Unit-07.md", "智能小车")
	require.NoError(t, err)
	assert.Equal(t, "07-智能小车-教案", name)
}

func TestDerive_EmptyProject(t *testing.T) {
	name, err := Derive(types.DefaultNamePattern, "lesson-.md", "")
	require.NoError(t, err)
	assert.Equal(t, "1--教案", name)
}

func TestDerive_CustomPatterns(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{`base + "_out"`, "Unit-07_out"},
		{`project == "" ? base : project`, "智能小车"},
		{`upper(number) + "-" + project`, "07-智能小车"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			name, err := Derive(tt.pattern, "Unit-07.md", "智能小车")
			require.NoError(t, err)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestDerive_Errors(t *testing.T) {
	_, err := Derive(`project`, "Unit-07.md", "")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = Derive(`number +`, "Unit-07.md", "p")
	assert.Error(t, err)

	_, err = Derive(`len(project)`, "Unit-07.md", "p")
	assert.Error(t, err)
}
