package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSyncFilesItemYAML(t *testing.T) {
	testCases := []struct {
		desc     string
		doc      string
		expected SyncFilesItem
	}{
		{"bare path", `README.md`, SyncFilesItem{Src: []string{"README.md"}, Dest: "README.md"}},
		{"single src", "src: a.spec\ndest: b.spec", SyncFilesItem{Src: []string{"a.spec"}, Dest: "b.spec"}},
		{"src list", "src: [a, b]\ndest: dir/", SyncFilesItem{Src: []string{"a", "b"}, Dest: "dir/"}},
		{"all flags", "src: a\ndest: b\nmkpath: true\ndelete: true\nfilters: ['- *.pyc']", SyncFilesItem{
			Src: []string{"a"}, Dest: "b", Mkpath: true, Delete: true, Filters: []string{"- *.pyc"},
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			var item SyncFilesItem
			require.NoError(t, yaml.Unmarshal([]byte(tc.doc), &item))
			assert.Equal(t, tc.expected, item)
		})
	}
}

func TestSyncFilesItemYAMLErrors(t *testing.T) {
	for _, doc := range []string{
		"dest: b",
		"src: a",
		"src: {x: y}\ndest: b",
		"[a, b]",
	} {
		var item SyncFilesItem
		assert.Error(t, yaml.Unmarshal([]byte(doc), &item), doc)
	}
}

func TestSrcHelpers(t *testing.T) {
	items := []SyncFilesItem{
		NewSyncFilesItem([]string{"a", "b"}, "dir/"),
		SyncPath("c"),
	}
	assert.Equal(t, []string{"a", "b", "c"}, IterSrcs(items))
	assert.True(t, ContainsSrc(items, "b"))
	assert.False(t, ContainsSrc(items, "dir/"))
	assert.Nil(t, IterSrcs(nil))
	assert.Equal(t, "[a b] -> dir/", items[0].String())
}

func TestStringOrList(t *testing.T) {
	var one, many StringOrList
	require.NoError(t, yaml.Unmarshal([]byte(`make`), &one))
	require.NoError(t, yaml.Unmarshal([]byte(`[make, make install]`), &many))
	assert.Equal(t, StringOrList{"make"}, one)
	assert.Equal(t, StringOrList{"make", "make install"}, many)
}

func TestDeployment(t *testing.T) {
	for _, name := range []string{"dev", "stg", "prod"} {
		d, err := ParseDeployment(name)
		require.NoError(t, err)
		assert.Equal(t, Deployment(name), d)
	}

	_, err := ParseDeployment("production")
	assert.True(t, IsType(err, ErrInvalidConfig))

	var list []Deployment
	require.NoError(t, yaml.Unmarshal([]byte(`[prod, stg]`), &list))
	assert.Equal(t, []Deployment{DeploymentProd, DeploymentStg}, list)
	assert.Error(t, yaml.Unmarshal([]byte(`[qa]`), &list))
}

func TestActionName(t *testing.T) {
	names := ActionNames()
	assert.Len(t, names, 11)
	assert.Equal(t, ActionChangelogEntry, names[0])

	a, err := ParseActionName("fix-spec-file")
	require.NoError(t, err)
	assert.Equal(t, ActionFixSpec, a)

	var actions map[ActionName]StringOrList
	err = yaml.Unmarshal([]byte("pre-sync: make\nno-such-hook: x\n"), &actions)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-hook")
}

func TestConfigError(t *testing.T) {
	err := NewConfigError(ErrAmbiguous, "specfile_path", "%d packages", 2)
	assert.Equal(t, "[Ambiguous] specfile_path: 2 packages", err.Error())

	wrapped := fmt.Errorf("loading: %w", err)
	assert.True(t, IsType(wrapped, ErrAmbiguous))
	assert.False(t, IsType(wrapped, ErrInvalidConfig))
	assert.False(t, IsType(errors.New("plain"), ErrAmbiguous))

	inner := errors.New("disk on fire")
	fileErr := &ConfigError{Type: ErrFileOp, Field: "/tmp/x", Err: inner}
	assert.ErrorIs(t, fileErr, inner)
}
