package impl_test

import (
	"strings"
	"testing"

	impl "github.com/SchnorcherSepp/fileinput/defaultimpl"
	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

func TestGlobWalk(t *testing.T) {
	tree := map[string][]interf.File{
		"/": {
			impl.NewFile("/a", 0, 0, true),
			impl.NewFile("/b.txt", 0, 1, false),
		},
		"/a": {
			impl.NewFile("/a/x.txt", 0, 1, false),
			impl.NewFile("/a/y.log", 0, 1, false),
		},
	}
	children := func(dir interf.File) ([]interf.File, error) {
		return tree[dir.Path()], nil
	}
	root := impl.NewFile("/", 0, 0, true)

	tests := []struct {
		pattern string
		want    string
	}{
		{"/", "/"},
		{"/a", "/a"},
		{"/*", "/a,/b.txt"},
		{"/*/*.txt", "/a/x.txt"},
		{"/a/?.*", "/a/x.txt,/a/y.log"},
		{"/b.txt/x", ""},
		{"/c", ""},
		{"a//x.txt", "/a/x.txt"},
	}

	for i, tc := range tests {
		files, err := impl.GlobWalk(tc.pattern, root, children)
		if err != nil {
			t.Fatalf("test case %d: %v", i, err)
		}
		var got []string
		for _, f := range files {
			got = append(got, f.Path())
		}
		if strings.Join(got, ",") != tc.want {
			t.Errorf("test case %d: %v, should %s", i, got, tc.want)
		}
	}

	if _, err := impl.GlobWalk("/a/[x", root, children); err == nil {
		t.Errorf("no error with bad pattern")
	}
}

func TestHasMeta(t *testing.T) {
	if impl.HasMeta("/a/b.txt") || !impl.HasMeta("/a/*.txt") || !impl.HasMeta("/a/?") || !impl.HasMeta("/[ab]") {
		t.Errorf("wrong HasMeta")
	}
	if s := impl.SplitPath("/a//b/./c/"); strings.Join(s, ",") != "a,b,c" {
		t.Errorf("wrong SplitPath: %v", s)
	}
}
