package impl

import (
	"path"
	"strings"

	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

// GlobWalk expands pattern segment by segment, starting at the directory root.
// Every segment is matched with path.Match against the names returned by children.
// The result is in the order of children; nil is returned if nothing matches.
//
// File systems without a native glob (RAM, Google Drive) use this function.
func GlobWalk(pattern string, root interf.File, children func(dir interf.File) ([]interf.File, error)) ([]interf.File, error) {
	segments := SplitPath(pattern)

	// validate the whole pattern first
	for _, seg := range segments {
		if _, err := path.Match(seg, ""); err != nil {
			return nil, err
		}
	}

	frontier := []interf.File{root}
	for _, seg := range segments {
		var next []interf.File
		for _, dir := range frontier {
			if !dir.IsDir() {
				continue
			}
			kids, err := children(dir)
			if err != nil {
				return nil, err
			}
			for _, k := range kids {
				if ok, _ := path.Match(seg, k.Name()); ok {
					next = append(next, k)
				}
			}
		}
		if len(next) == 0 {
			return nil, nil // no match is not an error
		}
		frontier = next
	}
	return frontier, nil
}

// SplitPath returns the non-empty segments of a slash separated path.
func SplitPath(p string) []string {
	parts := strings.Split(p, "/")
	ret := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" && s != "." {
			ret = append(ret, s)
		}
	}
	return ret
}

// HasMeta reports whether the path contains any of the magic characters recognized by path.Match.
func HasMeta(p string) bool {
	return strings.ContainsAny(p, `*?[\`)
}
