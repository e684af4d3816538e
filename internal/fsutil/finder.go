// Package fsutil provides file system utility functions over a billy
// filesystem rooted at the workspace.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// ManifestName is the file name of a module manifest.
const ManifestName = "pom.xml"

// skipDirs are never descended into when scanning for manifests.
var skipDirs = map[string]struct{}{
	"target":       {},
	"node_modules": {},
}

// Normalize returns the canonical, slash separated form of a
// workspace-relative path. The workspace root itself is ".".
func Normalize(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "."
	}
	return p
}

// Exists reports whether the path exists on the filesystem. Errors other
// than "not exist" are returned to the caller.
func Exists(fsys billy.Filesystem, p string) (bool, error) {
	_, err := fsys.Stat(Normalize(p))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsDir reports whether the path exists and is a directory.
func IsDir(fsys billy.Filesystem, p string) bool {
	info, err := fsys.Stat(Normalize(p))
	return err == nil && info.IsDir()
}

// ReadFile reads the whole file at the given path.
func ReadFile(fsys billy.Filesystem, p string) ([]byte, error) {
	return util.ReadFile(fsys, Normalize(p))
}

// ModuleManifest resolves a sub-module reference declared in the manifest
// living in dir. References naming an .xml file are used as is, anything
// else is treated as a directory holding a pom.xml.
func ModuleManifest(dir, module string) string {
	module = strings.TrimSpace(module)
	joined := path.Join(filepath.ToSlash(dir), filepath.ToSlash(module))
	if strings.HasSuffix(strings.ToLower(module), ".xml") {
		return Normalize(joined)
	}
	return Normalize(path.Join(joined, ManifestName))
}

// Rel converts a path given on the command line (absolute, or relative to
// the working directory) into a path relative to the workspace root. Paths
// outside the root are rejected.
func Rel(root, p string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absPath := p
	if !filepath.IsAbs(p) {
		if absPath, err = filepath.Abs(p); err != nil {
			return "", err
		}
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return "", err
	}
	rel = Normalize(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", errors.New("path " + p + " is outside the workspace root " + root)
	}
	return rel, nil
}

// FindFilesByName recursively searches the given root path for all files
// with exactly the given name. Hidden directories, build output and
// node_modules are skipped. Results are in lexical walk order.
func FindFilesByName(fsys billy.Filesystem, root string, name string) ([]string, error) {
	if name == "" {
		panic("name must not be empty")
	}

	var files []string
	err := util.Walk(fsys, Normalize(root), func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			base := info.Name()
			if _, skip := skipDirs[base]; skip || (strings.HasPrefix(base, ".") && base != "." && Normalize(p) != Normalize(root)) {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Name() == name {
			files = append(files, Normalize(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
