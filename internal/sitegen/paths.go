package sitegen

import (
	"path"
	"path/filepath"
)

// OutputExt is appended to the source file name to form the artifact name.
const OutputExt = ".html"

// SourcePath locates a source file relative to the content root.
func SourcePath(post, name string) string {
	return path.Join(post, name)
}

// OutputPath locates the artifact for a source relative to the output root.
// The extension is appended, not substituted: foo.md becomes foo.md.html.
func OutputPath(post, name string) string {
	return path.Join(post, name+OutputExt)
}

// TemplatePath normalises a configured template path into an fs.FS name
// relative to the site root.
func TemplatePath(name string) string {
	return path.Clean(filepath.ToSlash(name))
}
