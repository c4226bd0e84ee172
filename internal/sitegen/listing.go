package sitegen

import (
	"io/fs"
	"path"
)

// ListEntries returns the name of every entry in dir, files and directories
// alike, excluding the "." and ".." pseudo-entries. Each entry appears once;
// the order is not part of the contract. The listing has no size limit.
func ListEntries(fsys fs.FS, dir string) ([]string, error) {
	entries, err := readEntries(fsys, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// listPosts returns the directories directly under the content root. Other
// entries are reported through skipped.
func listPosts(fsys fs.FS, skipped func(name string)) ([]string, error) {
	entries, err := readEntries(fsys, ".")
	if err != nil {
		return nil, err
	}
	var posts []string
	for _, entry := range entries {
		if isDir(fsys, ".", entry) {
			posts = append(posts, entry.Name())
			continue
		}
		if skipped != nil {
			skipped(entry.Name())
		}
	}
	return posts, nil
}

// listSources returns the non-directory entries of post matching pattern.
func listSources(fsys fs.FS, post, pattern string) ([]string, error) {
	entries, err := readEntries(fsys, post)
	if err != nil {
		return nil, err
	}
	var sources []string
	for _, entry := range entries {
		if isDir(fsys, post, entry) {
			continue
		}
		if ok, _ := path.Match(pattern, entry.Name()); !ok {
			continue
		}
		sources = append(sources, entry.Name())
	}
	return sources, nil
}

func readEntries(fsys fs.FS, dir string) ([]fs.DirEntry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, wrapListError(err, dir)
	}
	out := entries[:0]
	for _, entry := range entries {
		if name := entry.Name(); name == "." || name == ".." {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// isDir resolves symlinks so a linked post directory is still a post.
func isDir(fsys fs.FS, parent string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(fsys, path.Join(parent, entry.Name()))
	return err == nil && info.IsDir()
}
