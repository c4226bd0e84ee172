package sitegen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// WriteRequest describes one artifact. Parts are written in order, each by
// its byte length, with no transformation in between.
type WriteRequest struct {
	Path  string
	Parts [][]byte
}

// Size reports the total number of bytes in the request.
func (r WriteRequest) Size() int {
	total := 0
	for _, part := range r.Parts {
		total += len(part)
	}
	return total
}

// ArtifactWriter abstracts where build output lands.
type ArtifactWriter interface {
	// Reset discards everything under the output root and recreates it empty.
	Reset(ctx context.Context) error
	// EnsureDir creates a directory relative to the output root.
	EnsureDir(ctx context.Context, dir string) error
	// WriteFile creates or truncates the artifact and writes its parts.
	WriteFile(ctx context.Context, req WriteRequest) error
}

// NewFilesystemWriter returns an ArtifactWriter rooted at root on disk.
func NewFilesystemWriter(root string) ArtifactWriter {
	return &filesystemWriter{root: filepath.Clean(root)}
}

type filesystemWriter struct {
	root string
}

func (w *filesystemWriter) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.RemoveAll(w.root); err != nil {
		return wrapResetError(err, w.root)
	}
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return wrapResetError(err, w.root)
	}
	return nil
}

func (w *filesystemWriter) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(dir) == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(w.resolve(dir), 0o755); err != nil {
		return wrapWriteError(err, dir)
	}
	return nil
}

func (w *filesystemWriter) WriteFile(ctx context.Context, req WriteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("sitegen: write requires path")
	}

	target := w.resolve(req.Path)
	f, err := os.Create(target)
	if err != nil {
		return wrapWriteError(err, req.Path)
	}
	for _, part := range req.Parts {
		if _, err = f.Write(part); err != nil {
			break
		}
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// A failed artifact is removed rather than left truncated.
		_ = os.Remove(target)
		return wrapWriteError(err, req.Path)
	}
	return nil
}

func (w *filesystemWriter) resolve(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

type noopWriter struct{}

func (noopWriter) Reset(context.Context) error { return nil }

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, WriteRequest) error { return nil }
