package sitegen

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mdsite/internal/markdown"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

func newTemplates() fstest.MapFS {
	return fstest.MapFS{
		"header.html": {Data: []byte("<html>")},
		"footer.html": {Data: []byte("</html>")},
	}
}

func newConfig() Config {
	return Config{Pattern: "*.md", HeaderFile: "header.html", FooterFile: "footer.html"}
}

func TestBuildWrapsFragmentWithTemplates(t *testing.T) {
	root := t.TempDir()
	svc := NewService(newConfig(), Dependencies{
		Content:   fstest.MapFS{"bar/foo.md": {Data: []byte("# Hi")}},
		Templates: newTemplates(),
		Writer:    NewFilesystemWriter(root),
		Parser:    markdown.NewGoldmarkParser(interfaces.ParseOptions{}),
	})

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.Posts != 1 || result.FilesBuilt != 1 || result.FilesFailed != 0 {
		t.Fatalf("unexpected counts: posts=%d built=%d failed=%d", result.Posts, result.FilesBuilt, result.FilesFailed)
	}

	got, err := os.ReadFile(filepath.Join(root, "bar", "foo.md.html"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if want := "<html><h1>Hi</h1>\n</html>"; string(got) != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	rendered := result.Rendered[0]
	if rendered.Output != "bar/foo.md.html" {
		t.Fatalf("expected output bar/foo.md.html, got %s", rendered.Output)
	}
	if rendered.Size != len(got) {
		t.Fatalf("expected size %d, got %d", len(got), rendered.Size)
	}
	if rendered.Checksum == "" {
		t.Fatal("expected checksum")
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	root := t.TempDir()
	svc := NewService(newConfig(), Dependencies{
		Content: fstest.MapFS{
			"bar/foo.md":    {Data: []byte("# Hi\n\nA ~~struck~~ _line_ with $x^2$.")},
			"bar/second.md": {Data: []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")},
			"baz/qux.md":    {Data: []byte("- [x] done\n- [ ] todo\n")},
		},
		Templates: newTemplates(),
		Writer:    NewFilesystemWriter(root),
		Parser:    markdown.NewGoldmarkParser(interfaces.ParseOptions{}),
	})

	first, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	firstBytes := readTree(t, root)

	second, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	secondBytes := readTree(t, root)

	if first.BuildID == second.BuildID {
		t.Fatal("expected a fresh build id per run")
	}
	if diff := cmp.Diff(checksums(first), checksums(second)); diff != "" {
		t.Fatalf("checksums differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(firstBytes, secondBytes); diff != "" {
		t.Fatalf("output differs between runs (-first +second):\n%s", diff)
	}
	if len(firstBytes) != 3 {
		t.Fatalf("expected 3 artifacts, got %d", len(firstBytes))
	}
}

func TestBuildDiscardsStaleOutput(t *testing.T) {
	root := t.TempDir()
	stale := filepath.Join(root, "removed", "old.md.html")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewService(newConfig(), Dependencies{
		Content:   fstest.MapFS{"bar/foo.md": {Data: []byte("x")}},
		Templates: newTemplates(),
		Writer:    NewFilesystemWriter(root),
		Parser:    &stubParser{},
	})
	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}

	if _, err := os.Stat(stale); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected stale artifact removed, stat err: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"bar/foo.md.html": "<html><p>x</p></html>"}, readTree(t, root)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildToleratesConversionFailure(t *testing.T) {
	writer := &recordingWriter{}
	svc := NewService(newConfig(), Dependencies{
		Content: fstest.MapFS{
			"bar/a.md":   {Data: []byte("FAIL")},
			"bar/b.md":   {Data: []byte("fine")},
			"baz/c.md":   {Data: []byte("also fine")},
			"baz/notes":  {Data: []byte("not markdown")},
			"stray-file": {Data: []byte("ignored")},
		},
		Templates: newTemplates(),
		Writer:    writer,
		Parser:    &stubParser{},
	})

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err == nil {
		t.Fatal("expected joined error")
	}
	if got := ErrorCode(err); got != codeConvertFailed {
		t.Fatalf("expected code %s, got %q", codeConvertFailed, got)
	}
	if result.FilesBuilt != 2 || result.FilesFailed != 1 {
		t.Fatalf("expected 2 built / 1 failed, got %d / %d", result.FilesBuilt, result.FilesFailed)
	}

	failed := result.Failed()
	if len(failed) != 1 {
		t.Fatalf("expected one failed diagnostic, got %d", len(failed))
	}
	if failed[0].Source != "a.md" || failed[0].Stage != StageConvert || failed[0].Output != "bar/a.md.html" {
		t.Fatalf("unexpected diagnostic: %+v", failed[0])
	}

	if diff := cmp.Diff([]string{"bar/b.md.html", "baz/c.md.html"}, writer.Paths()); diff != "" {
		t.Fatalf("written paths mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFailFastStopsAtFirstFailure(t *testing.T) {
	writer := &recordingWriter{}
	cfg := newConfig()
	cfg.FailFast = true
	svc := NewService(cfg, Dependencies{
		Content: fstest.MapFS{
			"bar/a.md": {Data: []byte("FAIL")},
			"bar/b.md": {Data: []byte("fine")},
		},
		Templates: newTemplates(),
		Writer:    writer,
		Parser:    &stubParser{},
	})

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errStubConvert) {
		t.Fatalf("expected parser error in chain, got %v", err)
	}
	if result.FilesBuilt != 0 || result.FilesFailed != 1 {
		t.Fatalf("expected 0 built / 1 failed, got %d / %d", result.FilesBuilt, result.FilesFailed)
	}
	if len(writer.Paths()) != 0 {
		t.Fatalf("expected no writes after abort, got %v", writer.Paths())
	}
}

func TestBuildOptionsOverrideFailFast(t *testing.T) {
	cfg := newConfig()
	cfg.FailFast = true
	svc := NewService(cfg, Dependencies{
		Content: fstest.MapFS{
			"bar/a.md": {Data: []byte("FAIL")},
			"bar/b.md": {Data: []byte("fine")},
		},
		Templates: newTemplates(),
		Writer:    &recordingWriter{},
		Parser:    &stubParser{},
	})

	tolerant := false
	result, err := svc.Build(context.Background(), BuildOptions{FailFast: &tolerant})
	if err == nil {
		t.Fatal("expected error")
	}
	if result.FilesBuilt != 1 {
		t.Fatalf("expected remaining file to be built, got %d", result.FilesBuilt)
	}
}

func TestBuildMissingTemplateFailsPost(t *testing.T) {
	writer := &recordingWriter{}
	svc := NewService(newConfig(), Dependencies{
		Content: fstest.MapFS{
			"bar/a.md": {Data: []byte("a")},
			"bar/b.md": {Data: []byte("b")},
			"baz/c.md": {Data: []byte("c")},
		},
		Templates: fstest.MapFS{"header.html": {Data: []byte("<html>")}},
		Writer:    writer,
		Parser:    &stubParser{},
	})

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := ErrorCode(err); got != codeTemplateMissing {
		t.Fatalf("expected code %s, got %q", codeTemplateMissing, got)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist in chain, got %v", err)
	}
	if result.FilesFailed != 3 || result.FilesBuilt != 0 {
		t.Fatalf("expected 3 failed / 0 built, got %d / %d", result.FilesFailed, result.FilesBuilt)
	}
	for _, diag := range result.Failed() {
		if diag.Stage != StageTemplate {
			t.Fatalf("expected template stage, got %+v", diag)
		}
	}
	if len(writer.Paths()) != 0 || len(writer.dirs) != 0 {
		t.Fatalf("expected nothing written, got files %v dirs %v", writer.Paths(), writer.dirs)
	}
}

func TestBuildDryRunWritesNothing(t *testing.T) {
	writer := &recordingWriter{}
	svc := NewService(newConfig(), Dependencies{
		Content:   fstest.MapFS{"bar/foo.md": {Data: []byte("x")}},
		Templates: newTemplates(),
		Writer:    writer,
		Parser:    &stubParser{},
	})

	result, err := svc.Build(context.Background(), BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !result.DryRun || result.FilesBuilt != 1 {
		t.Fatalf("expected dry run with one converted file, got %+v", result)
	}
	if writer.resets != 0 || len(writer.Paths()) != 0 {
		t.Fatalf("expected writer untouched, resets=%d files=%v", writer.resets, writer.Paths())
	}
}

func TestBuildEmptyContentRoot(t *testing.T) {
	writer := &recordingWriter{}
	svc := NewService(newConfig(), Dependencies{
		Content:   fstest.MapFS{},
		Templates: newTemplates(),
		Writer:    writer,
		Parser:    &stubParser{},
	})

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.Posts != 0 || result.FilesBuilt != 0 {
		t.Fatalf("expected empty build, got %+v", result)
	}
	if writer.resets != 1 {
		t.Fatalf("expected output root reset once, got %d", writer.resets)
	}
}

func TestBuildMissingContentRoot(t *testing.T) {
	svc := NewService(newConfig(), Dependencies{
		Content:   os.DirFS(filepath.Join(t.TempDir(), "content")),
		Templates: newTemplates(),
		Writer:    &recordingWriter{},
		Parser:    &stubParser{},
	})

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err == nil {
		t.Fatal("expected error for missing content root")
	}
	if got := ErrorCode(err); got != codeContentNotFound {
		t.Fatalf("expected code %s, got %q", codeContentNotFound, got)
	}
	if !strings.Contains(err.Error(), "content root not found") {
		t.Fatalf("expected content root in message, got %q", err.Error())
	}
	if result == nil || result.Failed()[0].Stage != StageList {
		t.Fatalf("expected list-stage diagnostic, got %+v", result)
	}
}

func TestBuildResetFailureIsFatal(t *testing.T) {
	resetErr := errors.New("read-only output")
	writer := &recordingWriter{resetErr: resetErr}
	svc := NewService(newConfig(), Dependencies{
		Content:   fstest.MapFS{"bar/foo.md": {Data: []byte("x")}},
		Templates: newTemplates(),
		Writer:    writer,
		Parser:    &stubParser{},
	})

	result, err := svc.Build(context.Background(), BuildOptions{})
	if !errors.Is(err, resetErr) {
		t.Fatalf("expected reset error, got %v", err)
	}
	if result.Posts != 0 || len(writer.Paths()) != 0 {
		t.Fatalf("expected no work after failed reset, got %+v", result)
	}
}

func TestBuildCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(newConfig(), Dependencies{
		Content:   fstest.MapFS{"bar/foo.md": {Data: []byte("x")}},
		Templates: newTemplates(),
		Parser:    &stubParser{},
	})
	if _, err := svc.Build(ctx, BuildOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuildRecordsDuration(t *testing.T) {
	svc := NewService(newConfig(), Dependencies{
		Content:   fstest.MapFS{"bar/foo.md": {Data: []byte("x")}},
		Templates: newTemplates(),
		Writer:    &recordingWriter{},
		Parser:    &stubParser{},
	}).(*service)

	start := time.Date(2024, 2, 5, 14, 30, 0, 0, time.UTC)
	calls := 0
	svc.now = func() time.Time {
		calls++
		return start.Add(time.Duration(calls) * time.Second)
	}

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.Duration <= 0 {
		t.Fatalf("expected positive duration, got %s", result.Duration)
	}
}

func TestCleanResetsOutput(t *testing.T) {
	writer := &recordingWriter{}
	svc := NewService(newConfig(), Dependencies{Content: fstest.MapFS{}, Writer: writer})

	if err := svc.Clean(context.Background()); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if writer.resets != 1 {
		t.Fatalf("expected one reset, got %d", writer.resets)
	}
}

var errStubConvert = errors.New("stub parser refused input")

// stubParser wraps sources in <p> and fails on input starting with FAIL.
type stubParser struct{}

func (p *stubParser) Parse(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.Render(src, &buf)
	return buf.Bytes(), err
}

func (p *stubParser) ParseWithOptions(src []byte, _ interfaces.ParseOptions) ([]byte, error) {
	return p.Parse(src)
}

func (p *stubParser) Render(src []byte, w io.Writer) error {
	if bytes.HasPrefix(src, []byte("FAIL")) {
		return errStubConvert
	}
	for _, chunk := range [][]byte{[]byte("<p>"), src, []byte("</p>")} {
		if _, err := w.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}

type recordingWriter struct {
	resetErr error
	resets   int
	dirs     []string
	files    map[string][]byte
}

func (w *recordingWriter) Reset(context.Context) error {
	if w.resetErr != nil {
		return w.resetErr
	}
	w.resets++
	w.dirs = nil
	w.files = nil
	return nil
}

func (w *recordingWriter) EnsureDir(_ context.Context, dir string) error {
	w.dirs = append(w.dirs, dir)
	return nil
}

func (w *recordingWriter) WriteFile(_ context.Context, req WriteRequest) error {
	if w.files == nil {
		w.files = map[string][]byte{}
	}
	w.files[req.Path] = bytes.Join(req.Parts, nil)
	return nil
}

func (w *recordingWriter) Paths() []string {
	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walk output: %v", err)
	}
	return out
}

func checksums(result *BuildResult) map[string]string {
	out := map[string]string{}
	for _, file := range result.Rendered {
		out[file.Output] = file.Checksum
	}
	return out
}
