package sitegen

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-mdsite/internal/buffer"
	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

var (
	errContentRequired = errors.New("sitegen: content filesystem is required")
	errParserRequired  = errors.New("sitegen: markdown parser is required")
)

// Service describes the build contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures the behaviour toggles of the driver.
type Config struct {
	// Pattern selects the sources converted inside each post directory.
	Pattern string
	// HeaderFile and FooterFile are names within Dependencies.Templates.
	HeaderFile string
	FooterFile string
	FailFast   bool
}

// Dependencies lists the collaborators of the driver.
type Dependencies struct {
	// Content is rooted at the content directory; its top-level directories
	// are the posts.
	Content fs.FS
	// Templates is rooted at the site directory holding header and footer.
	Templates fs.FS
	Writer    ArtifactWriter
	Parser    interfaces.MarkdownParser
	Logger    interfaces.Logger
}

// NewService wires a driver with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	if strings.TrimSpace(cfg.Pattern) == "" {
		cfg.Pattern = "*.md"
	}
	cfg.HeaderFile = TemplatePath(cfg.HeaderFile)
	cfg.FooterFile = TemplatePath(cfg.FooterFile)
	if deps.Writer == nil {
		deps.Writer = noopWriter{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &service{cfg: cfg, deps: deps, now: time.Now}
}

type service struct {
	cfg  Config
	deps Dependencies
	now  func() time.Time
}

// build holds the state of a single run.
type build struct {
	ctx      context.Context
	writer   ArtifactWriter
	logger   interfaces.Logger
	result   *BuildResult
	failFast bool
}

// Build resets the output root, then converts each post: templates first,
// then read, convert and write per source. Failures are recorded per file and
// the returned error joins all of them. With FailFast the first failure ends
// the run.
func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Content == nil {
		return nil, errContentRequired
	}
	if s.deps.Parser == nil {
		return nil, errParserRequired
	}

	start := s.now()
	b := &build{
		ctx:      ctx,
		writer:   s.deps.Writer,
		result:   &BuildResult{BuildID: uuid.New(), DryRun: opts.DryRun},
		failFast: s.cfg.FailFast,
	}
	if opts.FailFast != nil {
		b.failFast = *opts.FailFast
	}
	if opts.DryRun {
		b.writer = noopWriter{}
	}
	b.logger = logging.WithFields(s.deps.Logger.WithContext(ctx), map[string]any{
		"build_id": b.result.BuildID.String(),
	})
	finish := func(err error) (*BuildResult, error) {
		b.result.Duration = s.now().Sub(start)
		return b.result, err
	}

	b.logger.Info("sitegen.build.start", "dry_run", opts.DryRun, "fail_fast", b.failFast)

	if err := b.writer.Reset(ctx); err != nil {
		b.logger.Error("sitegen.output.reset_failed", "error", err)
		return finish(err)
	}

	posts, err := listPosts(s.deps.Content, func(name string) {
		b.logger.Warn("sitegen.post.skipped", "entry", name, "reason", "not a directory")
	})
	if err != nil {
		b.logger.Error("sitegen.content.list_failed", "error", err)
		b.result.fail(FileDiagnostic{Stage: StageList, Err: err}, 0)
		return finish(err)
	}

	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			b.result.fail(FileDiagnostic{Post: post, Stage: StageCanceled, Err: err}, 0)
			return finish(errors.Join(b.result.Errors...))
		}
		b.result.Posts++
		err := s.buildPost(b, post)
		if ctx.Err() != nil {
			return finish(errors.Join(b.result.Errors...))
		}
		if err != nil && b.failFast {
			b.logger.Error("sitegen.build.aborted", "post", post, "error", err)
			return finish(err)
		}
	}

	b.logger.Info("sitegen.build.completed",
		"posts", b.result.Posts,
		"files_built", b.result.FilesBuilt,
		"files_failed", b.result.FilesFailed,
		"duration", s.now().Sub(start),
	)
	if len(b.result.Errors) > 0 {
		return finish(errors.Join(b.result.Errors...))
	}
	return finish(nil)
}

// Clean removes and recreates the output root.
func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.deps.Writer.Reset(ctx)
}

// buildPost converts the sources of one post directory. Template failures
// fail every source of the post; per-source failures only fail that source
// unless the build is fail-fast.
func (s *service) buildPost(b *build, post string) error {
	logger := logging.WithFileContext(b.logger, post, "")

	sources, err := listSources(s.deps.Content, post, s.cfg.Pattern)
	if err != nil {
		logger.Error("sitegen.post.list_failed", "error", err)
		b.result.fail(FileDiagnostic{Post: post, Stage: StageList, Err: err}, 0)
		return err
	}

	header, err := s.readTemplate(s.cfg.HeaderFile)
	if err == nil {
		var footer []byte
		if footer, err = s.readTemplate(s.cfg.FooterFile); err == nil {
			return s.buildSources(b, logger, post, sources, header, footer)
		}
	}

	logger.Error("sitegen.post.template_failed", "error", err, "sources", len(sources))
	b.result.fail(FileDiagnostic{Post: post, Stage: StageTemplate, Err: err}, len(sources))
	return err
}

func (s *service) buildSources(b *build, logger interfaces.Logger, post string, sources []string, header, footer []byte) error {
	if err := b.writer.EnsureDir(b.ctx, post); err != nil {
		logger.Error("sitegen.post.output_dir_failed", "error", err)
		b.result.fail(FileDiagnostic{Post: post, Stage: StageWrite, Err: err}, len(sources))
		return err
	}

	var firstErr error
	for _, name := range sources {
		if err := b.ctx.Err(); err != nil {
			b.result.fail(FileDiagnostic{Post: post, Source: name, Stage: StageCanceled, Err: err}, 1)
			return err
		}

		file, stage, err := s.buildFile(b, post, name, header, footer)
		if err != nil {
			logging.WithFileContext(logger, "", name).Error("sitegen.file.convert.failed",
				"stage", string(stage),
				"error", err,
			)
			b.result.fail(FileDiagnostic{
				Post:   post,
				Source: name,
				Output: OutputPath(post, name),
				Stage:  stage,
				Err:    err,
			}, 1)
			if b.failFast {
				return err
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		b.result.succeed(file)
	}
	return firstErr
}

func (s *service) buildFile(b *build, post, name string, header, footer []byte) (RenderedFile, Stage, error) {
	logger := logging.WithFileContext(b.logger, post, name)
	logger.Info("sitegen.file.convert.start")

	source, err := ReadSource(s.deps.Content, SourcePath(post, name))
	if err != nil {
		return RenderedFile{}, StageRead, wrapReadError(err, SourcePath(post, name))
	}

	fragment := buffer.New(len(source))
	if err := s.deps.Parser.Render(source, fragment); err != nil {
		return RenderedFile{}, StageConvert, wrapConvertError(err, SourcePath(post, name))
	}

	req := WriteRequest{
		Path:  OutputPath(post, name),
		Parts: [][]byte{header, fragment.Finish(), footer},
	}
	if err := b.writer.WriteFile(b.ctx, req); err != nil {
		return RenderedFile{}, StageWrite, wrapWriteError(err, req.Path)
	}

	file := RenderedFile{
		Post:     post,
		Source:   name,
		Output:   req.Path,
		Size:     req.Size(),
		Checksum: checksum(req.Parts),
	}
	logger.Info("sitegen.file.convert.success", "output", file.Output, "bytes", file.Size)
	return file, StageDone, nil
}

// readTemplate loads a header or footer. Templates are re-read for every
// post directory.
func (s *service) readTemplate(name string) ([]byte, error) {
	if s.deps.Templates == nil {
		return nil, wrapTemplateError(fs.ErrNotExist, name)
	}
	data, err := ReadSource(s.deps.Templates, name)
	if err != nil {
		return nil, wrapTemplateError(err, name)
	}
	return data, nil
}

func checksum(parts [][]byte) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write(part)
	}
	return hex.EncodeToString(h.Sum(nil))
}
