// Command mdsite converts content/<post>/*.md into html/<post>/<file>.md.html,
// wrapping each page with header.html and footer.html from the working
// directory. It takes no arguments.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-mdsite"
	"github.com/goliatone/go-mdsite/internal/report"
)

// moduleBuilder is swapped in tests.
var moduleBuilder = func(cfg mdsite.Config) (builder, error) {
	return mdsite.New(cfg)
}

type builder interface {
	Build(ctx context.Context, opts mdsite.BuildOptions) (*mdsite.BuildResult, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	result, err := run(ctx)
	stop()
	report.New().Finish(result, err)
}

func run(ctx context.Context) (*mdsite.BuildResult, error) {
	module, err := moduleBuilder(mdsite.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return module.Build(ctx, mdsite.BuildOptions{})
}
