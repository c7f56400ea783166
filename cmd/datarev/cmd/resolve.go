package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/oneconcern/datarev/pkg/errors"
	"github.com/oneconcern/datarev/pkg/revpath"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// resolveRevpath resolves a revpath, using the current workspace as context when there is one.
//
// The caller must close the returned result and release function. When no interpretation of the
// revpath succeeds, every problem is reported and the command exits with ENOENT status.
func resolveRevpath(ctx context.Context, path string) (*revpath.Result, func()) {
	opts := []revpath.Option{revpath.WithLogger(logger)}
	ambient := ambientWorkspace(ctx)
	release := func() {}
	if ambient != nil {
		opts = append(opts, revpath.WithWorkspace(ambient))
		release = func() {
			_ = ambient.Close()
		}
	}

	res, err := revpath.Resolve(ctx, path, opts...)
	if err != nil {
		release()
		reportProblems(err)
		wrapFatalWithCodef(int(unix.ENOENT), "didn't find any dataset matching %q", path)
		return nil, func() {}
	}
	return res, func() {
		_ = res.Close()
		release()
	}
}

func reportProblems(err error) {
	var wrong *revpath.WrongRevpathError
	if !errors.As(err, &wrong) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return
	}
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	_, _ = red.Fprintf(os.Stderr, "wrong revpath %q\n", wrong.Revpath)
	for _, problem := range wrong.Problems {
		var p *revpath.Problem
		if errors.As(problem, &p) {
			_, _ = yellow.Fprintf(os.Stderr, "  %s: ", p.Strategy)
			_, _ = fmt.Fprintln(os.Stderr, p.Err)
			continue
		}
		_, _ = fmt.Fprintf(os.Stderr, "  %v\n", problem)
	}
}

// workspaceFs is the file system datasets are read from by the CLI
func workspaceFs() afero.Fs {
	return afero.NewOsFs()
}
