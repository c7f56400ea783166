package cmd

import (
	"context"
	"os"
	"path/filepath"
	"text/template"

	"github.com/nightlyone/lockfile"
	"github.com/oneconcern/datarev/pkg/model"
	"github.com/oneconcern/datarev/pkg/workspace/localfs"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const lockFile = "lock"

// workspacePath yields the path to the workspace to work with
func workspacePath() string {
	if datarevFlags.workspace.path != "" {
		return datarevFlags.workspace.path
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

func workspaceOptions() []localfs.Option {
	return []localfs.Option{
		localfs.WithLogger(logger),
		localfs.WithContributor(config.contributor()),
	}
}

func openWorkspace(ctx context.Context) (*localfs.Workspace, error) {
	return localfs.Open(ctx, workspacePath(), workspaceOptions()...)
}

// openLockedWorkspace opens the workspace to update it.
//
// The workspace lock prevents several datarev processes from updating the same workspace.
// The returned function releases the lock and closes the workspace.
func openLockedWorkspace(ctx context.Context) (*localfs.Workspace, func(), error) {
	ws, err := openWorkspace(ctx)
	if err != nil {
		return nil, nil, err
	}
	lock, err := lockfile.New(filepath.Join(ws.Root(), model.MetaDir, lockFile))
	if err != nil {
		_ = ws.Close()
		return nil, nil, err
	}
	if err = lock.TryLock(); err != nil {
		_ = ws.Close()
		return nil, nil, err
	}
	return ws, func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release workspace lock", zap.String("workspace", ws.Root()), zap.Error(err))
		}
		_ = ws.Close()
	}, nil
}

// ambientWorkspace opens the workspace to use as context when resolving revpaths, if any
func ambientWorkspace(ctx context.Context) *localfs.Workspace {
	path := workspacePath()
	if !localfs.IsWorkspace(afero.NewOsFs(), path) {
		return nil
	}
	ws, err := openWorkspace(ctx)
	if err != nil {
		logger.Debug("no ambient workspace", zap.String("path", path), zap.Error(err))
		return nil
	}
	return ws
}

// outputTemplate yields the template set by the --template flag, or some default
func outputTemplate(name, defaultTemplate string) *template.Template {
	if datarevFlags.core.Template != "" {
		t, err := template.New(name).Parse(datarevFlags.core.Template)
		if err == nil {
			return t
		}
		wrapFatalln("invalid template", err)
	}
	return template.Must(template.New(name).Parse(defaultTemplate))
}
