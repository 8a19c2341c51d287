package commands

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/wikicheck/internal/config"
	"git.home.luguber.info/inful/wikicheck/internal/gitutil"
	"git.home.luguber.info/inful/wikicheck/internal/linkcheck"
	"git.home.luguber.info/inful/wikicheck/internal/redirects"
	"git.home.luguber.info/inful/wikicheck/internal/report"
	"git.home.luguber.info/inful/wikicheck/internal/wikifs"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Paths []string `arg:"" optional:"" help:"Root-relative article files to check. Defaults to files changed in the working tree"`

	All           bool   `short:"a" help:"Check every article and news post"`
	Redirects     string `help:"Root-relative path of the redirect table (overrides config)"`
	CaseSensitive bool   `help:"Require byte-exact casing for in-wiki paths"`
	Format        string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Jobs          int    `short:"j" default:"4" help:"Number of articles checked concurrently"`
	Watch         bool   `short:"w" help:"Keep running and re-check articles as they change"`
}

// Run executes the check command.
func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if root.Root != "" {
		cfg.Root = root.Root
	}
	if c.Redirects != "" {
		cfg.RedirectFile = c.Redirects
	}
	if c.CaseSensitive {
		cfg.CaseSensitive = true
	}

	run := &checkRun{cmd: c, cfg: cfg}

	if c.Watch {
		return run.watch()
	}

	diags, err := run.once(c.Paths)
	if err != nil {
		return err
	}
	if err := run.emit(diags); err != nil {
		return err
	}
	if len(diags) > 0 {
		os.Exit(1)
	}
	return nil
}

// checkRun holds the state of one invocation: configuration plus the flags
// that shape file selection and output.
type checkRun struct {
	cmd *CheckCmd
	cfg *config.Config
}

// once builds a fresh tree snapshot, selects the files to check, and resolves
// their links concurrently. Results keep the selection order regardless of
// which worker finished first.
func (r *checkRun) once(paths []string) ([]report.Diagnostic, error) {
	tree, err := wikifs.NewTree(r.cfg.Root)
	if err != nil {
		return nil, err
	}

	table, err := redirects.Load(filepath.Join(r.cfg.Root, r.cfg.RedirectFile))
	if err != nil {
		return nil, fmt.Errorf("load redirect table: %w", err)
	}

	files, err := r.selectFiles(tree, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		slog.Info("Nothing to check")
		return nil, nil
	}
	slog.Debug("Checking files", "count", len(files))

	cache := linkcheck.NewCache()
	engine := linkcheck.NewEngine(tree, table, r.cfg.Site, cache, r.cfg.CaseSensitive)

	results := make([][]report.Diagnostic, len(files))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(max(r.cmd.Jobs, 1))
	for i, file := range files {
		g.Go(func() error {
			a, err := cache.Get(r.cfg.Root, file)
			if err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}
			findings, err := engine.CheckArticle(a)
			if err != nil {
				return fmt.Errorf("check %s: %w", file, err)
			}
			diags := report.FromFindings(a, findings, r.cfg.RedirectFile)
			mu.Lock()
			results[i] = diags
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var diags []report.Diagnostic
	for _, rs := range results {
		diags = append(diags, rs...)
	}
	return diags, nil
}

// selectFiles decides what to check: explicit arguments, everything, or the
// files the working tree has touched.
func (r *checkRun) selectFiles(tree *wikifs.Tree, paths []string) ([]string, error) {
	if len(paths) > 0 {
		var files []string
		for _, p := range paths {
			rel := path.Clean(filepath.ToSlash(p))
			canonical, ok := tree.Canonical(rel)
			if !ok {
				return nil, fmt.Errorf("no such file under %s: %s", r.cfg.Root, rel)
			}
			if !isCheckable(canonical) {
				slog.Debug("Skipping non-article file", "path", canonical)
				continue
			}
			files = append(files, canonical)
		}
		return files, nil
	}

	if r.cmd.All {
		return append(tree.Articles(), tree.NewsPosts()...), nil
	}

	changed, err := gitutil.ChangedFiles(r.cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("listing changed files (use --all to check everything): %w", err)
	}
	var files []string
	for _, p := range changed {
		if isCheckable(p) && tree.Exists(p, true) {
			files = append(files, p)
		}
	}
	return files, nil
}

// isCheckable reports whether a root-relative path is an article file or a
// news post, the only documents the checker parses.
func isCheckable(rel string) bool {
	if strings.HasPrefix(rel, "wiki/") && wikifs.IsArticleFile(path.Base(rel)) {
		return true
	}
	return wikifs.IsNewsPost(rel)
}

func (r *checkRun) emit(diags []report.Diagnostic) error {
	formatter := report.NewFormatter(r.cmd.Format, isColorSupported())
	if err := formatter.Format(os.Stdout, diags); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}

// watch re-checks articles as the working tree changes, until interrupted.
// Every batch gets a fresh tree snapshot and cache so renames and redirect
// edits are picked up.
func (r *checkRun) watch() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watchDirs(watcher, r.cfg.Root); err != nil {
		return err
	}

	// Initial pass over the changed files before settling into the loop.
	if diags, err := r.once(nil); err != nil {
		slog.Error("Check failed", "error", err)
	} else if err := r.emit(diags); err != nil {
		return err
	}

	slog.Info("Watching for changes", "root", r.cfg.Root)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutting down")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				// New article directories need their own watch.
				_ = watcher.Add(event.Name)
				continue
			}
			rel, err := filepath.Rel(r.cfg.Root, event.Name)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if !isCheckable(rel) {
				continue
			}
			slog.Debug("File changed", "path", rel)
			diags, err := r.once([]string{rel})
			if err != nil {
				slog.Error("Check failed", "path", rel, "error", err)
				continue
			}
			if err := r.emit(diags); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}

// watchDirs registers every directory under root, skipping hidden ones.
// fsnotify watches are not recursive.
func watchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != root {
			return filepath.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
