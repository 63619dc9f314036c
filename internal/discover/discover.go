// Package discover walks a filesystem scope and yields source files tagged
// with their detected language (SPEC_FULL §6 ambient CLI), adapted from a
// worker-pool file walker: a directory-scanning goroutine feeds a bounded
// path channel, a pool of workers stats and tags each path, and results
// stream back on a single channel so the caller never blocks on the full
// walk completing.
package discover

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/langconfig"
)

// Scope bounds one discovery run.
type Scope struct {
	Path           string
	Include        []string
	Exclude        []string
	FollowSymlinks bool
	MaxDepth       int
	MaxFiles       int
	IncludeTests   bool // when false, each language's DefaultIgnorePatterns also apply
}

// Result is one discovered file, or a terminal error for one path.
type Result struct {
	Path     string
	Info     fs.FileInfo
	Language core.Language
	Error    error
}

// Walker performs parallel directory traversal with extension-based
// language tagging.
type Walker struct {
	workers    int
	bufferSize int
}

// New returns a Walker sized for I/O-bound work. workers <= 0 defaults to
// 2x the available CPUs.
func New(workers int) *Walker {
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	return &Walker{workers: workers, bufferSize: 1000}
}

// Walk discovers files under scope.Path and streams them on the returned
// channel, closing it once the traversal and every worker finish.
func (w *Walker) Walk(ctx context.Context, scope Scope) (<-chan Result, error) {
	if err := w.validateScope(scope); err != nil {
		return nil, err
	}

	results := make(chan Result, w.bufferSize)
	paths := make(chan string, w.bufferSize)

	var wg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go w.worker(ctx, paths, results, scope, &wg)
	}

	go func() {
		defer close(paths)
		processed := 0
		var visited map[string]struct{}
		if scope.FollowSymlinks {
			visited = make(map[string]struct{})
		}
		w.scanDirectory(ctx, scope.Path, scope, paths, 0, &processed, visited)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results, nil
}

func (w *Walker) worker(ctx context.Context, paths <-chan string, results chan<- Result, scope Scope, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-paths:
			if !ok {
				return
			}
			result := w.processFile(path, scope)
			select {
			case <-ctx.Done():
				return
			case results <- result:
			}
		}
	}
}

func (w *Walker) scanDirectory(ctx context.Context, dirPath string, scope Scope, paths chan<- string, depth int, processed *int, visited map[string]struct{}) {
	if scope.MaxFiles > 0 && *processed >= scope.MaxFiles {
		return
	}
	select {
	case <-ctx.Done():
		return
	default:
	}
	if scope.MaxDepth > 0 && depth > scope.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		if w.isExcluded(fullPath, scope.Exclude) {
			continue
		}

		if entry.Type()&os.ModeSymlink != 0 && scope.FollowSymlinks {
			resolved, err := filepath.EvalSymlinks(fullPath)
			if err != nil || resolved == "" {
				continue
			}
			info, err := os.Stat(resolved)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if _, seen := visited[resolved]; seen {
					continue
				}
				visited[resolved] = struct{}{}
				w.scanDirectory(ctx, fullPath, scope, paths, depth+1, processed, visited)
			}
			continue
		}

		if entry.IsDir() {
			w.scanDirectory(ctx, fullPath, scope, paths, depth+1, processed, visited)
			continue
		}

		if w.isIncluded(fullPath, scope.Include) && !w.isDefaultIgnored(fullPath, scope) {
			if scope.MaxFiles > 0 && *processed >= scope.MaxFiles {
				return
			}
			select {
			case <-ctx.Done():
				return
			case paths <- fullPath:
				*processed++
			}
		}
	}
}

func (w *Walker) processFile(path string, scope Scope) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Path: path, Error: err}
	}

	lang := langconfig.ByExtension(strings.ToLower(filepath.Ext(path)))
	if lang == nil {
		return Result{Path: path, Info: info, Error: fmt.Errorf("discover: no registered language for %s", path)}
	}
	return Result{Path: path, Info: info, Language: lang.Name}
}

// isDefaultIgnored reports whether path matches its detected language's
// DefaultIgnorePatterns, when the scope hasn't opted into test files.
func (w *Walker) isDefaultIgnored(path string, scope Scope) bool {
	if scope.IncludeTests {
		return false
	}
	lang := langconfig.ByExtension(strings.ToLower(filepath.Ext(path)))
	if lang == nil {
		return false
	}
	return w.isExcluded(path, lang.DefaultIgnorePatterns)
}

func (w *Walker) isIncluded(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if w.matchPattern(path, p) {
			return true
		}
	}
	return false
}

func (w *Walker) isExcluded(path string, patterns []string) bool {
	for _, p := range patterns {
		if w.matchPattern(path, p) {
			return true
		}
	}
	return false
}

func (w *Walker) matchPattern(path, pattern string) bool {
	if matched, err := doublestar.PathMatch(pattern, path); err == nil && matched {
		return true
	}
	if !strings.Contains(pattern, "/") {
		if matched, err := doublestar.PathMatch(pattern, filepath.Base(path)); err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) validateScope(scope Scope) error {
	if scope.Path == "" {
		return fmt.Errorf("discover: path is required")
	}
	info, err := os.Stat(scope.Path)
	if err != nil {
		return fmt.Errorf("discover: cannot access path %s: %w", scope.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("discover: path %s is not a directory", scope.Path)
	}
	return nil
}
