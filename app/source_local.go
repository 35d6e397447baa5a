package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"fsindex/models"
)

// walkResult is the tagged outcome for one filesystem entry: a record to
// upsert, or a typed skip. A record may additionally carry a hash failure,
// in which case it is indexed without a digest.
type walkResult struct {
	rec     *models.FileRecord
	err     *EntryError
	hashErr *EntryError
}

// localSource walks one root directory in parallel. Directories are spread
// over a bounded worker pool through a queue; traversal order across siblings
// is arbitrary. Symbolic links are never followed, so cyclic links cannot
// recurse and every regular file is visited exactly once.
type localSource struct {
	root         string
	excludePaths []string
	numWorkers   int
	computeHash  bool
	resultBuffer int
}

func newLocalSource(root string, excludePaths []string, numWorkers int, computeHash bool) *localSource {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU() * 2
	}
	return &localSource{
		root:         root,
		excludePaths: excludePaths,
		numWorkers:   numWorkers,
		computeHash:  computeHash,
		resultBuffer: 10000,
	}
}

func (l *localSource) Walk(ctx context.Context) <-chan walkResult {
	results := make(chan walkResult, l.resultBuffer)

	go func() {
		defer close(results)
		l.walkParallel(ctx, results)
	}()

	return results
}

func (l *localSource) walkParallel(ctx context.Context, results chan<- walkResult) {
	dirQueue := make(chan string, 100000)
	var wg sync.WaitGroup
	var activeDirs int32

	dirQueue <- l.root
	atomic.AddInt32(&activeDirs, 1)

	for i := 0; i < l.numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.dirWorker(ctx, dirQueue, results, &activeDirs)
		}()
	}

	wg.Wait()
}

func (l *localSource) dirWorker(
	ctx context.Context,
	dirQueue chan string,
	results chan<- walkResult,
	activeDirs *int32,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case dir, ok := <-dirQueue:
			if !ok {
				return
			}
			l.processDirectory(ctx, dir, dirQueue, results, activeDirs)

			if atomic.AddInt32(activeDirs, -1) == 0 {
				// Last pending directory - no worker can enqueue more.
				close(dirQueue)
				return
			}
		}
	}
}

func (l *localSource) processDirectory(
	ctx context.Context,
	dir string,
	dirQueue chan string,
	results chan<- walkResult,
	activeDirs *int32,
) {
	f, err := os.Open(dir)
	if err != nil {
		emit(ctx, results, walkResult{err: classifyEntryError(dir, err)})
		return
	}

	entries, err := f.ReadDir(-1)
	f.Close()
	if err != nil {
		emit(ctx, results, walkResult{err: classifyEntryError(dir, err)})
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		path := filepath.Join(dir, entry.Name())

		if l.excluded(path) {
			emit(ctx, results, walkResult{err: &EntryError{
				Path:   path,
				Reason: models.SkipExcluded,
				Err:    errExcluded,
			}})
			continue
		}

		if entry.IsDir() {
			atomic.AddInt32(activeDirs, 1)
			select {
			case dirQueue <- path:
			default:
				// Queue full - descend synchronously to avoid deadlock.
				atomic.AddInt32(activeDirs, -1)
				l.processDirectory(ctx, path, dirQueue, results, activeDirs)
			}
			continue
		}

		rec, entryErr := extractRecord(path, entry)
		if entryErr != nil {
			emit(ctx, results, walkResult{err: entryErr})
			continue
		}

		res := walkResult{rec: rec}
		if l.computeHash {
			digest, err := hashFile(path)
			if err != nil {
				res.hashErr = &EntryError{Path: path, Reason: models.SkipHashFailed, Err: err}
			} else {
				rec.Hash = &digest
			}
		}
		emit(ctx, results, res)
	}
}

func (l *localSource) excluded(path string) bool {
	for _, exclude := range l.excludePaths {
		if matched, _ := filepath.Match(exclude, path); matched {
			return true
		}
		if strings.HasPrefix(path, exclude) {
			return true
		}
	}
	return false
}

func emit(ctx context.Context, results chan<- walkResult, res walkResult) {
	select {
	case results <- res:
	case <-ctx.Done():
	}
}

// extractRecord builds the metadata record for a single directory entry, or a
// typed skip. Only regular files produce records; symlinks, sockets, devices
// and pipes are skipped as not-a-file.
func extractRecord(path string, entry fs.DirEntry) (*models.FileRecord, *EntryError) {
	if entry.Type()&fs.ModeSymlink != 0 {
		return nil, &EntryError{Path: path, Reason: models.SkipNotAFile, Err: errNotRegular}
	}
	if !entry.Type().IsRegular() {
		return nil, &EntryError{Path: path, Reason: models.SkipNotAFile, Err: errNotRegular}
	}

	info, err := entry.Info()
	if err != nil {
		return nil, classifyEntryError(path, err)
	}

	return &models.FileRecord{
		Path:    path,
		Name:    entry.Name(),
		Ext:     normalizeExt(filepath.Ext(entry.Name())),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// normalizeExt lowercases an extension and strips the leading dot; extension
// equality filters and stored rows share this form.
func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

var (
	errNotRegular = errors.New("not a regular file")
	errExcluded   = errors.New("matches exclude pattern")
)
