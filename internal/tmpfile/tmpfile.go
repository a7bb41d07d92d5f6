// Package tmpfile manages the uniquely named temporary files that one
// bridge invocation owns for its lifetime.
package tmpfile

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"
)

// seq distinguishes concurrent callers within the process, standing in
// for a thread identity.
var seq atomic.Uint64

// Dir resolves the temporary-directory root by probing TMPDIR, TEMP
// and TMP in that order, falling back to the platform default.
func Dir() string {
	for _, key := range []string{"TMPDIR", "TEMP", "TMP"} {
		if dir := os.Getenv(key); dir != "" {
			return dir
		}
	}
	if runtime.GOOS == "windows" {
		return `C:\Temp`
	}
	return "/tmp"
}

// UniquePath returns a path under Dir() that is collision-resistant
// across concurrent callers and across processes: the name combines a
// caller identity (pid plus per-process sequence), a wall-clock
// timestamp and a random 64-bit value. No existence check is made; an
// unopenable path surfaces later, at first use.
func UniquePath(prefix, ext string) string {
	id := uint64(os.Getpid())<<32 | seq.Add(1)
	name := fmt.Sprintf("%s_%d_%d_%d%s", prefix, id, time.Now().UnixNano(), rand.Uint64(), ext)
	return filepath.Join(Dir(), name)
}

// File owns one temporary path for the duration of a pipeline run.
// The zero value owns nothing and removes nothing.
type File struct {
	path string
}

// New takes ownership of path.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the owned path, or "" after Remove.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Remove deletes the owned path, best effort: a missing or
// already-deleted file is not an error, and no failure here may mask
// the pipeline's primary result. Safe to call more than once; meant
// for defer.
func (f *File) Remove() {
	if f == nil || f.path == "" {
		return
	}
	_ = os.Remove(f.path)
	f.path = ""
}
