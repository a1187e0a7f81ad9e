package renderer

import (
	"bytes"
	"os"
	"runtime"
	"strconv"
)

// osPid is cached once; chrome-trace's "pid" field never changes during a
// process's lifetime.
var osPid = os.Getpid()

// goroutineID returns a best-effort per-goroutine identifier for the
// trace ring's "tid" field. Go does not expose the OS thread a goroutine
// happens to run on — work is multiplexed across an OS thread pool by
// the runtime scheduler — so this parses the goroutine ID out of a
// runtime.Stack trace, a well-worn (if unofficial) trick for giving
// trace output a stable-enough "tid" column per goroutine.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// Stack traces start with "goroutine <id> [running]:".
	b := buf[:n]
	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return 0
	}
	b = b[len(prefix):]
	end := bytes.IndexByte(b, ' ')
	if end < 0 {
		return 0
	}
	id, err := strconv.ParseInt(string(b[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
