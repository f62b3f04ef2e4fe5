package logger

import (
	"bytes"
	"path"
	"runtime"
	"strconv"
	"strings"
)

/*
PackageNameResolver finds the name of the package the logger is created in.
The name is relative to the BasePackage, ie for the calculator package the
name is "txsystem/multisend".
*/
type PackageNameResolver struct {
	BasePackage string
	// Skip is the number of stack frames between the resolver and the code
	// creating the logger, defaults to 2 (the caller of the caller).
	Skip int
}

func (r *PackageNameResolver) PackageName() string {
	skip := r.Skip
	if skip == 0 {
		skip = 2
	}
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return r.packageOf(runtime.FuncForPC(pc).Name())
}

// packageOf extracts package path from fully qualified function name, ie
// "github.com/org/repo/pkg/sub.(*T).Method" -> "pkg/sub" when base is "org/repo".
func (r *PackageNameResolver) packageOf(funcName string) string {
	dir, file := path.Split(funcName)
	if i := strings.IndexByte(file, '.'); i >= 0 {
		file = file[:i]
	}
	pkg := dir + file
	if _, after, found := strings.Cut(pkg, r.BasePackage); found && r.BasePackage != "" {
		pkg = after
	}
	return strings.Trim(pkg, "/")
}

// goroutineID parses the id from the header of the current goroutine's stack trace.
func goroutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// formatCallerShort keeps the file name and its parent directory of the caller.
func formatCallerShort(i interface{}) string {
	c, ok := i.(string)
	if !ok || c == "" {
		return ""
	}
	dir, file := path.Split(c)
	return path.Join(path.Base(dir), file)
}
