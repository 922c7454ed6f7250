package subgraph

import (
	"errors"
	"fmt"
)

// ErrorKind tells which step of subgraph resolution failed
type ErrorKind int

const (
	MalformedPath ErrorKind = iota + 1
	FileNotFound
	Fs
	InvalidGraphRef
	ServiceReady
	IntrospectionFailed
	FetchRemoteSdl
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedPath:
		return "malformed path"
	case FileNotFound:
		return "file not found"
	case Fs:
		return "filesystem error"
	case InvalidGraphRef:
		return "invalid graph ref"
	case ServiceReady:
		return "service not ready"
	case IntrospectionFailed:
		return "introspection failed"
	case FetchRemoteSdl:
		return "remote sdl fetch failed"
	default:
		return "unknown"
	}
}

// ResolveError is returned by every step of subgraph resolution
type ResolveError struct {
	Kind         ErrorKind
	SubgraphName string
	GraphRef     string
	Path         string
	Err          error
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("subgraph %q failed to resolve: %s", e.SubgraphName, e.Kind)

	switch {
	case e.GraphRef != "":
		msg += fmt.Sprintf(" (graph ref %q)", e.GraphRef)
	case e.Path != "":
		msg += fmt.Sprintf(" (path %q)", e.Path)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is, or wraps, a ResolveError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var re *ResolveError
	if !errors.As(err, &re) {
		return false
	}
	return re.Kind == kind
}

var errEmptyPath = errors.New("path is empty")

var (
	errInvalidUTF8Path = errors.New("path is not valid UTF-8")
	errNulInPath       = errors.New("path contains a NUL byte")
)
