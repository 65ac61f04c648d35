package bvh

import "fmt"

// MalformedFileError reports a structural violation in a BVH file.
type MalformedFileError struct {
	Path string
	Line int
	Msg  string
}

func (e *MalformedFileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("bvh: %s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("bvh: line %d: %s", e.Line, e.Msg)
}

// TruncatedMotionError reports a motion section with fewer data rows than
// the declared frame count.
type TruncatedMotionError struct {
	Expected int
	Found    int
}

func (e *TruncatedMotionError) Error() string {
	return fmt.Sprintf("bvh: motion truncated: expected %d frames, found %d", e.Expected, e.Found)
}

// IOError wraps a failure to read the underlying file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("bvh: read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
