package store

import (
	"symaths/internal/errs"
	"symaths/internal/node"
)

// segmentSize is the number of nodes per arena segment. Segments are
// fixed-size arrays referenced by pointer, so growing the arena (which
// only ever appends a new segment) never moves or invalidates a handle
// into an existing one.
const segmentSize = 512

// maxNodes bounds how large a single Library's arena may grow. It exists
// so AllocationFailure is a reachable, testable outcome rather than a
// purely theoretical one.
const maxNodes = 64 << 20

type segment = [segmentSize]node.Node

// arena is a growable, segmented store of node.Node values. It owns the
// memory for every node a Library interns; handles into it are pointers
// into segment slots, which remain valid for the arena's entire lifetime.
type arena struct {
	segments []*segment
	count    int
}

func (a *arena) alloc() (node.Handle, error) {
	if a.count >= maxNodes {
		return nil, errs.Newf(errs.AllocationFailure, "arena exhausted at %d nodes", maxNodes)
	}
	segIdx := a.count / segmentSize
	slot := a.count % segmentSize
	if segIdx == len(a.segments) {
		a.segments = append(a.segments, &segment{})
	}
	h := &a.segments[segIdx][slot]
	a.count++
	return h, nil
}
