package modeling

import (
	"errors"
	"fmt"
)

// Domain errors for model construction.
var (
	// ErrEmptyName indicates a feature name that is empty or contains a path separator.
	ErrEmptyName = errors.New("modeling: invalid feature name")

	// ErrDuplicateName indicates a child name already used under the same parent.
	ErrDuplicateName = errors.New("modeling: name already in use")

	// ErrNotFound indicates a path or child name that does not resolve.
	ErrNotFound = errors.New("modeling: feature not found")

	// ErrWrongKind indicates a feature is not of the kind requested.
	ErrWrongKind = errors.New("modeling: feature is not of the requested kind")

	ErrUnplaced         = errors.New("modeling: feature has no placement")
	ErrPlacementKind    = errors.New("modeling: placement value does not fit feature")
	ErrPlacementCycle   = errors.New("modeling: placement depends on itself")
	ErrForeignPlacement = errors.New("modeling: placement refers to a feature of another model")
	ErrBadExpression    = errors.New("modeling: invalid placement expression")

	// ErrReadOnly indicates an attempt to place a derived measure.
	ErrReadOnly = errors.New("modeling: derived measure cannot be placed")

	ErrNoEnclosingBody = errors.New("modeling: no enclosing body")
	ErrNegativeMass    = errors.New("modeling: mass must be non-negative")

	ErrGroundExists        = errors.New("modeling: ground body already added")
	ErrNoGround            = errors.New("modeling: multibody has no ground body")
	ErrInvalidJointType    = errors.New("modeling: joint type not allowed here")
	ErrUnresolvedPlacement = errors.New("modeling: joint placement does not resolve to a body of this multibody")
	ErrSelfJoint           = errors.New("modeling: joint connects a body to itself")
	ErrAlreadyConnected    = errors.New("modeling: joint already connected")

	ErrInvalidTopology = errors.New("modeling: invalid topology")
)

// FeatureError wraps an error with the operation and feature path it came from.
type FeatureError struct {
	Op   string
	Path string
	Err  error
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FeatureError) Unwrap() error {
	return e.Err
}

func featureErr(op string, s Subsystem, err error) error {
	return &FeatureError{Op: op, Path: s.Path(), Err: err}
}

// TopologyError reports why a multibody's joints do not form a tree rooted at ground.
type TopologyError struct {
	Multibody string
	Msg       string
}

func (e *TopologyError) Error() string {
	if e.Msg == "" {
		return ErrInvalidTopology.Error()
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidTopology.Error(), e.Multibody, e.Msg)
}

func (e *TopologyError) Unwrap() error { return ErrInvalidTopology }

func topologyf(mb string, format string, args ...any) error {
	return &TopologyError{Multibody: mb, Msg: fmt.Sprintf(format, args...)}
}
