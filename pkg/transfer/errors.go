package transfer

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// 🚫 ErrNoFiles means enumeration found nothing to transfer. Fatal but
	// not a bug: an empty card is an operator-level condition.
	ErrNoFiles = errors.Base("no supported image files found on the source volume")

	// 🚫 ErrNoDestinations means the destination set was empty at run start
	ErrNoDestinations = errors.Base("no destinations selected for transfer")
)

// ❌ ProvisionError is a remote directory creation failure for a
// non-collision reason. Always fatal to the run.
type ProvisionError struct {
	Share string
	Path  string
	Err   error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("creating directory %q on share %q: %v", e.Path, e.Share, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// ❌ ShipError is a remote file copy failure. Always fatal to the run.
type ShipError struct {
	Share string
	Path  string
	Local string
	Err   error
}

func (e *ShipError) Error() string {
	return fmt.Sprintf("shipping %q to %q on share %q: %v", e.Local, e.Path, e.Share, e.Err)
}

func (e *ShipError) Unwrap() error { return e.Err }
