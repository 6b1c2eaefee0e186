package repository

import "errors"

var (
	// ErrNotFound indicates the requested tool or price row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrReservationFailed indicates no unit of the requested tool code is
	// currently available to reserve.
	ErrReservationFailed = errors.New("no available tool unit to reserve")

	// ErrCheckoutFailed indicates no row matched the presented reservation
	// id and tool type: the reservation is stale, mismatched, or already
	// checked out.
	ErrCheckoutFailed = errors.New("no matching live reservation to check out")

	// ErrInvalidState indicates a conditional update affected more than one
	// row. The store holds corrupted inventory data; this is surfaced to
	// the caller, never swallowed.
	ErrInvalidState = errors.New("tool inventory is in an invalid state")
)
