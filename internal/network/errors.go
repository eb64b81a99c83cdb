package network

import "errors"

// stationNotFoundError signals an unknown station id (404 at the HTTP layer).
type stationNotFoundError struct{ id string }

func (e stationNotFoundError) Error() string { return "station not found: " + e.id }

func ErrStationNotFound(id string) error { return stationNotFoundError{id: id} }

// IsStationNotFound reports whether err indicates an unknown station id.
func IsStationNotFound(err error) bool {
	var e stationNotFoundError
	return errors.As(err, &e)
}

type lineNotFoundError struct{ id string }

func (e lineNotFoundError) Error() string { return "line not found: " + e.id }

func ErrLineNotFound(id string) error { return lineNotFoundError{id: id} }

// IsLineNotFound reports whether err indicates an unknown line or route.
func IsLineNotFound(err error) bool {
	var e lineNotFoundError
	return errors.As(err, &e)
}

// duplicateError is returned when a station, line or route id is already taken.
type duplicateError struct{ kind, id string }

func (e duplicateError) Error() string { return "duplicate " + e.kind + ": " + e.id }

// IsDuplicate reports whether err indicates an id collision.
func IsDuplicate(err error) bool {
	var e duplicateError
	return errors.As(err, &e)
}

// notAdjacentError is returned by SetTravelTime when no route connects the stations directly.
type notAdjacentError struct{ a, b string }

func (e notAdjacentError) Error() string { return "stations not adjacent: " + e.a + ", " + e.b }

func IsNotAdjacent(err error) bool {
	var e notAdjacentError
	return errors.As(err, &e)
}

// invalidEventError reports a passenger event that cannot be decoded or applied.
type invalidEventError struct{ msg string }

func (e invalidEventError) Error() string { return "invalid passenger event: " + e.msg }

func IsInvalidEvent(err error) bool {
	var e invalidEventError
	return errors.As(err, &e)
}
