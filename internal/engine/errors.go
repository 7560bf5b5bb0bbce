package engine

import "errors"

var (
	// ErrInvalidData is wrapped by every Decode failure: version mismatch,
	// unknown difficulty or cell code, inconsistent counters or a
	// truncated buffer.
	ErrInvalidData = errors.New("engine: invalid data")

	// ErrTickerConsumed is returned by a second Consume of the same shot.
	ErrTickerConsumed = errors.New("engine: ticker already consumed")
)
