package domain

import "errors"

var (
	// ErrNoData marks a fetch that succeeded at the transport level but
	// returned an empty or malformed series. Treated like a transient
	// fetch failure: the prior snapshot is retained.
	ErrNoData = errors.New("no data returned")

	// ErrSourceOutage marks a cycle in which no entity could be fetched
	// at all. Surfaced once as a visible warning.
	ErrSourceOutage = errors.New("upstream source unavailable")
)
