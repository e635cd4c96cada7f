package cache

import "errors"

// ErrPoisoned is returned by every Shared operation after a panic escaped a
// critical section and left the cache in an unknown state. The returned
// error wraps ErrPoisoned and carries the panic value. Call Shared.Reset to
// discard the contents and make the cache usable again.
var ErrPoisoned = errors.New("cache: poisoned by a panic in a previous operation")
