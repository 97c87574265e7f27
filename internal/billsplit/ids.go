package billsplit

import "github.com/google/uuid"

// IDGenerator produces a fresh unique identifier on every call.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a function to IDGenerator.
type IDFunc func() string

// NewID calls f.
func (f IDFunc) NewID() string { return f() }

// UUIDGenerator returns random (version 4) UUIDs.
var UUIDGenerator IDGenerator = IDFunc(func() string { return uuid.New().String() })
