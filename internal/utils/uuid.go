package utils

import "github.com/google/uuid"

// UUIDGenerator hands out ids for form steps, fields and uploaded files.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 so ids sort by creation time. A failing clock
// source degrades to UUIDv4.
func (*UUIDGenerator) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// TraceID returns incoming when it is a usable trace id and a fresh random
// one otherwise. Usable ids are at most 64 printable ASCII characters.
func TraceID(incoming string) string {
	if incoming == "" || len(incoming) > 64 {
		return uuid.NewString()
	}
	for i := 0; i < len(incoming); i++ {
		if c := incoming[i]; c <= ' ' || c > '~' {
			return uuid.NewString()
		}
	}
	return incoming
}
