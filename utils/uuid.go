package utils

import (
	"strconv"

	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// SequentialID returns the identifier assigned to the next record of a
// collection that currently holds count records.
func SequentialID(count int) string {
	return strconv.Itoa(count + 1)
}
