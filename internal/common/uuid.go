package common

import (
	guuid "github.com/google/uuid"
)

type UUID string

func (u UUID) String() string {
	return string(u)
}

func NewUUID() UUID {
	return UUID(guuid.NewString())
}

func ParseUUID(value string) (UUID, error) {
	parsed, err := guuid.Parse(value)
	if err != nil {
		return "", err
	}
	return UUID(parsed.String()), nil
}
