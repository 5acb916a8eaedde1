package ai

import (
	"context"
	"errors"
)

//go:generate mockgen -source=client.go -destination=mock.go -package=ai

// ErrUnavailable wraps every failure of the inference backend: transport
// errors, timeouts and empty replies alike.
var ErrUnavailable = errors.New("ai service unavailable")

type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Disabled is used when no API key is configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrUnavailable
}
