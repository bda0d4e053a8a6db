package main

import (
	"errors"

	"github.com/ideamans/go-register/internal/config"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // Runtime failure (load, save, bad arguments)
	ExitConfigError = 2 // Invalid configuration or backend settings
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	default:
		return ExitError
	}
}
