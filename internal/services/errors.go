package services

import (
	"errors"

	"github.com/SAP-F-2025/examprep-service/internal/generation"
)

var (
	ErrUnauthorized    = errors.New("invalid credentials")
	ErrTaskNotFound    = errors.New("task not found")
	ErrResultsNotFound = errors.New("no exam history found")
	ErrInternal        = errors.New("internal server error")

	// ErrUpstreamExhausted never leaves a stream as an error value; streams
	// carry it in-band as an error fragment.
	ErrUpstreamExhausted = generation.ErrModelsExhausted

	ErrExtractionTimeout = errors.New("document extraction timed out")
	ErrWebFetch          = errors.New("failed to read URL")
)
