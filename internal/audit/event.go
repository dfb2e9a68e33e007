// Package audit forwards structured log records to a remote observability
// sink on a best-effort basis. Delivery never affects the request path:
// malformed events fail fast locally, transport failures are swallowed.
package audit

import (
	"errors"
	"fmt"
	"strings"
)

// Topic is the in-process topic audit events travel on.
const Topic = "audit.log"

// Stacks accepted by the sink.
const (
	StackBackend  = "backend"
	StackFrontend = "frontend"
)

// Levels accepted by the sink.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelFatal = "fatal"
)

// Packages accepted by the sink for the backend stack.
const (
	PackageCache      = "cache"
	PackageController = "controller"
	PackageCronJob    = "cron_job"
	PackageDB         = "db"
	PackageDomain     = "domain"
	PackageHandler    = "handler"
	PackageRepository = "repository"
	PackageRoute      = "route"
)

var (
	validStacks = map[string]bool{
		StackBackend:  true,
		StackFrontend: true,
	}

	validLevels = map[string]bool{
		LevelDebug: true,
		LevelInfo:  true,
		LevelWarn:  true,
		LevelError: true,
		LevelFatal: true,
	}

	validBackendPackages = map[string]bool{
		PackageCache:      true,
		PackageController: true,
		PackageCronJob:    true,
		PackageDB:         true,
		PackageDomain:     true,
		PackageHandler:    true,
		PackageRepository: true,
		PackageRoute:      true,
	}
)

// Event is one structured log record in the sink's wire format.
type Event struct {
	Stack   string `json:"stack"`
	Level   string `json:"level"`
	Package string `json:"package"`
	Message string `json:"message"`
}

// Normalize lowercases the enumerated fields in place.
func (e *Event) Normalize() {
	e.Stack = strings.ToLower(e.Stack)
	e.Level = strings.ToLower(e.Level)
	e.Package = strings.ToLower(e.Package)
}

// Validate checks the event against the sink's enumerations. Validation
// failures are local errors for the producer; they are never sent remotely.
func (e *Event) Validate() error {
	if !validStacks[strings.ToLower(e.Stack)] {
		return fmt.Errorf("invalid stack: %s", e.Stack)
	}

	if !validLevels[strings.ToLower(e.Level)] {
		return fmt.Errorf("invalid level: %s", e.Level)
	}

	if strings.ToLower(e.Stack) == StackBackend && !validBackendPackages[strings.ToLower(e.Package)] {
		return fmt.Errorf("invalid package for backend: %s", e.Package)
	}

	if strings.TrimSpace(e.Message) == "" {
		return errors.New("message must be a non-empty string")
	}

	return nil
}
