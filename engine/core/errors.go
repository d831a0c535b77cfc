package core

import (
	"errors"
)

var (
	ErrUnboundSymbol  = errors.New("expression still contains unbound symbols")
	ErrDivisionByZero = errors.New("division by zero")
	ErrDomain         = errors.New("value outside the function domain")
	ErrSingularMatrix = errors.New("matrix is singular")
	ErrShape          = errors.New("incompatible matrix shape")
	ErrColumnRange    = errors.New("column index out of range")
	ErrUnknownFormat  = errors.New("unknown report format")
	ErrEngineStage    = errors.New("engine is not in the expected stage")
	ErrWatcherClosed  = errors.New("scene watcher already closed")
)
