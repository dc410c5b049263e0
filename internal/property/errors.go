package property

import (
	"errors"

	"github.com/san-kum/tightbind/internal/model"
	"github.com/san-kum/tightbind/internal/solver"
)

var (
	ErrInvalidWindow = errors.New("property: invalid energy window")

	ErrNotSolved       = solver.ErrNotSolved
	ErrStateOutOfRange = solver.ErrStateOutOfRange
	ErrUnknownBlock    = solver.ErrUnknownBlock
	ErrUnknownIndex    = model.ErrUnknownIndex
)
