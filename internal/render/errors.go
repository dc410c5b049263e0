package render

import (
	"errors"

	"github.com/san-kum/tightbind/internal/export"
)

var (
	ErrNothingToPlot     = errors.New("render: nothing to plot")
	ErrLengthMismatch    = errors.New("render: x and y lengths differ")
	ErrUnsupportedFormat = export.ErrUnsupportedFormat
)
