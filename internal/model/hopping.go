package model

import (
	"fmt"
	"math/cmplx"

	"github.com/san-kum/tightbind/internal/index"
)

// AmplitudeFunc computes an amplitude from the site pair. It is evaluated
// when the Hamiltonian is assembled, so it must carry its parameters itself.
type AmplitudeFunc func(to, from index.Index) complex128

// HoppingAmplitude is the term amplitude * c†(To) c(From).
type HoppingAmplitude struct {
	To   index.Index
	From index.Index

	value complex128
	fn    AmplitudeFunc
}

func NewHopping(amplitude complex128, to, from index.Index) HoppingAmplitude {
	return HoppingAmplitude{To: to.Clone(), From: from.Clone(), value: amplitude}
}

func NewHoppingFunc(fn AmplitudeFunc, to, from index.Index) HoppingAmplitude {
	return HoppingAmplitude{To: to.Clone(), From: from.Clone(), fn: fn}
}

func (h HoppingAmplitude) Amplitude() complex128 {
	if h.fn != nil {
		return h.fn(h.To, h.From)
	}
	return h.value
}

func (h HoppingAmplitude) IsCallback() bool { return h.fn != nil }

// HermitianConjugate swaps the indices and conjugates the amplitude.
func (h HoppingAmplitude) HermitianConjugate() HoppingAmplitude {
	hc := HoppingAmplitude{To: h.From.Clone(), From: h.To.Clone(), value: cmplx.Conj(h.value)}
	if fn := h.fn; fn != nil {
		hc.fn = func(to, from index.Index) complex128 {
			return cmplx.Conj(fn(from, to))
		}
	}
	return hc
}

func (h HoppingAmplitude) String() string {
	if h.fn != nil {
		return fmt.Sprintf("f(%v, %v) %v <- %v", h.To, h.From, h.To, h.From)
	}
	return fmt.Sprintf("%v %v <- %v", h.value, h.To, h.From)
}
