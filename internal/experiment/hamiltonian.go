package experiment

import (
	"context"
	"strconv"
	"strings"

	"github.com/san-kum/tightbind/internal/model"
)

// HamiltonianExample prints the dense Hamiltonian of a small square lattice.
type HamiltonianExample struct{}

func (HamiltonianExample) Name() string { return "hamiltonian" }

func (HamiltonianExample) Description() string {
	return "dense Hamiltonian of a small square lattice"
}

func (ex HamiltonianExample) Run(ctx context.Context, env Env) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, stageError(ex.Name(), "model", err)
	}
	cfg := env.config().Hamiltonian
	res := newResult(ex.Name())
	t := cfg.Hopping

	b, err := model.NewLatticeBuilder([]int{cfg.SizeX, cfg.SizeY},
		model.WithOnSite(complex(4*t, 0)),
		model.WithHopping(complex(t, 0)),
	)
	if err != nil {
		return nil, stageError(ex.Name(), "model", err)
	}
	m, err := b.Build()
	if err != nil {
		return nil, stageError(ex.Name(), "model", err)
	}
	env.log().Info("model.constructed", "example", ex.Name(), "basis_size", m.BasisSize())

	h, err := m.Hamiltonian()
	if err != nil {
		return nil, stageError(ex.Name(), "hamiltonian", err)
	}
	n := m.BasisSize()
	data := h.Data()
	for row := 0; row < n; row++ {
		var sb strings.Builder
		for col := 0; col < n; col++ {
			sb.WriteString(strconv.FormatFloat(real(data[row*n+col]), 'g', -1, 64))
			sb.WriteByte('\t')
		}
		res.printf(env, "%s", sb.String())
	}
	res.Scalars["basis_size"] = float64(n)
	return res, nil
}
