package rank

import (
	"fmt"
)

// Samples is an immutable columnar posterior sample set: one column per model
// parameter, one row per draw. Draws are pooled across chains and
// exchangeable; only the empirical distribution matters. Columns are looked
// up by parameter name, so consumers are not coupled to any particular
// sampler's output layout.
//
// Parameter names follow the conventional indexing of the model definition:
// per-team qualities are "a[1]".."a[n]", then "b", "sigma_a", "sigma_y", and
// the optional "home_adv" and "inj_adv".
type Samples struct {
	names []string
	cols  map[string][]float64
	n     int
}

// QualityName returns the parameter name of the latent quality for the team
// at roster index i.
func QualityName(i int) string {
	return fmt.Sprintf("a[%d]", i+1)
}

// NewSamples builds a sample set from named columns. Every column must have
// the same number of draws.
func NewSamples(names []string, cols map[string][]float64) (*Samples, error) {
	if len(names) == 0 {
		return nil, DataShapeError("sample set requires at least one parameter")
	}
	n := -1
	for _, name := range names {
		col, ok := cols[name]
		if !ok {
			return nil, DataShapeError(fmt.Sprintf("no column for parameter %q", name))
		}
		if n < 0 {
			n = len(col)
		} else if len(col) != n {
			return nil, DataShapeError(fmt.Sprintf("column %q has %d draws, expected %d", name, len(col), n))
		}
	}
	s := &Samples{
		names: make([]string, len(names)),
		cols:  make(map[string][]float64, len(names)),
		n:     n,
	}
	copy(s.names, names)
	for _, name := range names {
		col := make([]float64, n)
		copy(col, cols[name])
		s.cols[name] = col
	}
	return s, nil
}

// Len returns the number of draws.
func (s *Samples) Len() int {
	return s.n
}

// Names returns the parameter names in model order.
func (s *Samples) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Has reports whether the sample set contains the named parameter.
func (s *Samples) Has(name string) bool {
	_, ok := s.cols[name]
	return ok
}

// Col returns the draws for one parameter. The returned slice is owned by the
// sample set and must not be modified.
func (s *Samples) Col(name string) ([]float64, error) {
	col, ok := s.cols[name]
	if !ok {
		return nil, DataShapeError(fmt.Sprintf("no column for parameter %q", name))
	}
	return col, nil
}
