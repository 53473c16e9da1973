package cone

import (
	"math/big"

	"github.com/nmz-go/fullcone/internal/ring"
)

// evaluateTriangulation runs the simplex evaluator over every stored
// simplex (spec.md 4.2, component B's caller side), accumulating the
// multiplicity, the Hilbert basis candidate pool and the Hilbert
// series numerator. Evaluation is embarrassingly parallel across
// simplices; partial results are merged under a single mutex.
func (fc *FullCone) evaluateTriangulation() error {
	n := len(fc.Triangulation)
	if n == 0 {
		return nil
	}

	multiplicity := new(big.Rat)
	var candidates []ring.Vector
	series := make(map[int64]*big.Int)

	var mu = &fc.mu
	var firstErr error

	parallelFor(n, func(i, _ int) {
		s := &fc.Triangulation[i]
		res, err := fc.Evaluator.Evaluate(s, fc.Generators, fc.Grading)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		if res.MultiplicitySum != nil {
			multiplicity.Add(multiplicity, res.MultiplicitySum)
		}
		candidates = append(candidates, res.Candidates...)
		for deg, count := range res.SeriesByDegree {
			if series[deg] == nil {
				series[deg] = new(big.Int)
			}
			series[deg].Add(series[deg], count)
		}
	})

	if firstErr != nil {
		return firstErr
	}

	fc.MultiplicityVal = multiplicity
	fc.Candidates = append(fc.Candidates, candidates...)
	fc.HilbertSeriesVal = series

	if fc.Tasks.ComputeDegree1Points {
		// Parallelepiped candidates never include a simplex's own
		// generators, so degree-1 generators are added here as well.
		var deg1 []ring.Vector
		seen := make(map[string]bool)
		for _, c := range append(append([]ring.Vector{}, fc.Generators...), fc.Candidates...) {
			if d := fc.degreeOf(c); d != nil && d.Cmp(big.NewInt(1)) == 0 && !seen[vectorKey(c)] {
				seen[vectorKey(c)] = true
				deg1 = append(deg1, c)
			}
		}
		fc.Degree1Val = deg1
	}

	return nil
}
