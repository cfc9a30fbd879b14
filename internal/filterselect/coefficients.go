package filterselect

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Term is one (feature-power-vector, coefficient) pair of a frozen
// polynomial target, evaluated over the four quality features in the fixed
// order [BlurScore, Contrast, Noise, EdgeDensity] (spec.md §4.2, §6).
type Term struct {
	Powers      [4]int  `yaml:"powers"`
	Coefficient float64 `yaml:"coefficient"`
}

// Target is one predicted filter parameter: an ordered sum of Terms,
// clamped to [Min, Max] after evaluation.
type Target struct {
	Terms []Term  `yaml:"terms"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

// Evaluate computes the polynomial for the given features and clamps the
// result to [Min, Max].
func (t Target) Evaluate(features [4]float64) float64 {
	var sum float64
	for _, term := range t.Terms {
		v := term.Coefficient
		for i, p := range term.Powers {
			if p == 0 {
				continue
			}
			v *= pow(features[i], p)
		}
		sum += v
	}
	if sum < t.Min {
		return t.Min
	}
	if sum > t.Max {
		return t.Max
	}
	return sum
}

func pow(base float64, exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

// CoefficientTable is the five named targets documented in spec.md §6:
// "five named targets, each mapping to an ordered list of
// (feature-power-vector, coefficient) pairs and a clamp range."
type CoefficientTable struct {
	Contrast       Target `yaml:"contrast"`
	Brightness     Target `yaml:"brightness"`
	Sharpness      Target `yaml:"sharpness"`
	UnsharpRadius  Target `yaml:"unsharp_radius"`
	UnsharpPercent Target `yaml:"unsharp_percent"`
}

// LoadCoefficientTable deserializes a CoefficientTable from a YAML file at
// startup, per spec.md §6 ("Deserialized at startup").
func LoadCoefficientTable(path string) (CoefficientTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CoefficientTable{}, fmt.Errorf("filterselect: reading coefficient file %s: %w", path, err)
	}
	var table CoefficientTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return CoefficientTable{}, fmt.Errorf("filterselect: parsing coefficient file %s: %w", path, err)
	}
	return table, nil
}

// DefaultCoefficientTable returns a conservative linear table exercised when
// no coefficient file is configured, using the clamp ranges recorded in
// DESIGN.md's Open Question decisions.
func DefaultCoefficientTable() CoefficientTable {
	linear := func(weights [4]float64, bias, min, max float64) Target {
		terms := make([]Term, 0, 5)
		terms = append(terms, Term{Powers: [4]int{0, 0, 0, 0}, Coefficient: bias})
		for i, w := range weights {
			if w == 0 {
				continue
			}
			var powers [4]int
			powers[i] = 1
			terms = append(terms, Term{Powers: powers, Coefficient: w})
		}
		return Target{Terms: terms, Min: min, Max: max}
	}

	return CoefficientTable{
		Contrast:       linear([4]float64{-0.5, 0.2, 0.3, 0}, 1.6, 0.8, 2.0),
		Brightness:     linear([4]float64{-0.2, 0, 0.1, 0}, 1.1, 0.8, 1.5),
		Sharpness:      linear([4]float64{-1.0, 0, 0.5, 0.3}, 2.0, 0.5, 3.0),
		UnsharpRadius:  linear([4]float64{-0.8, 0, 0, 0.2}, 2.0, 0.5, 4.0),
		UnsharpPercent: linear([4]float64{-60, 0, 20, 10}, 150, 50, 200),
	}
}
