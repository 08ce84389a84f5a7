package domain

import "math"

// Correlation returns the Pearson coefficient between left and right over the
// pairs matched by country and year, using population standard deviations.
// It returns 0 with fewer than two pairs or when either side has no variance,
// so a heatmap cell renders neutral instead of NaN.
func Correlation(left, right []Record) float64 {
	return PearsonPairs(Pairs(left, right))
}

// PearsonPairs computes the coefficient for already-joined pairs.
func PearsonPairs(pairs []Pair) float64 {
	n := float64(len(pairs))
	if len(pairs) < 2 {
		return 0
	}

	var sumX, sumY float64
	for _, p := range pairs {
		sumX += p.Left
		sumY += p.Right
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for _, p := range pairs {
		dx, dy := p.Left-meanX, p.Right-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	cov /= n
	sdX := math.Sqrt(varX / n)
	sdY := math.Sqrt(varY / n)
	if sdX == 0 || sdY == 0 {
		return 0
	}

	r := cov / (sdX * sdY)
	if math.IsNaN(r) {
		return 0
	}
	// Clamp rounding drift so self-correlation never reads 1.0000000002.
	return math.Max(-1, math.Min(1, r))
}

// Series is a labeled dataset for the correlation matrix.
type Series struct {
	Dataset DatasetType
	Records []Record
}

// Matrix is a square correlation matrix. Values[i][j] correlates Labels[i]
// (left) with Labels[j] (right).
type Matrix struct {
	Labels   []string      `json:"labels"`
	Datasets []DatasetType `json:"datasets"`
	Values   [][]float64   `json:"values"`
}

// AllZero reports whether every cell is the neutral 0, meaning no dataset pair
// had enough shared observations.
func (m Matrix) AllZero() bool {
	for _, row := range m.Values {
		for _, v := range row {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

// CorrelationMatrix correlates every ordered pair of series after applying the
// selection's year and country filters to each.
func CorrelationMatrix(series []Series, sel Selection) Matrix {
	filtered := make([][]Record, len(series))
	indexes := make([]Index, len(series))
	m := Matrix{
		Labels:   make([]string, len(series)),
		Datasets: make([]DatasetType, len(series)),
		Values:   make([][]float64, len(series)),
	}
	for i, s := range series {
		filtered[i] = sel.Filter(s.Records)
		indexes[i] = BuildIndex(filtered[i])
		m.Labels[i] = s.Dataset.Info().Name
		m.Datasets[i] = s.Dataset
	}
	for i := range series {
		m.Values[i] = make([]float64, len(series))
		for j := range series {
			pairs := pairWith(filtered[i], indexes[j], func(_, _ float64) bool { return true })
			m.Values[i][j] = PearsonPairs(pairs)
		}
	}
	return m
}
