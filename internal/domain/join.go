package domain

// Key identifies an observation across datasets.
type Key struct {
	CountryCode string
	Year        int
}

// KeyOf returns the join key of r.
func KeyOf(r Record) Key {
	return Key{CountryCode: r.CountryCode, Year: r.Year}
}

// Index maps join keys to one value per key. Duplicate keys are averaged, so
// the value looked up for a key never depends on input order.
type Index struct {
	values map[Key]float64
}

// BuildIndex indexes the usable values of records by (country code, year).
func BuildIndex(records []Record) Index {
	type acc struct {
		sum float64
		n   int
	}
	accs := make(map[Key]*acc, len(records))
	for _, r := range records {
		if !r.Valid() {
			continue
		}
		k := KeyOf(r)
		a, ok := accs[k]
		if !ok {
			a = &acc{}
			accs[k] = a
		}
		a.sum += r.Value
		a.n++
	}
	values := make(map[Key]float64, len(accs))
	for k, a := range accs {
		values[k] = a.sum / float64(a.n)
	}
	return Index{values: values}
}

// Lookup returns the value for k.
func (ix Index) Lookup(k Key) (float64, bool) {
	v, ok := ix.values[k]
	return v, ok
}

// Len returns the number of distinct keys.
func (ix Index) Len() int { return len(ix.values) }

// Pair is a left observation matched with a right observation of the same
// country and year.
type Pair struct {
	Left        float64 `json:"x"`
	Right       float64 `json:"y"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Year        int     `json:"year"`
}

// Join pairs each usable left record with the right value for the same country
// code and year. Pairs whose right value is zero or negative are dropped, as
// the scatter view plots ratios and log scales.
func Join(left, right []Record) []Pair {
	return pairWith(left, BuildIndex(right), func(_, r float64) bool { return r > 0 })
}

// Pairs is Join without the positive-right rule; correlation uses it.
func Pairs(left, right []Record) []Pair {
	return pairWith(left, BuildIndex(right), func(_, _ float64) bool { return true })
}

// JoinIndex is Join against a prebuilt right-hand index.
func JoinIndex(left []Record, right Index) []Pair {
	return pairWith(left, right, func(_, r float64) bool { return r > 0 })
}

func pairWith(left []Record, right Index, keep func(l, r float64) bool) []Pair {
	out := make([]Pair, 0, len(left))
	for _, l := range left {
		if !l.Valid() {
			continue
		}
		r, ok := right.Lookup(KeyOf(l))
		if !ok || !keep(l.Value, r) {
			continue
		}
		out = append(out, Pair{
			Left:        l.Value,
			Right:       r,
			Country:     l.Country,
			CountryCode: l.CountryCode,
			Year:        l.Year,
		})
	}
	return out
}
