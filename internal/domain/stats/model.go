package stats

// Measure identifies one statistics source. Each measure contributes its own
// attribute bag per player; bags from different measures are never merged
// destructively.
type Measure string

const (
	MeasureTotals   Measure = "totals"
	MeasureAdvanced Measure = "advanced"
	MeasureDefense  Measure = "defense"
	MeasureClutch   Measure = "clutch"
	MeasureHustle   Measure = "hustle"
)

// AllMeasures lists every measure a full refresh loads.
var AllMeasures = []Measure{
	MeasureTotals,
	MeasureAdvanced,
	MeasureDefense,
	MeasureClutch,
	MeasureHustle,
}

// Bag is the set of named numeric values one source contributes for one
// player. Absent fields read as zero so comparison rows are always
// computable.
type Bag map[string]float64

func (b Bag) Value(key string) float64 {
	if b == nil {
		return 0
	}
	return b[key]
}

// Table holds one measure's bags keyed by the name string the source itself
// uses; reconciliation to canonical names happens at lookup time.
type Table map[string]Bag

// Set is everything one refresh of the statistics source produced.
type Set map[Measure]Table

func (s Set) Table(m Measure) Table {
	if s == nil {
		return nil
	}
	return s[m]
}
