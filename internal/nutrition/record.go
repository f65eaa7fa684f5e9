// Package nutrition converts per-serving nutrition facts into amount-adjusted,
// combinable meal records.
package nutrition

// DefaultAmountGrams is the reference serving size used when no valid amount
// is available and for records built from free-text lookups.
const DefaultAmountGrams = 100.0

// Macros holds the macronutrient breakdown of a Record in grams. Fibre and
// Water are optional; nil means the value is unknown, not zero.
type Macros struct {
	Protein float64  `json:"protein"`
	Carbs   float64  `json:"carbs"`
	Fat     float64  `json:"fat"`
	Fibre   *float64 `json:"fibre,omitempty"`
	Water   *float64 `json:"water,omitempty"`
}

// Record is the nutrition content of one food at a specific serving size.
// Every numeric field describes the same AmountGrams.
type Record struct {
	Food        string            `json:"food"`
	AmountGrams float64           `json:"amount_grams"`
	Calories    float64           `json:"calories"`
	Macros      Macros            `json:"macros"`
	Micros      map[string]string `json:"micros,omitempty"`
}

// FibreOrZero returns the fibre value, treating unknown as zero for display.
func (m Macros) FibreOrZero() float64 {
	if m.Fibre == nil {
		return 0
	}
	return *m.Fibre
}

// WaterOrZero returns the water value, treating unknown as zero for display.
func (m Macros) WaterOrZero() float64 {
	if m.Water == nil {
		return 0
	}
	return *m.Water
}

// Float returns a pointer to v. It is a convenience for populating optional
// macro fields.
func Float(v float64) *float64 {
	return &v
}

// Clone returns a deep copy of the record so callers can modify the result
// without affecting the original.
func (r Record) Clone() Record {
	out := r
	if r.Macros.Fibre != nil {
		out.Macros.Fibre = Float(*r.Macros.Fibre)
	}
	if r.Macros.Water != nil {
		out.Macros.Water = Float(*r.Macros.Water)
	}
	out.Micros = cloneMicros(r.Micros)
	return out
}

func cloneMicros(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
