package domain

// CandidateRecord is a raw, source-specific record as a connector or the
// dataset emits it. It is discarded once normalized (or rejected).
type CandidateRecord struct {
	Name        string
	Industry    string
	Location    string // pre-composed; empty if the source only has parts
	City        string
	State       string
	CountryCode string
	Phone       string
	Rating      *float64
	Snippet     string
	WebsiteURL  string
	YearFounded *int
	SizeText    string // "11-50", "500+", "42", or empty
	Source      string // connector name, e.g. "yellowpages"
}

// Lead is the canonical business record flowing through dedup, scoring and
// ranking. Optional fields are pointers so "missing" never collides with
// zero values. Leads live for one aggregation run only.
type Lead struct {
	Name        string   `json:"name"`
	Industry    string   `json:"industry"`
	Location    string   `json:"location"`
	Phone       *string  `json:"phone"`
	Rating      *float64 `json:"rating"` // [0,5]
	Snippet     *string  `json:"snippet"`
	YearFounded *int     `json:"year_founded"`
	Size        *int     `json:"size"` // midpoint of a size range, >= 0
	Score       float64  `json:"score"` // [0,100], written once by the scorer
	Source      string   `json:"source"`
}

// SizeRange is a preferred employee-count window. High may be MaxInt for
// open-ended ranges ("501+").
type SizeRange struct {
	Low  int
	High int
}

func (r SizeRange) Contains(n int) bool { return n >= r.Low && n <= r.High }
