package domain

// ProjectSummary identifies the project an estimate belongs to and carries
// the dimensions used for per-unit cost reporting.
type ProjectSummary struct {
	ID            string
	Name          string
	Address       string
	Client        string
	SquareFootage float64 // 0 when unknown
	LinearFootage float64 // 0 when unknown
	ProjectType   string  // residential, commercial, ...
	DurationDays  int
}
