package dto

// ImportRowError reports a single CSV row that could not be imported.
type ImportRowError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// ImportSummary is the result of a CSV import run.
type ImportSummary struct {
	Imported int              `json:"imported"`
	Failed   []ImportRowError `json:"failed,omitempty"`
}
