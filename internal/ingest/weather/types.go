package weather

// advisoryResponse is the feed's top-level payload.
type advisoryResponse struct {
	Advisories []advisory `json:"advisories"`
}

// advisory is one alert as the feed reports it.
type advisory struct {
	ID       string `json:"id"`
	Event    string `json:"event"`
	Headline string `json:"headline"`
	Details  string `json:"details"`
	Severity string `json:"severity"`
	Onset    string `json:"onset"`
	Expires  string `json:"expires"`

	Areas   []advisoryArea `json:"areas"`
	Actions []string       `json:"recommended_actions"`
}

// advisoryArea names an affected zone.
type advisoryArea struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Impact string `json:"impact"`
}
