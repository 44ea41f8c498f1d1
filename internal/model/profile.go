package model

// Profile is the fixed eight-slot structured summary of a user's investment
// preferences collected during the interview. The halal filter is an extra
// flag outside the eight slots and defaults to false.
type Profile struct {
	Goal          string `json:"goal"`
	Horizon       string `json:"horizon"`
	Budget        string `json:"budget"`
	RiskTolerance string `json:"risk_tolerance"`
	Liquidity     string `json:"liquidity"`
	Currency      string `json:"currency"`
	Experience    string `json:"experience"`
	Restrictions  string `json:"restrictions"`
	HalalFilter   bool   `json:"halal_filter"`
}
