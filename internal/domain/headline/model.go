package headline

// Headline is one ticker entry. Time is a relative display string ("5m",
// "2h"); IsNew flags entries fresh enough for a badge.
type Headline struct {
	Text  string `json:"text"`
	Time  string `json:"time"`
	IsNew bool   `json:"isNew"`
}
