package dto

type LineInput struct {
	Session string
	Code    string
	Count   int
}

// LineState is a basket line after a change. Reserved can be lower than
// Count when stock ran short.
type LineState struct {
	Code     string `json:"code"`
	Count    int    `json:"count"`
	Reserved int    `json:"reserved"`
}
