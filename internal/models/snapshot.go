package models

// TableSnapshot is a parsed view of one matrix file. It is rebuilt from disk
// on every read.
type TableSnapshot struct {
	Metadata [][]string `json:"metadata"` // raw rows above the header
	Headers  []string   `json:"headers"`
	Data     [][]string `json:"data"` // rows below the header with a non-blank first cell
}

// EmptySnapshot returns a snapshot whose collections marshal as [] rather than null.
func EmptySnapshot() TableSnapshot {
	return TableSnapshot{
		Metadata: [][]string{},
		Headers:  []string{},
		Data:     [][]string{},
	}
}
