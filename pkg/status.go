package pkg

// GameStatus reports whether a catalog entry's fragments are intact on disk
type GameStatus string

const (
	StatusOK       GameStatus = "OK"
	StatusNoData   GameStatus = "NO DATA"   // no fragment found for the entry
	StatusLostData GameStatus = "LOST DATA" // fragment count differs from the record
)

func (s GameStatus) String() string {
	return string(s)
}

// IsDegraded reports whether the entry lost some or all of its fragments
func (s GameStatus) IsDegraded() bool {
	return s != StatusOK
}
