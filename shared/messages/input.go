package messages

// MoveIntent is sent from the controlling client to the server whenever the
// move input changes phase. The server keeps only the latest one it receives
// and normalizes X, Y before use. There is no sequence number.
type MoveIntent struct {
	X, Y float64
}

// JumpIntent carries the jump button level (0 released, >0 held).
type JumpIntent struct {
	Level float64
}
