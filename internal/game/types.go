package game

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// Alpha returns the message opacity for its remaining time.
func (m Message) Alpha() uint8 {
	if m.MaxTime <= 0 || m.TimeLeft <= 0 {
		return 0
	}
	if m.TimeLeft >= m.MaxTime {
		return 255
	}
	return uint8(255 * (m.TimeLeft / m.MaxTime))
}
