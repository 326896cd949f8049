package fsm

// GuardBand is a hysteresis band around Threshold. A signal has to cross
// Threshold by more than Margin before a transition fires, so a value that
// hovers near the threshold never flips between the two states.
//
// Inward is the side below Threshold (the more aggressive state when the
// signal is a distance); Outward is the side above it.
type GuardBand struct {
	Threshold float64
	Margin    float64
}

// Validate checks that the band has a positive width.
func (g GuardBand) Validate() error {
	if g.Margin <= 0 {
		return ErrInvalidMargin
	}
	return nil
}

// Inward reports whether v is below the band.
func (g GuardBand) Inward(v float64) bool {
	return v < g.Threshold-g.Margin
}

// Outward reports whether v is above the band.
func (g GuardBand) Outward(v float64) bool {
	return v > g.Threshold+g.Margin
}

// InDeadZone reports whether v lies inside [Threshold-Margin, Threshold+Margin].
func (g GuardBand) InDeadZone(v float64) bool {
	return !g.Inward(v) && !g.Outward(v)
}
