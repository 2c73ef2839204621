package sim

// TransitLine is a single public transport line with a fixed capacity and
// a rider counter that is reset every commute cycle. All operations are
// total; there are no error conditions.
type TransitLine struct {
	name     string
	capacity int
	riders   int
}

// NewTransitLine creates a line with the given name and capacity.
func NewTransitLine(name string, capacity int) *TransitLine {
	return &TransitLine{name: name, capacity: capacity}
}

// Name returns the line's display name.
func (l *TransitLine) Name() string { return l.name }

// Capacity returns the fixed capacity.
func (l *TransitLine) Capacity() int { return l.capacity }

// Riders returns the current rider count.
func (l *TransitLine) Riders() int { return l.riders }

// CrowdingLevel returns riders/capacity clamped to [0,1]. A capacity of
// zero is a defined degenerate case yielding 0.0 rather than a division
// error.
func (l *TransitLine) CrowdingLevel() float64 {
	if l.capacity == 0 {
		return 0.0
	}
	level := float64(l.riders) / float64(l.capacity)
	if level > 1.0 {
		return 1.0
	}
	return level
}

// AddRider increments the rider counter.
func (l *TransitLine) AddRider() { l.riders++ }

// RemoveRider decrements the rider counter, floored at zero.
func (l *TransitLine) RemoveRider() {
	if l.riders > 0 {
		l.riders--
	}
}

// SetRiders sets the rider counter directly. Used by the simulator when
// boarding the whole PT-usual population at once.
func (l *TransitLine) SetRiders(n int) {
	if n < 0 {
		n = 0
	}
	l.riders = n
}

// ResetRiders zeroes the rider counter at the start of a cycle.
func (l *TransitLine) ResetRiders() { l.riders = 0 }
