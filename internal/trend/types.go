package trend

// Method identifies which regime produced a trend signal.
type Method int

const (
	// MethodSlope fits a least-squares line over the most recent sessions.
	MethodSlope Method = iota
	// MethodWindow compares the mean of the latest window to the one before.
	MethodWindow
)

// String returns a human-readable representation of the method.
func (m Method) String() string {
	switch m {
	case MethodWindow:
		return "window"
	default:
		return "slope"
	}
}

// Signal is a magnitude plus direction trend indicator. Value is the
// absolute raw change rounded to one decimal.
type Signal struct {
	Value      float64 `json:"value"`
	IsPositive bool    `json:"isPositive"`

	Raw    float64 `json:"-"`
	Method Method  `json:"-"`
}

// Direction returns "up" for a non-negative signal and "down" otherwise.
func (s Signal) Direction() string {
	if s.IsPositive {
		return "up"
	}
	return "down"
}

// Config sizes the two trend regimes.
type Config struct {
	Window      int // sessions per comparison window; the window regime needs 2*Window
	SlopePoints int // maximum trailing points used by the slope regime
}

// DefaultConfig returns the standard three-session window and five-point slope.
func DefaultConfig() Config {
	return Config{
		Window:      3,
		SlopePoints: 5,
	}
}
