package repository

// Timeframe is a generator chart interval.
type Timeframe string

const (
	TF5M  Timeframe = "5M"
	TF15M Timeframe = "15M"
	TF30M Timeframe = "30M"
	TF1H  Timeframe = "1H"
	TF4H  Timeframe = "4H"
)

// Timeframes lists the supported intervals in display order.
var Timeframes = []Timeframe{TF5M, TF15M, TF30M, TF1H, TF4H}

// IsValidTimeframe returns true if tf is a supported timeframe.
func IsValidTimeframe(tf Timeframe) bool {
	switch tf {
	case TF5M, TF15M, TF30M, TF1H, TF4H:
		return true
	default:
		return false
	}
}

// DefaultTimeframe returns the default timeframe.
func DefaultTimeframe() Timeframe { return TF15M }
