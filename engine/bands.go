package engine

// Band is the color class of a composite KPI score.
type Band int

const (
	BandRed Band = iota
	BandOrange
	BandLightGreen
	BandGreen
	BandBlue
)

// Lower bounds are inclusive: 80 is orange, 95 is blue.
const (
	bandOrangeMin     = 80
	bandLightGreenMin = 85
	bandGreenMin      = 90
	bandBlueMin       = 95
)

// ScoreToColorBand classifies a score into one of five bands.
func ScoreToColorBand(v float64) Band {
	switch {
	case v >= bandBlueMin:
		return BandBlue
	case v >= bandGreenMin:
		return BandGreen
	case v >= bandLightGreenMin:
		return BandLightGreen
	case v >= bandOrangeMin:
		return BandOrange
	default:
		return BandRed
	}
}

var bandNames = [...]string{"red", "orange", "light_green", "green", "blue"}

// Fill colors, matching the dashboard's cell backgrounds.
var bandColors = [...]string{"#FF4B4B", "#FFA500", "#90EE90", "#008000", "#1E90FF"}

func (b Band) String() string {
	if b < BandRed || b > BandBlue {
		return "unknown"
	}
	return bandNames[b]
}

// Color returns the hex fill for the band.
func (b Band) Color() string {
	if b < BandRed || b > BandBlue {
		return ""
	}
	return bandColors[b]
}

// MarshalText lets bands travel as their names in JSON.
func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
