package stripfield

import "github.com/san-kum/ambient/internal/ambient"

// Viewport width cutoffs in device-independent pixels.
const (
	MediumMinWidth = 600
	WideMinWidth   = 1024
)

var profiles = map[ambient.DeviceClass]ambient.DeviceProfile{
	ambient.Narrow: {
		Class: ambient.Narrow, StripBase: 28, StripMin: 16, StripMax: 40,
		VerticalStep: 4, SpeedMin: 0.0005, SpeedMax: 0.0015,
	},
	ambient.Medium: {
		Class: ambient.Medium, StripBase: 22, StripMin: 10, StripMax: 32,
		VerticalStep: 3, SpeedMin: 0.0008, SpeedMax: 0.0020,
	},
	ambient.Wide: {
		Class: ambient.Wide, StripBase: 18, StripMin: 6, StripMax: 28,
		VerticalStep: 2, SpeedMin: 0.0010, SpeedMax: 0.0030,
	},
}

func Classify(viewportWidth float64) ambient.DeviceClass {
	switch {
	case viewportWidth < MediumMinWidth:
		return ambient.Narrow
	case viewportWidth < WideMinWidth:
		return ambient.Medium
	default:
		return ambient.Wide
	}
}

// Configure returns the calibration profile for a viewport width. It must be
// re-run on every resize.
func Configure(viewportWidth float64) ambient.DeviceProfile {
	return profiles[Classify(viewportWidth)]
}

// Profiles lists the calibration table from narrow to wide.
func Profiles() []ambient.DeviceProfile {
	return []ambient.DeviceProfile{
		profiles[ambient.Narrow],
		profiles[ambient.Medium],
		profiles[ambient.Wide],
	}
}
