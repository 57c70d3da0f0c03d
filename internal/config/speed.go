package config

// SpeedPreset represents a named tick rate.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedInsane SpeedPreset = "insane"
)

// SpeedPresets lists the presets from slowest to fastest.
var SpeedPresets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedInsane}

// FPS returns the tick rate for the preset. The empty preset reports false.
func (p SpeedPreset) FPS() (int, bool) {
	switch p {
	case SpeedSlow:
		return 5, true
	case SpeedNormal:
		return 8, true
	case SpeedFast:
		return 12, true
	case SpeedInsane:
		return 20, true
	default:
		return 0, false
	}
}

// Valid reports whether p names a known preset.
func (p SpeedPreset) Valid() bool {
	_, ok := p.FPS()
	return ok
}
