package store

type Setting struct {
	Key   string
	Value string
}

// Settings keys.
const (
	SettingBarWeight  = "bar_weight"
	SettingWeightUnit = "weight_unit"
	SettingChime      = "chime"
)
