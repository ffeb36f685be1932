package rf1a

import (
	"fmt"
	"sort"
	"strings"
)

// PowerUpHex holds the register values of a radio straight out of reset.
// Loaders start from it so unmentioned fields keep their power-up value.
const PowerUpHex = "292E2E07D391FF044500000F001EC4EC8C220222F847073000766C034091876BF85610A90A200D0000597F3F88310B" +
	"C600000000000000" +
	"000000"

// TinyOSDefaultHex holds the configuration the TinyOS RF1A stack loads by
// default (902 MHz base, 10 kBaud 2-GFSK, channel 10).
const TinyOSDefaultHex = "2E2E2947D391FF0445000A060022B13BC8931322F834073F10166C0340918000F05610EF2D251F0000590000813509" +
	"C000000000000000" +
	"000000"

var (
	powerUp       = MustFromHexString(PowerUpHex)
	tinyOSDefault = MustFromHexString(TinyOSDefaultHex)
)

// PowerUp returns the power-up register values.
func PowerUp() Config {
	return powerUp
}

// TinyOSDefault returns the TinyOS default configuration.
func TinyOSDefault() Config {
	return tinyOSDefault
}

var baselines = map[string]func() Config{
	"powerup": PowerUp,
	"tinyos":  TinyOSDefault,
}

// Baseline resolves a baseline by name ("powerup" or "tinyos").
// The empty name selects the power-up baseline.
func Baseline(name string) (Config, error) {
	if name == "" {
		return PowerUp(), nil
	}
	fn, ok := baselines[strings.ToLower(name)]
	if !ok {
		return Config{}, fmt.Errorf("unknown baseline %q (want one of %s)", name, strings.Join(BaselineNames(), ", "))
	}
	return fn(), nil
}

// BaselineNames returns the accepted Baseline names, sorted.
func BaselineNames() []string {
	names := make([]string, 0, len(baselines))
	for n := range baselines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
