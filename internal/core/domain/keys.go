package domain

import (
	"math"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ParamKeysVersion versions the fingerprint allow-lists. Bump it whenever a part
// pipeline changes in a way that invalidates previously built solids.
const ParamKeysVersion = "forma/v1"

// ParamKey binds a flat, legacy parameter name to a typed Params field.
type ParamKey struct {
	Name string
	Min  float64
	Max  float64
	// Wrap marks angular keys that wrap into range instead of saturating.
	Wrap bool
	Get  func(*Params) float64
	Set  func(*Params, float64)
}

// clamp applies the key's range policy to v.
func (k ParamKey) clamp(v float64) float64 {
	if k.Wrap {
		return WrapDegrees(v)
	}
	return Clamp(v, k.Min, k.Max)
}

func floatKey(name string, lo, hi float64, field func(*Params) *float64) ParamKey {
	return ParamKey{
		Name: name,
		Min:  lo,
		Max:  hi,
		Get:  func(p *Params) float64 { return *field(p) },
		Set:  func(p *Params, v float64) { *field(p) = v },
	}
}

func intKey(name string, lo, hi float64, field func(*Params) *int) ParamKey {
	return ParamKey{
		Name: name,
		Min:  lo,
		Max:  hi,
		Get:  func(p *Params) float64 { return float64(*field(p)) },
		Set:  func(p *Params, v float64) { *field(p) = int(math.Round(v)) },
	}
}

func boolKey(name string, field func(*Params) *bool) ParamKey {
	return ParamKey{
		Name: name,
		Min:  0,
		Max:  1,
		Get: func(p *Params) float64 {
			if *field(p) {
				return 1
			}
			return 0
		},
		Set: func(p *Params, v float64) { *field(p) = v >= 0.5 },
	}
}

func descriptorKeys(prefix string, field func(*Params) *ProfileDescriptor) []ParamKey {
	angle := floatKey(prefix+"_end_angle", -180, 180, func(p *Params) *float64 { return &field(p).EndAngleDeg })
	angle.Wrap = true
	return []ParamKey{
		floatKey(prefix+"_end_x", ProfileMinEnd, ProfileMaxEnd, func(p *Params) *float64 { return &field(p).EndX }),
		floatKey(prefix+"_end_z", ProfileMinEnd, ProfileMaxEnd, func(p *Params) *float64 { return &field(p).EndZ }),
		floatKey(prefix+"_start_handle", 0, ProfileMaxHandle, func(p *Params) *float64 { return &field(p).StartHandle }),
		floatKey(prefix+"_end_handle", 0, ProfileMaxHandle, func(p *Params) *float64 { return &field(p).EndHandle }),
		angle,
	}
}

// paramKeys is the full key table, in canonical order.
var paramKeys = buildParamKeys()

func buildParamKeys() []ParamKey {
	keys := []ParamKey{
		floatKey("path_length", 50, 2000, func(p *Params) *float64 { return &p.Path.Length }),
		floatKey("path_pct_a", 1, 100, func(p *Params) *float64 { return &p.Path.PctA }),
		floatKey("path_pct_b", 1, 100, func(p *Params) *float64 { return &p.Path.PctB }),
		floatKey("path_offset_b", -1000, 1000, func(p *Params) *float64 { return &p.Path.OffsetB }),
		floatKey("path_offset_a", -1000, 1000, func(p *Params) *float64 { return &p.Path.OffsetA }),
		floatKey("path_offset_tip", -1000, 1000, func(p *Params) *float64 { return &p.Path.OffsetTip }),

		floatKey("toe_thickness", 0.5, 50, func(p *Params) *float64 { return &p.Toe.Thickness }),
		floatKey("toe_len_ab", 0, 1000, func(p *Params) *float64 { return &p.Toe.LenAB }),
		floatKey("toe_len_bc", 0, 1000, func(p *Params) *float64 { return &p.Toe.LenBC }),
		floatKey("toe_strength_a", 0.2, 8, func(p *Params) *float64 { return &p.Toe.StrengthA }),
		floatKey("toe_strength_b", 0.2, 8, func(p *Params) *float64 { return &p.Toe.StrengthB }),
		floatKey("toe_strength_c", 0.2, 8, func(p *Params) *float64 { return &p.Toe.StrengthC }),
		intKey("toe_stations_per_span", 1, 64, func(p *Params) *int { return &p.Toe.StationsPerSpan }),
		floatKey("toe_round_shrink", 0, 100, func(p *Params) *float64 { return &p.Toe.RoundShrink }),
		floatKey("toe_round_band", 0, 500, func(p *Params) *float64 { return &p.Toe.RoundBand }),
	}
	keys = append(keys, descriptorKeys("toe_a", func(p *Params) *ProfileDescriptor { return &p.Toe.A })...)
	keys = append(keys, descriptorKeys("toe_b", func(p *Params) *ProfileDescriptor { return &p.Toe.B })...)
	keys = append(keys, descriptorKeys("toe_c", func(p *Params) *ProfileDescriptor { return &p.Toe.C })...)

	keys = append(keys,
		floatKey("heel_length", 1, 1000, func(p *Params) *float64 { return &p.Heel.Length }),
		floatKey("heel_height", 1, 500, func(p *Params) *float64 { return &p.Heel.Height }),
		floatKey("heel_thickness", 0.5, 50, func(p *Params) *float64 { return &p.Heel.Thickness }),
		intKey("heel_stations", 2, 128, func(p *Params) *int { return &p.Heel.Stations }),
	)
	keys = append(keys, descriptorKeys("heel_profile", func(p *Params) *ProfileDescriptor { return &p.Heel.Profile })...)

	keys = append(keys,
		floatKey("base_thickness", 0.5, 50, func(p *Params) *float64 { return &p.Base.Thickness }),
		floatKey("base_heel_width", 5, 1000, func(p *Params) *float64 { return &p.Base.HeelWidth }),
		floatKey("base_fore_width", 5, 1000, func(p *Params) *float64 { return &p.Base.ForeWidth }),
		floatKey("base_corner_radius", 0, 200, func(p *Params) *float64 { return &p.Base.CornerRadius }),
		floatKey("base_fillet_radius", 0, 20, func(p *Params) *float64 { return &p.Base.FilletRadius }),

		intKey("holes_pair_count", 0, 16, func(p *Params) *int { return &p.Holes.PairCount }),
		floatKey("holes_start", 0, 2000, func(p *Params) *float64 { return &p.Holes.Start }),
		floatKey("holes_pair_spacing", 0, 2000, func(p *Params) *float64 { return &p.Holes.PairSpacing }),
		floatKey("holes_lateral", 0, 1000, func(p *Params) *float64 { return &p.Holes.Lateral }),
		floatKey("holes_secondary_offset", -500, 500, func(p *Params) *float64 { return &p.Holes.SecondaryOffset }),
		floatKey("holes_diameter", 0.5, 50, func(p *Params) *float64 { return &p.Holes.Diameter }),
		floatKey("holes_slot_length", 0, 200, func(p *Params) *float64 { return &p.Holes.SlotLength }),

		boolKey("washers_enabled", func(p *Params) *bool { return &p.Washers.Enabled }),
		floatKey("washers_diameter", 1, 100, func(p *Params) *float64 { return &p.Washers.Diameter }),
		floatKey("washers_thickness", 0.1, 20, func(p *Params) *float64 { return &p.Washers.Thickness }),
		boolKey("washers_patches", func(p *Params) *bool { return &p.Washers.Patches }),
		floatKey("washers_patch_walk", 0.1, 50, func(p *Params) *float64 { return &p.Washers.PatchWalk }),
		floatKey("washers_patch_radius", 0, 20, func(p *Params) *float64 { return &p.Washers.PatchRadius }),
	)
	return keys
}

// partKeyPrefixes names the key groups each part's solid depends on.
var partKeyPrefixes = map[PartName][]string{
	PartBase: {"path_", "base_", "holes_", "washers_"},
	PartToe:  {"path_", "toe_"},
	PartHeel: {"path_", "heel_"},
}

// ParamKeys returns the full key table in canonical order.
func ParamKeys() []ParamKey {
	return slices.Clone(paramKeys)
}

// LookupParamKey finds a key by its flat name.
func LookupParamKey(name string) (ParamKey, bool) {
	for _, k := range paramKeys {
		if k.Name == name {
			return k, true
		}
	}
	return ParamKey{}, false
}

// PartKeys returns the allow-listed key names for part, in canonical order.
func PartKeys(part PartName) ([]string, error) {
	prefixes, ok := partKeyPrefixes[part]
	if !ok {
		return nil, zerr.With(ErrUnknownPart, "part", string(part))
	}
	var names []string
	for _, k := range paramKeys {
		for _, prefix := range prefixes {
			if strings.HasPrefix(k.Name, prefix) {
				names = append(names, k.Name)
				break
			}
		}
	}
	return names, nil
}

// Clamp returns a copy of p with every field saturated to its documented range.
func (p Params) Clamp() Params {
	out := p
	for _, k := range paramKeys {
		k.Set(&out, k.clamp(k.Get(&out)))
	}
	return out
}

// Value returns the value of the named key.
func (p Params) Value(name string) (float64, error) {
	k, ok := LookupParamKey(name)
	if !ok {
		return 0, zerr.With(ErrUnknownParam, "key", name)
	}
	return k.Get(&p), nil
}

// ApplyLegacy overlays flat legacy-named values onto p. Values are clamped.
func (p *Params) ApplyLegacy(values map[string]float64) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		k, ok := LookupParamKey(name)
		if !ok {
			return zerr.With(ErrUnknownParam, "key", name)
		}
		k.Set(p, k.clamp(values[name]))
	}
	return nil
}
