package domain

import "math"

// Params is the typed design configuration for every part.
// It is constructed once at the request boundary and clamped with Clamp.
type Params struct {
	Path    PathParams   `yaml:"path" json:"path"`
	Toe     ToeParams    `yaml:"toe" json:"toe"`
	Heel    HeelParams   `yaml:"heel" json:"heel"`
	Base    BaseParams   `yaml:"base" json:"base"`
	Holes   HoleParams   `yaml:"holes" json:"holes"`
	Washers WasherParams `yaml:"washers" json:"washers"`
}

// PathParams shapes the 2-D reference path.
type PathParams struct {
	Length    float64 `yaml:"length" json:"length"`
	PctA      float64 `yaml:"pctA" json:"pctA"`
	PctB      float64 `yaml:"pctB" json:"pctB"`
	OffsetB   float64 `yaml:"offsetB" json:"offsetB"`
	OffsetA   float64 `yaml:"offsetA" json:"offsetA"`
	OffsetTip float64 `yaml:"offsetTip" json:"offsetTip"`
}

// ToeParams shapes the shell swept along the leading edge of the path.
// Anchor A sits LenAB+LenBC before the path tip; B and C follow along the path.
type ToeParams struct {
	Thickness       float64           `yaml:"thickness" json:"thickness"`
	LenAB           float64           `yaml:"lenAB" json:"lenAB"`
	LenBC           float64           `yaml:"lenBC" json:"lenBC"`
	A               ProfileDescriptor `yaml:"a" json:"a"`
	B               ProfileDescriptor `yaml:"b" json:"b"`
	C               ProfileDescriptor `yaml:"c" json:"c"`
	StrengthA       float64           `yaml:"strengthA" json:"strengthA"`
	StrengthB       float64           `yaml:"strengthB" json:"strengthB"`
	StrengthC       float64           `yaml:"strengthC" json:"strengthC"`
	StationsPerSpan int               `yaml:"stationsPerSpan" json:"stationsPerSpan"`
	RoundShrink     float64           `yaml:"roundShrink" json:"roundShrink"`
	RoundBand       float64           `yaml:"roundBand" json:"roundBand"`
}

// HeelParams shapes the heel shell, swept from the path start and capped at Height.
type HeelParams struct {
	Length    float64           `yaml:"length" json:"length"`
	Height    float64           `yaml:"height" json:"height"`
	Thickness float64           `yaml:"thickness" json:"thickness"`
	Profile   ProfileDescriptor `yaml:"profile" json:"profile"`
	Stations  int               `yaml:"stations" json:"stations"`
}

// BaseParams shapes the base plate outline and body.
type BaseParams struct {
	Thickness    float64 `yaml:"thickness" json:"thickness"`
	HeelWidth    float64 `yaml:"heelWidth" json:"heelWidth"`
	ForeWidth    float64 `yaml:"foreWidth" json:"foreWidth"`
	CornerRadius float64 `yaml:"cornerRadius" json:"cornerRadius"`
	FilletRadius float64 `yaml:"filletRadius" json:"filletRadius"`
}

// HoleParams lays out screw holes or slots in the base plate.
type HoleParams struct {
	PairCount       int     `yaml:"pairCount" json:"pairCount"`
	Start           float64 `yaml:"start" json:"start"`
	PairSpacing     float64 `yaml:"pairSpacing" json:"pairSpacing"`
	Lateral         float64 `yaml:"lateral" json:"lateral"`
	SecondaryOffset float64 `yaml:"secondaryOffset" json:"secondaryOffset"`
	Diameter        float64 `yaml:"diameter" json:"diameter"`
	SlotLength      float64 `yaml:"slotLength" json:"slotLength"`
}

// WasherParams configures the optional pads fused beneath each hole.
type WasherParams struct {
	Enabled     bool    `yaml:"enabled" json:"enabled"`
	Diameter    float64 `yaml:"diameter" json:"diameter"`
	Thickness   float64 `yaml:"thickness" json:"thickness"`
	Patches     bool    `yaml:"patches" json:"patches"`
	PatchWalk   float64 `yaml:"patchWalk" json:"patchWalk"`
	PatchRadius float64 `yaml:"patchRadius" json:"patchRadius"`
}

// ProfileDescriptor is the five-value description of one cross-section,
// interpreted in a station's local frame.
type ProfileDescriptor struct {
	EndX        float64 `yaml:"endX" json:"endX"`
	EndZ        float64 `yaml:"endZ" json:"endZ"`
	StartHandle float64 `yaml:"startHandle" json:"startHandle"`
	EndHandle   float64 `yaml:"endHandle" json:"endHandle"`
	EndAngleDeg float64 `yaml:"endAngleDeg" json:"endAngleDeg"`
}

// Profile descriptor ranges.
const (
	ProfileMinEnd    = -300.0
	ProfileMaxEnd    = 300.0
	ProfileMaxHandle = 300.0
)

// Clamp returns the descriptor with every field saturated to its range.
// The angle is wrapped into [-180, 180] instead of saturated.
func (d ProfileDescriptor) Clamp() ProfileDescriptor {
	return ProfileDescriptor{
		EndX:        Clamp(d.EndX, ProfileMinEnd, ProfileMaxEnd),
		EndZ:        Clamp(d.EndZ, ProfileMinEnd, ProfileMaxEnd),
		StartHandle: Clamp(d.StartHandle, 0, ProfileMaxHandle),
		EndHandle:   Clamp(d.EndHandle, 0, ProfileMaxHandle),
		EndAngleDeg: WrapDegrees(d.EndAngleDeg),
	}
}

// Clamp saturates v into [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapDegrees maps an angle into [-180, 180].
func WrapDegrees(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	if a >= -180 && a <= 180 {
		return a
	}
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}

// DefaultParams returns the stock design.
func DefaultParams() Params {
	return Params{
		Path: PathParams{
			Length:    195,
			PctA:      67,
			PctB:      46,
			OffsetB:   6,
			OffsetA:   10,
			OffsetTip: 4,
		},
		Toe: ToeParams{
			Thickness:       2.5,
			LenAB:           25,
			LenBC:           20,
			A:               ProfileDescriptor{EndX: 38, EndZ: 30, StartHandle: 18, EndHandle: 16, EndAngleDeg: -150},
			B:               ProfileDescriptor{EndX: 34, EndZ: 26, StartHandle: 16, EndHandle: 14, EndAngleDeg: -140},
			C:               ProfileDescriptor{EndX: 22, EndZ: 14, StartHandle: 10, EndHandle: 8, EndAngleDeg: -125},
			StrengthA:       1,
			StrengthB:       1,
			StrengthC:       1,
			StationsPerSpan: 6,
			RoundShrink:     4,
			RoundBand:       12,
		},
		Heel: HeelParams{
			Length:    45,
			Height:    28,
			Thickness: 2.5,
			Profile:   ProfileDescriptor{EndX: 30, EndZ: 36, StartHandle: 20, EndHandle: 14, EndAngleDeg: -120},
			Stations:  8,
		},
		Base: BaseParams{
			Thickness:    3,
			HeelWidth:    56,
			ForeWidth:    80,
			CornerRadius: 8,
			FilletRadius: 1.2,
		},
		Holes: HoleParams{
			PairCount:       2,
			Start:           30,
			PairSpacing:     40,
			Lateral:         24,
			SecondaryOffset: 4,
			Diameter:        4,
			SlotLength:      0,
		},
		Washers: WasherParams{
			Enabled:     false,
			Diameter:    10,
			Thickness:   1.5,
			Patches:     false,
			PatchWalk:   3,
			PatchRadius: 1,
		},
	}
}
