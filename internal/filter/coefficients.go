// Package filter holds the fixed coefficient tables of the pitch filter and
// tools to analyze their frequency response.
package filter

// Table dimensions. These must match between encoder and decoder.
const (
	// FracSteps is the number of discrete fractional-lag positions.
	FracSteps = 8

	// InterpOrder is the number of taps of each interpolation row.
	InterpOrder = 9

	// DampOrder is the number of taps of the damping filter.
	DampOrder = 5

	// IdentityRow is the interpolation row for a zero fractional delay
	// (integer lag). Its center tap is one and the others vanish.
	IdentityRow = FracSteps / 2

	// centerTap is the index of the center tap of an interpolation row.
	centerTap = InterpOrder / 2
)

// InterpolationRow is one set of fractional-lag interpolation coefficients.
type InterpolationRow = [InterpOrder]float64

// DampingCoefficients is the 5-tap smoothing filter applied to the
// gain-scaled pitch prediction. Its taps sum to one.
var DampingCoefficients = [DampOrder]float64{-0.07, 0.25, 0.64, 0.25, -0.07}

// InterpolationTable holds one interpolation row per fractional-lag step.
// Row k approximates a delay of (k-IdentityRow)/FracSteps samples relative to
// the center tap and rows k and FracSteps-k are mirror images of each other.
var InterpolationTable = [FracSteps]InterpolationRow{
	{
		-0.02239172458614, 0.06653315052934, -0.16515880017569, 0.60701333734125,
		0.64671399919202, -0.20249000396417, 0.09926548334755, -0.04765933793109,
		0.01754159521746,
	},
	{
		-0.01985640750434, 0.05816126837866, -0.13991265473714, 0.44560418147643,
		0.79117042386876, -0.20266133815188, 0.09585268418555, -0.04533310458084,
		0.01654127246314,
	},
	{
		-0.01463300534216, 0.04229888475060, -0.09897034715253, 0.28284326017787,
		0.90385267956632, -0.16976950138649, 0.07704272393639, -0.03584218578311,
		0.01295781500709,
	},
	{
		-0.00764851320885, 0.02184035544377, -0.04985561057281, 0.13083306574393,
		0.97545011664662, -0.10177807997561, 0.04400901776474, -0.02010737175166,
		0.00719783432422,
	},
	{
		-0.00000000000000, 0.00000000000000, -0.00000000000001, 0.00000000000001,
		0.99999999999999, 0.00000000000001, -0.00000000000001, 0.00000000000000,
		-0.00000000000000,
	},
	{
		0.00719783432422, -0.02010737175166, 0.04400901776474, -0.10177807997562,
		0.97545011664663, 0.13083306574393, -0.04985561057280, 0.02184035544377,
		-0.00764851320885,
	},
	{
		0.01295781500710, -0.03584218578312, 0.07704272393640, -0.16976950138650,
		0.90385267956634, 0.28284326017785, -0.09897034715252, 0.04229888475059,
		-0.01463300534216,
	},
	{
		0.01654127246315, -0.04533310458085, 0.09585268418557, -0.20266133815190,
		0.79117042386878, 0.44560418147640, -0.13991265473712, 0.05816126837865,
		-0.01985640750433,
	},
}

// Row returns the interpolation row for index k. Indices outside [0, FracSteps)
// are clamped to the nearest valid row.
func Row(k int) *InterpolationRow {
	switch {
	case k < 0:
		k = 0
	case k >= FracSteps:
		k = FracSteps - 1
	}
	return &InterpolationTable[k]
}
