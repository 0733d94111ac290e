package units

// Conversion steps applied when SI output is requested. Chains are followed
// step by step, so yd ends in mm and mi in m (through km folding).
var builtinSteps = []Step{
	{From: "°F", To: "°C", Factor: 5.0 / 9.0, Offset: -32},
	{From: "mph", To: "km/h", Factor: 1.609344},
	{From: "kn", To: "km/h", Factor: 1.852},
	{From: "psi", To: "hPa", Factor: 68.947572932},
	{From: "inHg", To: "hPa", Factor: 33.8638866667},
	{From: "mmHg", To: "hPa", Factor: 1.33322387415},
	{From: "mbar", To: "hPa", Factor: 1},
	{From: "yd", To: "ft", Factor: 3},
	{From: "ft", To: "in", Factor: 12},
	{From: "in", To: "cm", Factor: 2.54},
	{From: "cm", To: "mm", Factor: 10},
	{From: "mi", To: "km", Factor: 1.609344},
	{From: "lbs", To: "kg", Factor: 0.45359237},
	{From: "lb", To: "kg", Factor: 0.45359237},
	{From: "oz", To: "g", Factor: 28.349523125},
	{From: "gal", To: "l", Factor: 3.785411784},
}

var (
	wattFamily   = &Family{Base: "W", Prefixes: siPrefixes}
	energyFamily = &Family{Base: "Wh", Prefixes: siPrefixes}
	jouleFamily  = &Family{Base: "J", Prefixes: siPrefixes}
	voltFamily   = &Family{Base: "V", Prefixes: siPrefixes}
	ampFamily    = &Family{Base: "A", Prefixes: siPrefixes}
	ohmFamily    = &Family{Base: "Ω", Prefixes: siPrefixes}
	hertzFamily  = &Family{Base: "Hz", Prefixes: siPrefixes}
	pascalFamily = &Family{Base: "Pa", Prefixes: siPrefixes}
	byteFamily   = &Family{Base: "B", Prefixes: largePrefixes}
	meterFamily  = &Family{Base: "m", Prefixes: lengthPrefixes}
	gramFamily   = &Family{Base: "g", Prefixes: lengthPrefixes}
	literFamily  = &Family{Base: "l", Prefixes: smallPrefixes}
	secondFamily = &Family{Base: "s", Prefixes: smallPrefixes}
	luxFamily    = &Family{Base: "lx", Prefixes: []string{"", "k"}}
)

// Salient-constant bumps. Readings near these values get extra resolution.
var (
	freezingBump = Within(0, 2, 0.7)
	boilingBump  = Within(100, 5, 0.8)

	mains50Bump = Within(50, 1, 0.8)
	mains60Bump = Within(60, 1, 0.8)

	atmosphereHPaBump = Between(950, 1070, 0.7)
	atmosphereBarBump = Within(1, 0.05, 0.7)
	atmospherePsiBump = Within(14.7, 0.7, 0.7)

	mains110Bump = Between(100, 130, 0.7)
	mains230Bump = Between(207, 253, 0.7)
	mains400Bump = Between(360, 440, 0.7)
)

var builtinPolicies = []Policy{
	// Temperature
	{Unit: "°C", Label: "temperature", Precision: Decimals(0.5), Bumps: []Bump{freezingBump, boilingBump}},
	{Unit: "°F", Label: "temperature (imperial)", Precision: Decimals(0)},
	{Unit: "K", Label: "temperature (absolute)", Precision: Decimals(0.5)},

	// Humidity, ratios, air quality
	{Unit: "%", Label: "relative value", Precision: Decimals(0)},
	{Unit: "ppm", Label: "concentration", Precision: Decimals(0)},
	{Unit: "ppb", Label: "concentration", Precision: Decimals(0)},
	{Unit: "µg/m³", Label: "particulates", Precision: Decimals(0)},

	// Pressure
	{Unit: "hPa", Label: "pressure", Precision: Decimals(0), Bumps: []Bump{atmosphereHPaBump}},
	{Unit: "mbar", Label: "pressure", Precision: Decimals(0), Bumps: []Bump{atmosphereHPaBump}},
	{Unit: "bar", Label: "pressure", Precision: Fixed(3), Bumps: []Bump{atmosphereBarBump}},
	{Unit: "psi", Label: "pressure (imperial)", Precision: Fixed(3), Bumps: []Bump{atmospherePsiBump}},
	{Unit: "inHg", Label: "pressure (imperial)", Precision: Fixed(3)},
	{Unit: "mmHg", Label: "pressure", Precision: Decimals(0)},
	{Unit: "Pa", Label: "pressure", Precision: Fixed(3), Family: pascalFamily},

	// Electrical
	{Unit: "V", Label: "voltage", Precision: Fixed(3), Family: voltFamily,
		Bumps: []Bump{mains110Bump, mains230Bump, mains400Bump}},
	{Unit: "A", Label: "current", Precision: Fixed(3), Family: ampFamily},
	{Unit: "Ω", Label: "resistance", Precision: Fixed(3), Family: ohmFamily},
	{Unit: "W", Label: "power", Precision: Fixed(3), Family: wattFamily},
	{Unit: "Wh", Label: "energy", Precision: Fixed(4), Family: energyFamily},
	{Unit: "J", Label: "energy", Precision: Fixed(3), Family: jouleFamily},
	{Unit: "Hz", Label: "frequency", Precision: Fixed(3), Family: hertzFamily,
		Bumps: []Bump{mains50Bump, mains60Bump}},

	// Speed
	{Unit: "km/h", Label: "speed", Precision: Decimals(0)},
	{Unit: "mph", Label: "speed (imperial)", Precision: Decimals(0)},
	{Unit: "kn", Label: "speed (nautical)", Precision: Decimals(0)},
	{Unit: "m/s", Label: "speed", Precision: Decimals(0.5)},

	// Length and precipitation
	{Unit: "mm", Label: "precipitation", Precision: Decimals(1)},
	{Unit: "cm", Label: "length", Precision: Decimals(0.5)},
	{Unit: "m", Label: "length", Precision: Fixed(3), Family: meterFamily},
	{Unit: "in", Label: "length (imperial)", Precision: Fixed(2)},
	{Unit: "ft", Label: "length (imperial)", Precision: Fixed(2)},
	{Unit: "yd", Label: "length (imperial)", Precision: Fixed(2)},
	{Unit: "mi", Label: "distance (imperial)", Precision: Fixed(3)},

	// Mass and volume
	{Unit: "g", Label: "mass", Precision: Fixed(3), Family: gramFamily},
	{Unit: "lbs", Label: "mass (imperial)", Precision: Fixed(3)},
	{Unit: "lb", Label: "mass (imperial)", Precision: Fixed(3)},
	{Unit: "oz", Label: "mass (imperial)", Precision: Fixed(2)},
	{Unit: "l", Label: "volume", Precision: Fixed(3), Family: literFamily},
	{Unit: "gal", Label: "volume (imperial)", Precision: Fixed(3)},

	// Misc
	{Unit: "°", Label: "direction", Precision: Fixed(2), Angle: true},
	{Unit: "B", Label: "data size", Precision: Fixed(3), Family: byteFamily},
	{Unit: "s", Label: "duration", Precision: Fixed(3), Family: secondFamily},
	{Unit: "lx", Label: "illuminance", Precision: Fixed(2), Family: luxFamily},
	{Unit: "dB", Label: "sound level", Precision: Decimals(0.5)},
	{Unit: "dBm", Label: "signal strength", Precision: Decimals(0)},
	{Unit: "W/m²", Label: "irradiance", Precision: Decimals(0)},
	{Unit: "rpm", Label: "rotation", Precision: Fixed(3)},
}
