package interp

// essentialDignities maps each planet to the signs holding each classical
// dignity. A dignity may name one sign or several.
var essentialDignities = map[string]map[string][]string{
	"sun":     {"domicile": {"leo"}, "exaltation": {"aries"}, "detriment": {"aquarius"}, "fall": {"libra"}},
	"moon":    {"domicile": {"cancer"}, "exaltation": {"taurus"}, "detriment": {"capricorn"}, "fall": {"scorpio"}},
	"mercury": {"domicile": {"gemini", "virgo"}, "exaltation": {"virgo"}, "detriment": {"sagittarius", "pisces"}, "fall": {"pisces"}},
	"venus":   {"domicile": {"taurus", "libra"}, "exaltation": {"pisces"}, "detriment": {"scorpio", "aries"}, "fall": {"virgo"}},
	"mars":    {"domicile": {"aries", "scorpio"}, "exaltation": {"capricorn"}, "detriment": {"libra", "taurus"}, "fall": {"cancer"}},
	"jupiter": {"domicile": {"sagittarius", "pisces"}, "exaltation": {"cancer"}, "detriment": {"gemini", "virgo"}, "fall": {"capricorn"}},
	"saturn":  {"domicile": {"capricorn", "aquarius"}, "exaltation": {"libra"}, "detriment": {"cancer", "leo"}, "fall": {"aries"}},
	"uranus":  {"domicile": {"aquarius"}, "exaltation": {"scorpio"}, "detriment": {"leo"}, "fall": {"taurus"}},
	"neptune": {"domicile": {"pisces"}, "detriment": {"virgo"}},
	"pluto":   {"domicile": {"scorpio"}, "detriment": {"taurus"}},
}

// dignityOrder fixes evaluation order: a sign appearing under two dignities
// (Mercury in Virgo) resolves to the strongest.
var dignityOrder = []struct{ key, label string }{
	{"domicile", "Domicile"},
	{"exaltation", "Exaltation"},
	{"detriment", "Detriment"},
	{"fall", "Fall"},
}

// DignityStatus returns the essential dignity of a planet in a sign, or
// "Peregrine" when the pair appears in no dignity table.
func DignityStatus(planetID, signID string) string {
	dignities, ok := essentialDignities[planetID]
	if !ok {
		return "Peregrine"
	}
	for _, dignity := range dignityOrder {
		for _, sign := range dignities[dignity.key] {
			if sign == signID {
				return dignity.label
			}
		}
	}
	return "Peregrine"
}
