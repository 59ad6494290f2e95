package intent

import (
	"regexp"
	"sort"
	"strings"

	"flight-intent-service/pkg/textnorm"
)

// Word tables for the Spanish booking vocabulary. Keys are folded
// (lower-case, accents stripped) unless noted.

// months maps month names, including the "setiembre" variant, to 1–12.
var months = map[string]int{
	"enero":      1,
	"febrero":    2,
	"marzo":      3,
	"abril":      4,
	"mayo":       5,
	"junio":      6,
	"julio":      7,
	"agosto":     8,
	"septiembre": 9,
	"setiembre":  9,
	"octubre":    10,
	"noviembre":  11,
	"diciembre":  12,
}

// numberWords covers the spelled-out cardinals accepted as a passenger count.
var numberWords = map[string]int{
	"un":     1,
	"uno":    1,
	"una":    1,
	"dos":    2,
	"tres":   3,
	"cuatro": 4,
	"cinco":  5,
	"seis":   6,
	"siete":  7,
	"ocho":   8,
	"nueve":  9,
	"diez":   10,
}

// ticketNouns are the head nouns a quantity must be attached to. Regexp
// fragments, singular with optional plural.
var ticketNouns = []string{
	`billetes?`,
	`pasajes?`,
	`pasajeros?`,
	`tickets?`,
	`personas?`,
	`boletos?`,
}

// airlineBoundaryWords end a "con <airline>" capture.
var airlineBoundaryWords = []string{"de", "desde", "a", "para", "el", "la", "los", "las", "en"}

// knownAirlines maps a folded alias to the display name. Multi-word spelling
// variants collapse onto the compact form.
var knownAirlines = map[string]string{
	"iberia":                "Iberia",
	"iberia express":        "Iberia Express",
	"air europa":            "Air Europa",
	"vueling":               "Vueling",
	"ryanair":               "Ryanair",
	"easyjet":               "easyJet",
	"lufthansa":             "Lufthansa",
	"air france":            "Air France",
	"klm":                   "KLM",
	"british airways":       "British Airways",
	"ita airways":           "ITA Airways",
	"alitalia":              "Alitalia",
	"tap":                   "TAP",
	"tap air portugal":      "TAP",
	"swiss":                 "Swiss",
	"turkish airlines":      "Turkish Airlines",
	"emirates":              "Emirates",
	"qatar airways":         "Qatar Airways",
	"latam":                 "LATAM",
	"avianca":               "Avianca",
	"copa":                  "Copa",
	"copa airlines":         "Copa",
	"aeromexico":            "Aeromexico",
	"aero mexico":           "Aeromexico",
	"aerolineas argentinas": "Aerolineas Argentinas",
	"sky airline":           "Sky Airline",
	"jetsmart":              "JetSMART",
	"jet smart":             "JetSMART",
	"volaris":               "Volaris",
	"viva aerobus":          "Viva Aerobus",
	"american airlines":     "American Airlines",
	"united airlines":       "United",
	"jetblue":               "JetBlue",
	"jet blue":              "JetBlue",
	"spirit":                "Spirit",
	"plus ultra":            "Plus Ultra",
	"wingo":                 "Wingo",
	"aerolineas galapagos":  "Aerolíneas Galápagos",
	"equair":                "Equair",
	"boliviana de aviacion": "Boliviana de Aviación",
	"conviasa":              "Conviasa",
	"arajet":                "Arajet",
	"air canada":            "Air Canada",
	"aer lingus":            "Aer Lingus",
	"norwegian":             "Norwegian",
	"finnair":               "Finnair",
	"sas":                   "SAS",
	"aegean":                "Aegean",
	"royal air maroc":       "Royal Air Maroc",
	"etihad":                "Etihad",
	"singapore airlines":    "Singapore Airlines",
	"japan airlines":        "Japan Airlines",
	"korean air":            "Korean Air",
	"cathay pacific":        "Cathay Pacific",
	"qantas":                "Qantas",
	"air china":             "Air China",
	"binter":                "Binter",
	"volotea":               "Volotea",
	"wizz air":              "Wizz Air",
	"transavia":             "Transavia",
	"eurowings":             "Eurowings",
	"brussels airlines":     "Brussels Airlines",
	"austrian":              "Austrian",
	"austrian airlines":     "Austrian",
	"interjet":              "Interjet",
	"air transat":           "Air Transat",
	"westjet":               "WestJet",
	"satena":                "Satena",
	"paranair":              "Paranair",
	"amaszonas":             "Amaszonas",
	"tame":                  "TAME",
	"jetsmart airlines":     "JetSMART",
	"air europa express":    "Air Europa Express",
	"iberojet":              "Iberojet",
	"world2fly":             "World2fly",
	"evelop":                "Evelop",
	"air nostrum":           "Air Nostrum",
	"canaryfly":             "Canaryfly",
	"binter canarias":       "Binter",
	"smartwings":            "Smartwings",
	"lot":                   "LOT",
	"lot polish airlines":   "LOT",
	"el al":                 "El Al",
	"egyptair":              "EgyptAir",
	"ethiopian":             "Ethiopian",
	"ethiopian airlines":    "Ethiopian",
	"saudia":                "Saudia",
	"china southern":        "China Southern",
	"china eastern":         "China Eastern",
	"thai airways":          "Thai Airways",
	"vietnam airlines":      "Vietnam Airlines",
	"air india":             "Air India",
	"air new zealand":       "Air New Zealand",
	"hawaiian airlines":     "Hawaiian Airlines",
	"alaska airlines":       "Alaska Airlines",
	"southwest":             "Southwest",
	"caribbean airlines":    "Caribbean Airlines",
	"cubana":                "Cubana",
	"cubana de aviacion":    "Cubana",
	"bahamasair":            "Bahamasair",
	"aeroregional":          "Aeroregional",
	"star peru":             "Star Perú",
	"sky airline peru":      "Sky Airline",
	"jetsmart peru":         "JetSMART",
	"viva air":              "Viva Air",
	"ultra air":             "Ultra Air",
}

// countryAliases maps folded country names, in Spanish and English, to
// ISO 3166-1 alpha-2 codes.
var countryAliases = map[string]string{
	"espana":                 "ES",
	"spain":                  "ES",
	"italia":                 "IT",
	"italy":                  "IT",
	"francia":                "FR",
	"france":                 "FR",
	"alemania":               "DE",
	"germany":                "DE",
	"portugal":               "PT",
	"reino unido":            "GB",
	"inglaterra":             "GB",
	"gran bretana":           "GB",
	"united kingdom":         "GB",
	"irlanda":                "IE",
	"paises bajos":           "NL",
	"holanda":                "NL",
	"belgica":                "BE",
	"suiza":                  "CH",
	"austria":                "AT",
	"grecia":                 "GR",
	"turquia":                "TR",
	"polonia":                "PL",
	"suecia":                 "SE",
	"noruega":                "NO",
	"dinamarca":              "DK",
	"finlandia":              "FI",
	"rusia":                  "RU",
	"marruecos":              "MA",
	"egipto":                 "EG",
	"estados unidos":         "US",
	"eeuu":                   "US",
	"ee uu":                  "US",
	"usa":                    "US",
	"united states":          "US",
	"canada":                 "CA",
	"mexico":                 "MX",
	"guatemala":              "GT",
	"honduras":               "HN",
	"el salvador":            "SV",
	"nicaragua":              "NI",
	"costa rica":             "CR",
	"panama":                 "PA",
	"cuba":                   "CU",
	"republica dominicana":   "DO",
	"puerto rico":            "PR",
	"colombia":               "CO",
	"venezuela":              "VE",
	"ecuador":                "EC",
	"peru":                   "PE",
	"bolivia":                "BO",
	"chile":                  "CL",
	"argentina":              "AR",
	"uruguay":                "UY",
	"paraguay":               "PY",
	"brasil":                 "BR",
	"brazil":                 "BR",
	"japon":                  "JP",
	"china":                  "CN",
	"corea del sur":          "KR",
	"india":                  "IN",
	"tailandia":              "TH",
	"australia":              "AU",
	"emiratos arabes unidos": "AE",
	"qatar":                  "QA",
	"catar":                  "QA",
	"israel":                 "IL",
	"sudafrica":              "ZA",
}

// countryCodes is the set of codes reachable through countryAliases.
var countryCodes = func() map[string]struct{} {
	codes := make(map[string]struct{}, len(countryAliases))
	for _, code := range countryAliases {
		codes[code] = struct{}{}
	}
	return codes
}()

// stopwords are trimmed from both ends of a captured city phrase and end a
// country qualifier.
var stopwords = newWordSet(
	// articles, prepositions, conjunctions
	"de", "del", "desde", "a", "al", "para", "por", "en", "el", "la", "los", "las",
	"un", "una", "uno", "unos", "unas", "y", "o", "con", "hasta", "hacia", "que",
	// pronouns and courtesy
	"mi", "me", "nos", "yo", "nosotros", "hola", "favor", "porfavor", "gracias", "buenas",
	// verbs
	"necesito", "necesitamos", "quiero", "queremos", "quisiera", "quisieramos",
	"comprar", "compra", "reservar", "reserva", "busco", "buscamos", "buscar",
	"ir", "volar", "viajar", "viaje", "viajes", "salir", "regresar", "volver",
	// travel nouns
	"vuelo", "vuelos", "billete", "billetes", "pasaje", "pasajes", "pasajero", "pasajeros",
	"ticket", "tickets", "boleto", "boletos", "persona", "personas", "asiento", "asientos",
	"ida", "vuelta", "avion", "aerolinea", "clase", "economica", "turista",
	// time words
	"hoy", "manana", "dia", "mes", "semana", "proximo", "proxima", "siguiente",
	// cardinals
	"dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve", "diez",
)

// articleCities are city names that begin with an article and must keep it.
var articleCities = newWordSet(
	"la paz", "la habana", "la coruna", "la romana", "la serena", "la plata",
	"las palmas", "las vegas", "los angeles", "los cabos", "el cairo", "el paso",
	"el calafate", "la rioja", "las terrenas",
)

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) has(word string) bool {
	_, ok := s[textnorm.Fold(word)]
	return ok
}

// Lexicon bundles the airline vocabulary and the matcher compiled from it.
// Built once; read-only afterwards.
type Lexicon struct {
	airlines        map[string]string
	airlineRe       *regexp.Regexp
	airlinePrefixRe *regexp.Regexp
}

// NewLexicon returns the built-in lexicon extended with extra airline names
// (display form). Extra names never override built-in display names.
func NewLexicon(extraAirlines ...string) *Lexicon {
	airlines := make(map[string]string, len(knownAirlines)+len(extraAirlines))
	for alias, display := range knownAirlines {
		airlines[alias] = display
	}
	for _, name := range extraAirlines {
		name = textnorm.Clean(name)
		if name == "" {
			continue
		}
		key := textnorm.Fold(name)
		if _, exists := airlines[key]; !exists {
			airlines[key] = name
		}
	}

	// Match both the folded alias and the accented display spelling.
	seen := make(map[string]struct{}, len(airlines)*2)
	aliases := make([]string, 0, len(airlines)*2)
	for alias, display := range airlines {
		for _, a := range []string{alias, strings.ToLower(display)} {
			if _, dup := seen[a]; !dup {
				seen[a] = struct{}{}
				aliases = append(aliases, a)
			}
		}
	}
	// Longest first so "air europa express" beats "air europa".
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i]) != len(aliases[j]) {
			return len(aliases[i]) > len(aliases[j])
		}
		return aliases[i] < aliases[j]
	})

	parts := make([]string, len(aliases))
	for i, alias := range aliases {
		parts[i] = aliasPattern(alias)
	}
	alternation := strings.Join(parts, "|")

	return &Lexicon{
		airlines:        airlines,
		airlineRe:       regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(` + alternation + `)(?:[^\p{L}\p{N}]|$)`),
		airlinePrefixRe: regexp.MustCompile(`(?i)^(` + alternation + `)(?:[^\p{L}\p{N}]|$)`),
	}
}

// accentClasses lets a folded alias match its accented spellings.
var accentClasses = map[rune]string{
	'a': "[aáàâä]",
	'e': "[eéèêë]",
	'i': "[iíìîï]",
	'o': "[oóòôö]",
	'u': "[uúùûü]",
	'n': "[nñ]",
}

// aliasPattern quotes alias for a regexp, accepting accented vowels and any
// run of whitespace between words.
func aliasPattern(alias string) string {
	var b strings.Builder
	for _, r := range regexp.QuoteMeta(alias) {
		switch {
		case r == ' ':
			b.WriteString(`\s+`)
		case accentClasses[r] != "":
			b.WriteString(accentClasses[r])
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// defaultLexicon is shared by the package level helpers.
var defaultLexicon = NewLexicon()

// AirlineDisplayName returns the display name of a known airline alias.
func (l *Lexicon) AirlineDisplayName(name string) (string, bool) {
	display, ok := l.airlines[textnorm.Fold(name)]
	return display, ok
}

// CountryCode maps a country name, or an ISO alpha-2 code written in upper
// case ("IT"), to the code.
func CountryCode(phrase string) (string, bool) {
	key := textnorm.Fold(phrase)
	if key == "" {
		return "", false
	}
	if code, ok := countryAliases[key]; ok {
		return code, true
	}
	phrase = strings.TrimSpace(phrase)
	if len(phrase) == 2 && phrase == strings.ToUpper(phrase) {
		if _, ok := countryCodes[phrase]; ok {
			return phrase, true
		}
	}
	return "", false
}

// MonthNumber returns 1–12 for a Spanish month name.
func MonthNumber(name string) (int, bool) {
	m, ok := months[textnorm.Fold(name)]
	return m, ok
}

func alternation(words []string) string {
	sorted := append([]string(nil), words...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	return strings.Join(sorted, "|")
}

func monthAlternation() string {
	names := make([]string, 0, len(months))
	for name := range months {
		names = append(names, name)
	}
	return alternation(names)
}

func numberWordAlternation() string {
	words := make([]string, 0, len(numberWords))
	for w := range numberWords {
		words = append(words, w)
	}
	return alternation(words)
}
