package locale

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// FallbackTag is the profile returned for unrecognized tags.
const FallbackTag = "en-US"

// FallbackCountry is used when a tag has no country mapping.
const FallbackCountry = "US"

// Profile holds the vocabulary used to build localized search queries.
type Profile struct {
	Tag            string // e.g. "it-IT"
	Name           string // Display name for configuration UIs
	TrailerKeyword string // Appended to trailer search queries
	RecapKeyword   string // Used in recap search queries
	SeasonWord     string // e.g. "Stagione"
	Country        string // Watch-provider catalog country
	// Ordinals lists accepted surface forms per season number 1-10.
	Ordinals map[int][]string
}

// OrdinalsFor returns the surface forms for season n, or just the digits
// when the table has no entry.
func (p Profile) OrdinalsFor(n int) []string {
	if forms, ok := p.Ordinals[n]; ok {
		return forms
	}
	return []string{strconv.Itoa(n)}
}

// profilesDB is keyed by lower-cased tag.
var profilesDB = map[string]Profile{}

// supported keeps the declaration order for configuration pages.
var supported []Profile

func init() {
	profiles := []Profile{
		{
			Tag: "en-US", Name: "English (US)", TrailerKeyword: "trailer", RecapKeyword: "recap", SeasonWord: "Season", Country: "US",
			Ordinals: ordinals(
				[]string{"one", "first"}, []string{"two", "second"}, []string{"three", "third"}, []string{"four", "fourth"},
				[]string{"five", "fifth"}, []string{"six", "sixth"}, []string{"seven", "seventh"}, []string{"eight", "eighth"},
				[]string{"nine", "ninth"}, []string{"ten", "tenth"},
			),
		},
		{
			Tag: "es-MX", Name: "Español (Latinoamérica)", TrailerKeyword: "trailer español latino", RecapKeyword: "resumen", SeasonWord: "Temporada", Country: "MX",
			Ordinals: ordinals(
				[]string{"uno", "primera", "first", "one"}, []string{"dos", "segunda", "second", "two"},
				[]string{"tres", "tercera", "third", "three"}, []string{"cuatro", "cuarta", "fourth", "four"},
				[]string{"cinco", "quinta", "fifth", "five"}, []string{"seis", "sexta", "sixth", "six"},
				[]string{"siete", "séptima", "seventh", "seven"}, []string{"ocho", "octava", "eighth", "eight"},
				[]string{"nueve", "novena", "ninth", "nine"}, []string{"diez", "décima", "tenth", "ten"},
			),
		},
		{
			Tag: "pt-BR", Name: "Português (Brasil)", TrailerKeyword: "trailer dublado", RecapKeyword: "recap", SeasonWord: "Temporada", Country: "BR",
			Ordinals: ordinals(
				[]string{"um", "primeira", "first", "one"}, []string{"dois", "segunda", "second", "two"},
				[]string{"três", "terceira", "third", "three"}, []string{"quatro", "quarta", "fourth", "four"},
				[]string{"cinco", "quinta", "fifth", "five"}, []string{"seis", "sexta", "sixth", "six"},
				[]string{"sete", "sétima", "seventh", "seven"}, []string{"oito", "oitava", "eighth", "eight"},
				[]string{"nove", "nona", "ninth", "nine"}, []string{"dez", "décima", "tenth", "ten"},
			),
		},
		{
			Tag: "de-DE", Name: "Deutsch", TrailerKeyword: "trailer deutsch", RecapKeyword: "Recap", SeasonWord: "Staffel", Country: "DE",
			Ordinals: ordinals(
				[]string{"eins", "erste", "first", "one"}, []string{"zwei", "zweite", "second", "two"},
				[]string{"drei", "dritte", "third", "three"}, []string{"vier", "vierte", "fourth", "four"},
				[]string{"fünf", "fünfte", "fifth", "five"}, []string{"sechs", "sechste", "sixth", "six"},
				[]string{"sieben", "siebte", "seventh", "seven"}, []string{"acht", "achte", "eighth", "eight"},
				[]string{"neun", "neunte", "ninth", "nine"}, []string{"zehn", "zehnte", "tenth", "ten"},
			),
		},
		{
			Tag: "fr-FR", Name: "Français", TrailerKeyword: "bande annonce vf", RecapKeyword: "recap", SeasonWord: "Saison", Country: "FR",
			Ordinals: ordinals(
				[]string{"un", "première", "first", "one"}, []string{"deux", "deuxième", "second", "two"},
				[]string{"trois", "troisième", "third", "three"}, []string{"quatre", "quatrième", "fourth", "four"},
				[]string{"cinq", "cinquième", "fifth", "five"}, []string{"six", "sixième", "sixth"},
				[]string{"sept", "septième", "seventh", "seven"}, []string{"huit", "huitième", "eighth", "eight"},
				[]string{"neuf", "neuvième", "ninth", "nine"}, []string{"dix", "dixième", "tenth", "ten"},
			),
		},
		{
			Tag: "es-ES", Name: "Español (España)", TrailerKeyword: "tráiler castellano", RecapKeyword: "resumen", SeasonWord: "Temporada", Country: "ES",
			Ordinals: ordinals(
				[]string{"uno", "primera", "first", "one"}, []string{"dos", "segunda", "second", "two"},
				[]string{"tres", "tercera", "third", "three"}, []string{"cuatro", "cuarta", "fourth", "four"},
				[]string{"cinco", "quinta", "fifth", "five"}, []string{"seis", "sexta", "sixth", "six"},
				[]string{"siete", "séptima", "seventh", "seven"}, []string{"ocho", "octava", "eighth", "eight"},
				[]string{"nueve", "novena", "ninth", "nine"}, []string{"diez", "décima", "tenth", "ten"},
			),
		},
		{
			Tag: "it-IT", Name: "Italiano", TrailerKeyword: "trailer ita", RecapKeyword: "recap", SeasonWord: "Stagione", Country: "IT",
			Ordinals: ordinals(
				[]string{"uno", "prima", "first", "one"}, []string{"due", "seconda", "second", "two"},
				[]string{"tre", "terza", "third", "three"}, []string{"quattro", "quarta", "fourth", "four"},
				[]string{"cinque", "quinta", "fifth", "five"}, []string{"sei", "sesta", "sixth", "six"},
				[]string{"sette", "settima", "seventh", "seven"}, []string{"otto", "ottava", "eighth", "eight"},
				[]string{"nove", "nona", "ninth", "nine"}, []string{"dieci", "decima", "tenth", "ten"},
			),
		},
		{
			Tag: "ru-RU", Name: "Русский", TrailerKeyword: "трейлер русский", RecapKeyword: "recap", SeasonWord: "Сезон", Country: "RU",
			Ordinals: ordinals(
				[]string{"один", "первый", "first", "one"}, []string{"два", "второй", "second", "two"},
				[]string{"три", "третий", "third", "three"}, []string{"четыре", "четвёртый", "fourth", "four"},
				[]string{"пять", "пятый", "fifth", "five"}, []string{"шесть", "шестой", "sixth", "six"},
				[]string{"семь", "седьмой", "seventh", "seven"}, []string{"восемь", "восьмой", "eighth", "eight"},
				[]string{"девять", "девятый", "ninth", "nine"}, []string{"десять", "десятый", "tenth", "ten"},
			),
		},
		{
			Tag: "ja-JP", Name: "日本語", TrailerKeyword: "予告編 日本語", RecapKeyword: "recap", SeasonWord: "シーズン", Country: "JP",
			Ordinals: ordinals(
				[]string{"一", "first", "one"}, []string{"二", "second", "two"}, []string{"三", "third", "three"},
				[]string{"四", "fourth", "four"}, []string{"五", "fifth", "five"}, []string{"六", "sixth", "six"},
				[]string{"七", "seventh", "seven"}, []string{"八", "eighth", "eight"}, []string{"九", "ninth", "nine"},
				[]string{"十", "tenth", "ten"},
			),
		},
		{
			Tag: "hi-IN", Name: "हिन्दी", TrailerKeyword: "ट्रेलर हिंदी", RecapKeyword: "recap", SeasonWord: "सीज़न", Country: "IN",
			Ordinals: ordinals(
				[]string{"एक", "पहला", "first", "one"}, []string{"दो", "दूसरा", "second", "two"},
				[]string{"तीन", "तीसरा", "third", "three"}, []string{"चार", "चौथा", "fourth", "four"},
				[]string{"पाँच", "पाँचवाँ", "fifth", "five"}, []string{"छह", "छठा", "sixth", "six"},
				[]string{"सात", "सातवाँ", "seventh", "seven"}, []string{"आठ", "आठवाँ", "eighth", "eight"},
				[]string{"नौ", "नौवाँ", "ninth", "nine"}, []string{"दस", "दसवाँ", "tenth", "ten"},
			),
		},
		{
			Tag: "tr-TR", Name: "Türkçe", TrailerKeyword: "fragman türkçe", RecapKeyword: "özet", SeasonWord: "Sezon", Country: "TR",
			Ordinals: ordinals(
				[]string{"bir", "birinci", "first", "one"}, []string{"iki", "ikinci", "second", "two"},
				[]string{"üç", "üçüncü", "third", "three"}, []string{"dört", "dördüncü", "fourth", "four"},
				[]string{"beş", "beşinci", "fifth", "five"}, []string{"altı", "altıncı", "sixth", "six"},
				[]string{"yedi", "yedinci", "seventh", "seven"}, []string{"sekiz", "sekizinci", "eighth", "eight"},
				[]string{"dokuz", "dokuzuncu", "ninth", "nine"}, []string{"on", "onuncu", "tenth", "ten"},
			),
		},
		{
			Tag: "ta-IN", Name: "தமிழ்", TrailerKeyword: "டிரெய்லர் தமிழ்", RecapKeyword: "recap", SeasonWord: "சீசன்", Country: "IN",
			Ordinals: ordinals(
				[]string{"ஒன்று", "முதல்", "first", "one"}, []string{"இரண்டு", "இரண்டாம்", "second", "two"},
				[]string{"மூன்று", "மூன்றாம்", "third", "three"}, []string{"நான்கு", "நான்காம்", "fourth", "four"},
				[]string{"ஐந்து", "ஐந்தாம்", "fifth", "five"}, []string{"ஆறு", "ஆறாம்", "sixth", "six"},
				[]string{"ஏழு", "ஏழாம்", "seventh", "seven"}, []string{"எட்டு", "எட்டாம்", "eighth", "eight"},
				[]string{"ஒன்பது", "ஒன்பதாம்", "ninth", "nine"}, []string{"பத்து", "பத்தாம்", "tenth", "ten"},
			),
		},
		{
			Tag: "pt-PT", Name: "Português (Portugal)", TrailerKeyword: "trailer português", RecapKeyword: "recap", SeasonWord: "Temporada", Country: "PT",
			Ordinals: ordinals(
				[]string{"um", "primeiro", "primeira", "first", "one"}, []string{"dois", "segundo", "segunda", "second", "two"},
				[]string{"três", "terceiro", "terceira", "third", "three"}, []string{"quatro", "quarto", "quarta", "fourth", "four"},
				[]string{"cinco", "quinto", "quinta", "fifth", "five"}, []string{"seis", "sexto", "sexta", "sixth", "six"},
				[]string{"sete", "sétimo", "sétima", "seventh", "seven"}, []string{"oito", "oitavo", "oitava", "eighth", "eight"},
				[]string{"nove", "nono", "nona", "ninth", "nine"}, []string{"dez", "décimo", "décima", "tenth", "ten"},
			),
		},
	}

	for _, p := range profiles {
		profilesDB[strings.ToLower(p.Tag)] = p
	}
	supported = profiles
}

// ordinals builds the 1..10 table, prefixing each entry with its digits.
func ordinals(words ...[]string) map[int][]string {
	m := make(map[int][]string, len(words))
	for i, w := range words {
		n := i + 1
		m[n] = append([]string{strconv.Itoa(n)}, w...)
	}
	return m
}

// Lookup returns the profile for tag, falling back to en-US.
func Lookup(tag string) Profile {
	if p, ok := profilesDB[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return p
	}
	return profilesDB[strings.ToLower(FallbackTag)]
}

// Known reports whether tag has its own profile.
func Known(tag string) bool {
	_, ok := profilesDB[strings.ToLower(strings.TrimSpace(tag))]
	return ok
}

// Supported returns the profiles in declaration order.
func Supported() []Profile {
	out := make([]Profile, len(supported))
	copy(out, supported)
	return out
}

// Country maps a language tag to the watch-provider catalog country.
// Unmapped tags use FallbackCountry.
func Country(tag string) string {
	if p, ok := profilesDB[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return p.Country
	}
	return FallbackCountry
}

// IsEnglish reports whether tag denotes English.
func IsEnglish(tag string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(tag)), "en")
}

// Split returns the language and country subtags used to localize search
// requests ("it-IT" -> "it", "IT"). A tag without an explicit region yields
// FallbackCountry; an unparseable tag yields "en", FallbackCountry.
func Split(tag string) (lang, country string) {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return "en", FallbackCountry
	}
	base, _ := t.Base()
	lang = base.String()
	if lang == "und" {
		lang = "en"
	}
	country = FallbackCountry
	if region, conf := t.Region(); conf == language.Exact {
		country = region.String()
	}
	return lang, country
}
