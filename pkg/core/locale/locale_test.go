package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name        string
		tag         string
		wantTag     string
		wantTrailer string
		wantRecap   string
		wantSeason  string
	}{
		{"Italian", "it-IT", "it-IT", "trailer ita", "recap", "Stagione"},
		{"Mexican Spanish", "es-MX", "es-MX", "trailer español latino", "resumen", "Temporada"},
		{"German", "de-DE", "de-DE", "trailer deutsch", "Recap", "Staffel"},
		{"Turkish", "tr-TR", "tr-TR", "fragman türkçe", "özet", "Sezon"},
		{"Case insensitive", "FR-fr", "fr-FR", "bande annonce vf", "recap", "Saison"},
		{"Unknown falls back", "xx-YY", "en-US", "trailer", "recap", "Season"},
		{"Empty falls back", "", "en-US", "trailer", "recap", "Season"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Lookup(tc.tag)
			assert.Equal(t, tc.wantTag, p.Tag)
			assert.Equal(t, tc.wantTrailer, p.TrailerKeyword)
			assert.Equal(t, tc.wantRecap, p.RecapKeyword)
			assert.Equal(t, tc.wantSeason, p.SeasonWord)
		})
	}
}

func TestProfilesComplete(t *testing.T) {
	profiles := Supported()
	require.Len(t, profiles, 13)
	for _, p := range profiles {
		assert.NotEmpty(t, p.Name, p.Tag)
		assert.NotEmpty(t, p.TrailerKeyword, p.Tag)
		assert.NotEmpty(t, p.RecapKeyword, p.Tag)
		assert.NotEmpty(t, p.SeasonWord, p.Tag)
		assert.Len(t, p.Ordinals, 10, p.Tag)
		for n := 1; n <= 10; n++ {
			assert.NotEmpty(t, p.Ordinals[n], "%s ordinal %d", p.Tag, n)
		}
	}
}

func TestOrdinalsFor(t *testing.T) {
	it := Lookup("it-IT")
	assert.Equal(t, []string{"1", "uno", "prima", "first", "one"}, it.OrdinalsFor(1))
	assert.Equal(t, []string{"10", "dieci", "decima", "tenth", "ten"}, it.OrdinalsFor(10))
	assert.Equal(t, []string{"11"}, it.OrdinalsFor(11))
}

func TestSupportedReturnsCopy(t *testing.T) {
	a := Supported()
	a[0].Tag = "mutated"
	assert.Equal(t, "en-US", Supported()[0].Tag)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("ja-JP"))
	assert.False(t, Known("ja"))
}

func TestCountry(t *testing.T) {
	assert.Equal(t, "IT", Country("it-IT"))
	assert.Equal(t, "IN", Country("ta-IN"))
	assert.Equal(t, "IN", Country("hi-IN"))
	assert.Equal(t, "MX", Country("es-MX"))
	assert.Equal(t, "US", Country("en-US"))
	assert.Equal(t, "US", Country("nl-NL"))
	assert.Equal(t, "US", Country(""))
}

func TestIsEnglish(t *testing.T) {
	assert.True(t, IsEnglish("en-US"))
	assert.True(t, IsEnglish("en-GB"))
	assert.True(t, IsEnglish("EN"))
	assert.False(t, IsEnglish("it-IT"))
	assert.False(t, IsEnglish("es-MX"))
}

func TestSplit(t *testing.T) {
	tests := []struct {
		tag         string
		wantLang    string
		wantCountry string
	}{
		{"it-IT", "it", "IT"},
		{"pt-BR", "pt", "BR"},
		{"en-US", "en", "US"},
		{"de", "de", "US"},
		{"not a tag!", "en", "US"},
		{"", "en", "US"},
	}

	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			lang, country := Split(tc.tag)
			assert.Equal(t, tc.wantLang, lang)
			assert.Equal(t, tc.wantCountry, country)
		})
	}
}
