package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_KnownPairBothOrderings(t *testing.T) {
	want := knownPairs["gri|sasb"]
	assert.Equal(t, want, Resolve("GRI", "SASB", "", ""))
	assert.Equal(t, want, Resolve("SASB", "GRI", "", ""))
	assert.Equal(t, want, Resolve("GRI Standards", "SASB Standards", "", ""))
}

func TestResolve_SharedDescriptionKeyword(t *testing.T) {
	got := Resolve("FooFramework", "BarFramework",
		"A standard covering climate adaptation.",
		"Guidance on climate transition planning.",
	)
	assert.Equal(t, "climate-related risk and opportunity management", got)
}

func TestResolve_KeywordPriorityOrder(t *testing.T) {
	// Both "climate" and "risk" appear in both descriptions; the earlier
	// keyword in the scan order wins.
	got := Resolve("FooFramework", "BarFramework",
		"Climate risk standard.",
		"Risk and climate guidance.",
	)
	assert.Equal(t, "climate-related risk and opportunity management", got)
}

func TestResolve_DefaultAbbreviation(t *testing.T) {
	got := Resolve("TCFD", "FooFramework", "", "")
	assert.Equal(t, defaultThemes["tcfd"], got)

	// Works when the known framework is second.
	got = Resolve("FooFramework", "TCFD", "", "")
	assert.Equal(t, defaultThemes["tcfd"], got)
}

func TestResolve_GenericFallback(t *testing.T) {
	got := Resolve("FooFramework", "BarFramework", "alpha", "beta")
	assert.Equal(t, GenericConnection, got)
}

func TestResolve_Deterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t,
			Resolve("GRI", "TCFD", "impact", "climate"),
			Resolve("GRI", "TCFD", "impact", "climate"),
		)
	}
}

func TestAbbreviate(t *testing.T) {
	assert.Equal(t, "gri", abbreviate("GRI Standards 2021"))
	assert.Equal(t, "sasb", abbreviate("  SASB "))
	assert.Equal(t, "", abbreviate(""))
}
