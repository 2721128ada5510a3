package model

import "testing"

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, ok := ParseCategory(string(c))
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %q, %v", c, got, ok)
		}
		if c.Label() == "" || c.Tagline() == "" {
			t.Errorf("category %q has no label", c)
		}
	}

	for _, s := range []string{"", "milk_tea", "GOLDEN_LEMON", "golden-lemon"} {
		if _, ok := ParseCategory(s); ok {
			t.Errorf("ParseCategory(%q) should be rejected", s)
		}
	}
}

func TestEntityBundleClone(t *testing.T) {
	b := EntityBundle{Locations: []Location{{Name: "台北市"}}}
	c := b.Clone()
	c.Locations[0].MapLink = "https://example.com"

	if b.Locations[0].MapLink != "" {
		t.Errorf("Clone() shares location storage with the original")
	}
}
