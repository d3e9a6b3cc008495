package main

import "testing"

func TestParseSets(t *testing.T) {
	got, err := parseSets([]string{"velocity=7.5", "damping=off", " length =3"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"velocity": 7.5, "damping": 0, "length": 3}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s: expected %g, got %g", name, v, got[name])
		}
	}
}

func TestParseSetsRejectsMalformed(t *testing.T) {
	for _, pair := range []string{"velocity", "velocity=fast", "=3x"} {
		if _, err := parseSets([]string{pair}); err == nil {
			t.Errorf("%q: expected an error", pair)
		}
	}
}
