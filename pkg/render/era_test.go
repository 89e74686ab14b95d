package render

import (
	"testing"

	"gonum.org/v1/plot"
)

func TestFormatYear(t *testing.T) {
	tests := []struct {
		name       string
		year       float64
		scientific bool
		want       string
	}{
		{"negative traditional", -490, false, "490 BC"},
		{"positive traditional", 1066, false, "1066 AD"},
		{"zero traditional", 0, false, "0 AD"},
		{"negative scientific", -490, true, "490 BCE"},
		{"positive scientific", 1066, true, "1066 CE"},
		{"zero scientific", 0, true, "0 CE"},
		{"fractional", -323.5, false, "323.5 BC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatYear(tt.year, tt.scientific)
			if got != tt.want {
				t.Errorf("FormatYear(%v, %v) = %q, want %q", tt.year, tt.scientific, got, tt.want)
			}
		})
	}
}

func TestEraTickerRewritesMajorTicks(t *testing.T) {
	base := plot.ConstantTicks([]plot.Tick{
		{Value: -500, Label: "-500"},
		{Value: -250, Label: ""}, // minor
		{Value: 0, Label: "0"},
		{Value: 500, Label: "500"},
	})

	ticks := EraTicker{Base: base}.Ticks(-500, 500)

	want := []string{"500 BC", "", "0 AD", "500 AD"}
	if len(ticks) != len(want) {
		t.Fatalf("got %d ticks, want %d", len(ticks), len(want))
	}
	for i, tick := range ticks {
		if tick.Label != want[i] {
			t.Errorf("tick %d: label %q, want %q", i, tick.Label, want[i])
		}
	}
}

func TestEraTickerScientific(t *testing.T) {
	base := plot.ConstantTicks([]plot.Tick{{Value: -100, Label: "-100"}})

	ticks := EraTicker{Scientific: true, Base: base}.Ticks(-100, 0)
	if ticks[0].Label != "100 BCE" {
		t.Errorf("label = %q, want %q", ticks[0].Label, "100 BCE")
	}
}

func TestEraTickerDefaultBase(t *testing.T) {
	ticks := EraTicker{}.Ticks(-1000, 1000)
	if len(ticks) == 0 {
		t.Fatal("expected ticks from the default base ticker")
	}
	for _, tick := range ticks {
		if tick.IsMinor() {
			continue
		}
		if tick.Label == "" {
			t.Errorf("major tick at %v has no label", tick.Value)
		}
	}
}
