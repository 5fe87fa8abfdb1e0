package scoring

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNumberCoercion(t *testing.T) {
	f := Fields{
		"a": "60000",
		"b": " 42.5 ",
		"c": float64(7),
		"d": 12,
	}
	for name, want := range map[string]float64{"a": 60000, "b": 42.5, "c": 7, "d": 12} {
		got, err := f.requireNumber(name)
		if err != nil {
			t.Fatalf("requireNumber(%s): %v", name, err)
		}
		if got != want {
			t.Fatalf("requireNumber(%s) = %v, want %v", name, got, want)
		}
	}
}

func TestRequireNumberFailures(t *testing.T) {
	f := Fields{"bad": "not-a-number", "nil": nil}
	for _, name := range []string{"bad", "nil", "missing"} {
		_, err := f.requireNumber(name)
		var fe *InvalidFieldError
		if !errors.As(err, &fe) || fe.Field != name {
			t.Fatalf("requireNumber(%s): expected InvalidFieldError, got %v", name, err)
		}
	}
}

func TestOptionalNumberDefaults(t *testing.T) {
	f := Fields{"empty": "", "set": "3"}
	if v, err := f.optionalNumber("absent", 5); err != nil || v != 5 {
		t.Fatalf("absent: got %v, %v", v, err)
	}
	if v, err := f.optionalNumber("empty", 5); err != nil || v != 5 {
		t.Fatalf("empty string: got %v, %v", v, err)
	}
	if v, err := f.optionalNumber("set", 5); err != nil || v != 3 {
		t.Fatalf("set: got %v, %v", v, err)
	}
	if _, err := f.optionalNumber("bad", 5); err != nil {
		t.Fatalf("absent bad: %v", err)
	}
	f["bad"] = "xyz"
	if _, err := f.optionalNumber("bad", 5); err == nil {
		t.Fatal("present but unparsable value should error")
	}
}

func TestEnumMatchingIsCaseInsensitive(t *testing.T) {
	f := Fields{"m": "hot", "r": "PRE-FORECLOSURE"}
	got, err := f.requireEnum("m", "Hot", "Warm", "Cold", "Neutral")
	if err != nil || got != "Hot" {
		t.Fatalf("got %q, %v", got, err)
	}
	got, err = f.requireEnum("r", "None", "Tax Lien", "Pre-Foreclosure")
	if err != nil || got != "Pre-Foreclosure" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestFieldsSurviveJSONRoundTrip(t *testing.T) {
	// numbers decoded from JSON arrive as float64, strings stay strings
	raw := `{"purchase_price": 30000, "market_value": "60000", "seller_motivation": "Hot",
	         "road_access": "Yes", "utilities": "Yes", "environmental_risk": "None"}`
	var f Fields
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	res, err := NewEngine().Analyze(Land, f)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if res.SniperScore != 85 {
		t.Fatalf("score = %d, want 85", res.SniperScore)
	}
}
