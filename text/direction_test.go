package text

import (
	"testing"
)

func TestCharDirection(t *testing.T) {
	tests := []struct {
		name string
		char rune
		want Direction
	}{
		{"Arabic alif", 'ا', RTL},
		{"Arabic meem", 'م', RTL},
		{"Hebrew alef", 'א', RTL},
		{"Hebrew shin", 'ש', RTL},
		{"Latin A", 'A', LTR},
		{"Latin é", 'é', LTR},
		{"Cyrillic я", 'я', LTR},
		{"Greek Omega", 'Ω', LTR},
		{"CJK 中", '中', LTR},
		{"Space", ' ', Neutral},
		{"Digit 5", '5', Neutral},
		{"Period", '.', Neutral},
		{"Percent", '%', Neutral},
		{"Plus-minus", '±', Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CharDirection(tt.char); got != tt.want {
				t.Errorf("CharDirection(%q U+%04X) = %v, want %v", tt.char, tt.char, got, tt.want)
			}
		})
	}
}

func TestDetectDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Direction
	}{
		{"English", "Accuracy", LTR},
		{"Russian", "Точность", LTR},
		{"Arabic", "مرحبا", RTL},
		{"Hebrew", "שלום", RTL},
		{"mostly English", "Hello مرحبا World", LTR},
		{"mostly Arabic", "مرحبا Hello عليكم", RTL},
		{"numbers only", "94.2%", Neutral},
		{"empty", "", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDirection(tt.text); got != tt.want {
				t.Errorf("DetectDirection(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDirectionString(t *testing.T) {
	if LTR.String() != "LTR" || RTL.String() != "RTL" || Neutral.String() != "Neutral" {
		t.Error("unexpected direction names")
	}
	if Direction(9).String() != "Unknown" {
		t.Errorf("Direction(9).String() = %q", Direction(9).String())
	}
}
