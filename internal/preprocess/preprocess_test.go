package preprocess

import (
	"testing"
	"unicode"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"lowercases", "Bagus Sekali", "bagus sekali"},
		{"drops punctuation", "mantap!!! (sangat), ok?", "mantap sangat ok"},
		{"drops digits", "harga 100rb naik 2x", "harga rb naik x"},
		{"trims", "   halo   ", "halo"},
		{"underscore", "_ abc_def", "abcdef"},
		{"keeps unicode letters", "Çok güzel", "çok güzel"},
		{"empty string", "", ""},
		{"only symbols", "!!! 123 ???", ""},
		{"nil", nil, ""},
		{"float", 3.14, ""},
		{"int", 42, ""},
		{"bool", true, ""},
		{"bytes", []byte("halo"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText(%#v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRemoveStopwords(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"saya tidak suka makanan ini", "suka makanan"},
		{"yang  dan   di", ""},
		{"pelayanan cepat", "pelayanan cepat"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := RemoveStopwords(tt.input); got != tt.want {
			t.Errorf("RemoveStopwords(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"makanan", "makan"},
		{"memakan", "makan"},
		{"berlari", "lari"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Stem(tt.input); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"gw gak suka", "saya tidak suka"},
		{"btw yg ini", "by the way yang ini"},
		{"gwgak sukaa", "gwgak sukaa"},
		{"  klo   dgn  ", "kalau dengan"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeCanonicalValuesAreNotKeys(t *testing.T) {
	for key, value := range slang {
		if again := Normalize(value); again != value {
			t.Errorf("value %q for %q normalizes further to %q", value, key, again)
		}
	}
}

func TestPipeline(t *testing.T) {
	raw := "Gw GAK suka!! 123 makanan ini"

	if got := (Pipeline{}).Apply(raw); got != "gw gak suka  makanan ini" {
		t.Errorf("disabled pipeline = %q", got)
	}
	if got := (Pipeline{Enabled: true}).Apply(raw); got != "saya tidak suka makan" {
		t.Errorf("enabled pipeline = %q", got)
	}
	if got := (Pipeline{Enabled: true}).Apply(12.5); got != "" {
		t.Errorf("non-text input = %q, want empty", got)
	}
}

func TestPipelineApplyAllKeepsLength(t *testing.T) {
	values := []any{"Bagus!", nil, 7.0, "jelek"}
	got := Pipeline{}.ApplyAll(values)
	want := []string{"bagus", "", "", "jelek"}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func FuzzCleanText(f *testing.F) {
	f.Add("Halo, Dunia! 2024")
	f.Add("")
	f.Add("\xff\xfe")
	f.Add("\x00")
	f.Add("½ ¾ Ⅻ ٣")
	f.Add("emoji 😀 ok")

	f.Fuzz(func(t *testing.T, text string) {
		got := CleanText(text)
		for _, r := range got {
			if unicode.IsDigit(r) || unicode.IsPunct(r) {
				t.Fatalf("CleanText(%q) = %q contains %q", text, got, r)
			}
		}
		if CleanText(got) != got {
			t.Fatalf("CleanText not stable on %q", got)
		}
	})
}

func FuzzNormalizeIdempotent(f *testing.F) {
	f.Add("gw gak suka")
	f.Add("btw nih")
	f.Add("")

	f.Fuzz(func(t *testing.T, text string) {
		once := Normalize(text)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent: %q -> %q -> %q", text, once, twice)
		}
	})
}
