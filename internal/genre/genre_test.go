package genre

import (
	"reflect"
	"testing"
)

var universe = []string{"classical", "country", "instrumental", "persian", "pop", "rap", "rnb", "rock", "traditional"}

func TestEncoder(t *testing.T) {
	enc := NewEncoder(universe)

	t.Run("empty set is the zero vector", func(t *testing.T) {
		vec := enc.Encode(nil)
		if len(vec) != len(universe) {
			t.Fatalf("expected length %d, got %d", len(universe), len(vec))
		}
		for i, bit := range vec {
			if bit != 0 {
				t.Errorf("position %d should be 0, got %d", i, bit)
			}
		}
	})

	t.Run("single genre sets exactly one bit", func(t *testing.T) {
		for i, g := range universe {
			vec := enc.Encode([]string{g})
			sum := 0
			for _, bit := range vec {
				sum += int(bit)
			}
			if sum != 1 {
				t.Errorf("Encode(%q) set %d bits, want 1", g, sum)
			}
			if vec[i] != 1 {
				t.Errorf("Encode(%q) should set position %d", g, i)
			}
		}
	})

	t.Run("unknown genres are ignored", func(t *testing.T) {
		vec := enc.Encode([]string{"pop", "vaporwave", "zydeco"})
		sum := 0
		for _, bit := range vec {
			sum += int(bit)
		}
		if sum != 1 {
			t.Errorf("expected only the known genre to be encoded, got %d bits", sum)
		}
	})

	t.Run("decode inverts encode", func(t *testing.T) {
		in := []string{"persian", "pop", "rock"}
		got := enc.Decode(enc.Encode(in))
		if !reflect.DeepEqual(got, in) {
			t.Errorf("Decode(Encode(%v)) = %v", in, got)
		}
	})

	t.Run("index of unknown genre", func(t *testing.T) {
		if got := enc.Index("vaporwave"); got != -1 {
			t.Errorf("Index(vaporwave) = %d, want -1", got)
		}
		if got := enc.Index("persian"); got != 3 {
			t.Errorf("Index(persian) = %d, want 3", got)
		}
	})
}

func TestForAge(t *testing.T) {
	tc := []struct {
		name string
		age  int
		want []string
	}{
		{name: "below all brackets", age: 0, want: []string{"pop", "rap", "rock"}},
		{name: "exact lowest bracket", age: 19, want: []string{"pop", "rap", "rock"}},
		{name: "inside a bracket", age: 20, want: []string{"pop", "rap", "rock"}},
		{name: "next bracket boundary", age: 24, want: []string{"pop", "rap", "rock"}},
		{name: "thirties", age: 36, want: []string{"pop", "rock", "rap", "country", "traditional"}},
		{name: "fifties", age: 60, want: []string{"rock", "pop", "country", "traditional"}},
		{name: "top bracket", age: 80, want: []string{"rock", "country", "traditional"}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := ForAge(tt.age)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ForAge(%d) = %v, want %v", tt.age, got, tt.want)
			}
		})
	}

	t.Run("same bracket gives same genres", func(t *testing.T) {
		if !reflect.DeepEqual(ForAge(20), ForAge(24)) {
			t.Error("ages 20 and 24 should share a bracket")
		}
	})

	t.Run("callers cannot mutate the table", func(t *testing.T) {
		got := ForAge(19)
		got[0] = "mutated"
		if ForAge(19)[0] != "pop" {
			t.Error("ForAge should return a copy")
		}
	})
}
