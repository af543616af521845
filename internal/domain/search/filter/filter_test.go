package filter

import (
	"reflect"
	"strings"
	"testing"
)

func items(texts ...string) []SearchableItem {
	out := make([]SearchableItem, len(texts))
	for i, t := range texts {
		out[i] = SearchableItem{ID: string(rune('a' + i)), Text: t}
	}
	return out
}

func texts(in []SearchableItem) []string {
	out := make([]string, len(in))
	for i, it := range in {
		out[i] = it.Text
	}
	return out
}

var catalog = items(
	"Machine Learning Fundamentals",
	"Deep Learning with PyTorch",
	"Natural Language Processing",
	"Computer Vision",
)

func TestFilter_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		in    []SearchableItem
		query string
		want  []string
	}{
		{
			"deep",
			items("Machine Learning Fundamentals", "Deep Learning"),
			"deep",
			[]string{"Deep Learning"},
		},
		{"empty input", nil, "anything", []string{}},
		{"empty query", catalog, "", texts(catalog)},
		{"shared substring keeps order", catalog, "learning",
			[]string{"Machine Learning Fundamentals", "Deep Learning with PyTorch"}},
		{"mixed case query", catalog, "ViSiOn", []string{"Computer Vision"}},
		{"mid-word", catalog, "angu", []string{"Natural Language Processing"}},
		{"no match", catalog, "quantum", []string{}},
		{"whitespace is significant", catalog, "computer  vision", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.in, tt.query)
			if got == nil {
				t.Fatal("expected non-nil result")
			}
			if !reflect.DeepEqual(texts(got), tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, texts(got), tt.want)
			}
		})
	}
}

func TestFilter_IsOrderedSubsequence(t *testing.T) {
	for _, q := range []string{"", "a", "in", "learning", "zzz", "N"} {
		got := Filter(catalog, q)
		j := 0
		for _, it := range got {
			for j < len(catalog) && catalog[j].ID != it.ID {
				j++
			}
			if j == len(catalog) {
				t.Fatalf("query %q: %q is not an ordered subsequence of the input", q, it.Text)
			}
			j++
		}
	}
}

func TestFilter_Idempotent(t *testing.T) {
	for _, q := range []string{"", "learning", "o", "vision"} {
		once := Filter(catalog, q)
		twice := Filter(once, q)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("query %q: not idempotent: %v vs %v", q, texts(once), texts(twice))
		}
	}
}

func TestFilter_CaseInsensitive(t *testing.T) {
	for _, q := range []string{"deep", "Learning", "NATURAL", "pyTorch"} {
		upper := Filter(catalog, strings.ToUpper(q))
		lower := Filter(catalog, strings.ToLower(q))
		if !reflect.DeepEqual(upper, lower) {
			t.Errorf("query %q: upper %v != lower %v", q, texts(upper), texts(lower))
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := items("b", "a", "ab")
	snapshot := append([]SearchableItem(nil), in...)

	got := Filter(in, "a")
	if len(got) > 0 {
		got[0].Text = "changed"
	}

	if !reflect.DeepEqual(in, snapshot) {
		t.Errorf("input mutated: %v", texts(in))
	}
}

func TestFilterBy_AnyField(t *testing.T) {
	type note struct{ title, body string }
	notes := []note{
		{"Neural Network Architectures", "Key concepts about CNNs, RNNs, and Transformers..."},
		{"Gradient Descent Optimization", "Notes on SGD, Adam, and learning rate scheduling..."},
		{"Transfer Learning Strategies", "Fine-tuning pre-trained models for specific tasks..."},
	}
	title := func(n note) string { return n.title }
	body := func(n note) string { return n.body }

	got := FilterBy(notes, "learning", title, body)
	if len(got) != 2 || got[0].title != "Gradient Descent Optimization" || got[1].title != "Transfer Learning Strategies" {
		t.Errorf("title-or-body: got %v", got)
	}

	got = FilterBy(notes, "learning", title)
	if len(got) != 1 || got[0].title != "Transfer Learning Strategies" {
		t.Errorf("title only: got %v", got)
	}
}

func TestFilterBy_NoFields(t *testing.T) {
	in := items("x", "y")
	if got := FilterBy(in, "x"); len(got) != 0 {
		t.Errorf("no fields with non-empty query: got %v", texts(got))
	}
	if got := FilterBy(in, ""); len(got) != 2 {
		t.Errorf("no fields with empty query: got %v", texts(got))
	}
}

func TestQueryFrom(t *testing.T) {
	if got := QueryFrom(nil); got != "" {
		t.Errorf("QueryFrom(nil) = %q", got)
	}
	q := "deep"
	if got := QueryFrom(&q); got != "deep" {
		t.Errorf("QueryFrom(&%q) = %q", q, got)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		query string
		texts []string
		want  bool
	}{
		{"", nil, true},
		{"", []string{"anything"}, true},
		{"deep", []string{"Deep Learning"}, true},
		{"deep", []string{"Vision", "deep dive"}, true},
		{"deep", []string{"Vision"}, false},
		{"longer than input", []string{"short"}, false},
	}
	for _, tc := range tests {
		if got := Matches(tc.query, tc.texts...); got != tc.want {
			t.Errorf("Matches(%q, %v) = %v, want %v", tc.query, tc.texts, got, tc.want)
		}
	}
}
