package input

import (
	"errors"
	"testing"

	"github.com/busarovalex/snap-kombination/internal/core/deck"
	"github.com/busarovalex/snap-kombination/internal/core/permute"
)

func turnLimit(n uint8) *uint8 {
	return &n
}

func validDocument() Document {
	return Document{
		CostProfile: []uint8{1, 3, 3, 2, 2, 1, 0},
		Cards: []CardName{
			{Name: "Sunspot", Cost: 1},
			{Name: "Armor", Cost: 2},
			{Name: "Wolfsbane", Cost: 3},
		},
		ConditionReferences: []NamedCondition{
			{
				Name: "early sunspot",
				Condition: ConditionSpec{
					CardName:        "Sunspot",
					ComesAtOrBefore: turnLimit(2),
				},
			},
		},
		Analysis: []AnalysisSpec{
			{
				Kind: "custom",
				Name: "sunspot into armor",
				Conditions: []ConditionSpec{
					{AllOf: []ConditionSpec{
						{Reference: "early sunspot"},
						{CardName: "Armor", ComesAtOrBefore: turnLimit(3)},
					}},
				},
			},
			{
				Kind: "cost_efficiency",
				Name: "curve",
			},
		},
	}
}

func TestParseValidDocument(t *testing.T) {
	executors, err := Parse(validDocument(), 10_000_000)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(executors) != 2 {
		t.Fatalf("got %d executors, want 2", len(executors))
	}
	if names := executors[0].Analyses(); len(names) != 1 || names[0] != "sunspot into armor" {
		t.Errorf("first executor analyses = %v", names)
	}
	if names := executors[1].Analyses(); len(names) != 1 || names[0] != "curve" {
		t.Errorf("second executor analyses = %v", names)
	}
}

func TestParseCustomAnalysisRuns(t *testing.T) {
	doc := validDocument()
	doc.Analysis = doc.Analysis[:1]
	executors, err := Parse(doc, 10_000_000)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	factory := func(d deck.Deck[deck.CardIdentity]) permute.Iterator[deck.CardIdentity] {
		return permute.NewMultiset(d)
	}
	results, err := executors[0].Execute(factory, false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	m := results[0].AsMap()
	// Two distinct cards in twelve slots: 12 * 11 = 132 arrangements.
	if m["total_amount"] != "132" {
		t.Errorf("total_amount = %s, want 132", m["total_amount"])
	}
	if m["count"] == "0" || m["count"] == "132" {
		t.Errorf("count = %s, want a non-trivial fraction", m["count"])
	}
}

func TestParseCostEfficiencyDeckFromProfile(t *testing.T) {
	doc := Document{
		CostProfile: []uint8{1, 3, 3, 2, 2, 1, 0},
		Analysis:    []AnalysisSpec{{Kind: "cost_efficiency", Name: "curve"}},
	}
	executors, err := Parse(doc, 10_000_000)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	factory := func(d deck.Deck[deck.CardIdentity]) permute.Iterator[deck.CardIdentity] {
		return permute.NewMultiset(d)
	}
	// 12! / (1! 3! 3! 2! 2! 1!) = 3_326_400.
	if got := executors[0].PermutationCount(factory); got != 3_326_400 {
		t.Errorf("PermutationCount = %d, want 3326400", got)
	}
}

func TestParseValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Document)
		want   error
	}{
		{
			name:   "profile too short",
			mutate: func(d *Document) { d.CostProfile = []uint8{1, 2, 3} },
			want:   ErrProfileLength,
		},
		{
			name:   "profile sum mismatch",
			mutate: func(d *Document) { d.CostProfile = []uint8{1, 1, 1, 1, 1, 1, 1} },
			want:   ErrProfileCardCount,
		},
		{
			name: "duplicate card name",
			mutate: func(d *Document) {
				d.Cards = append(d.Cards, CardName{Name: "Sunspot", Cost: 1})
			},
			want: ErrDuplicateCardName,
		},
		{
			name: "card cost above maximum",
			mutate: func(d *Document) {
				d.Cards = append(d.Cards, CardName{Name: "Infinaut", Cost: 7})
			},
			want: ErrCardCost,
		},
		{
			name: "no free slot at cost",
			mutate: func(d *Document) {
				d.Cards = append(d.Cards, CardName{Name: "Nightcrawler", Cost: 1},
					CardName{Name: "Ant-Man", Cost: 1},
					CardName{Name: "Iceman", Cost: 1})
			},
			want: ErrNoFreeCardWithCost,
		},
		{
			name: "unknown card in condition",
			mutate: func(d *Document) {
				d.Analysis[0].Conditions = []ConditionSpec{
					{CardName: "Galactus", ComesAtOrBefore: turnLimit(2)},
				}
			},
			want: ErrUnknownCardName,
		},
		{
			name: "duplicate reference",
			mutate: func(d *Document) {
				d.ConditionReferences = append(d.ConditionReferences, d.ConditionReferences[0])
			},
			want: ErrDuplicateReference,
		},
		{
			name: "unknown reference",
			mutate: func(d *Document) {
				d.Analysis[0].Conditions = []ConditionSpec{{Reference: "late sunspot"}}
			},
			want: ErrUnknownReference,
		},
		{
			name:   "unknown analysis kind",
			mutate: func(d *Document) { d.Analysis[0].Kind = "mulligan" },
			want:   ErrAnalysisKind,
		},
		{
			name: "cost efficiency with conditions",
			mutate: func(d *Document) {
				d.Analysis[1].Conditions = []ConditionSpec{{Reference: "early sunspot"}}
			},
			want: ErrAnalysisKind,
		},
		{
			name: "empty condition node",
			mutate: func(d *Document) {
				d.Analysis[0].Conditions = []ConditionSpec{{}}
			},
			want: ErrConditionFormat,
		},
		{
			name: "card condition without turn",
			mutate: func(d *Document) {
				d.Analysis[0].Conditions = []ConditionSpec{{CardName: "Sunspot"}}
			},
			want: ErrConditionFormat,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDocument()
			tc.mutate(&doc)
			if _, err := Parse(doc, 10_000_000); !errors.Is(err, tc.want) {
				t.Errorf("Parse error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestReadFileJSON(t *testing.T) {
	doc, err := ReadFile("testdata/analysis.json")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(doc.Cards) != 3 {
		t.Errorf("got %d cards, want 3", len(doc.Cards))
	}
	if _, err := Parse(doc, 10_000_000); err != nil {
		t.Errorf("Parse: %v", err)
	}
}

func TestReadFileYAML(t *testing.T) {
	doc, err := ReadFile("testdata/analysis.yaml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(doc.Analysis) != 2 {
		t.Errorf("got %d analyses, want 2", len(doc.Analysis))
	}
	if _, err := Parse(doc, 10_000_000); err != nil {
		t.Errorf("Parse: %v", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile("testdata/nope.json"); err == nil {
		t.Error("expected error for a missing file")
	}
}
