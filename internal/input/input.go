// Package input reads analysis documents and assembles executors from them.
//
// A document names a cost profile for the whole deck, a card catalog,
// reusable named conditions, and the analyses to run. JSON and YAML
// encodings are supported.
package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/busarovalex/snap-kombination/internal/core/analysis"
	"github.com/busarovalex/snap-kombination/internal/core/condition"
	"github.com/busarovalex/snap-kombination/internal/core/deck"
)

// Validation errors for analysis documents.
var (
	ErrProfileLength       = errors.New("cost profile has wrong length")
	ErrProfileCardCount    = errors.New("cost profile card count does not match deck size")
	ErrDuplicateCardName   = errors.New("card name is listed more than once in card list")
	ErrNoFreeCardWithCost  = errors.New("no room left in cost profile for card")
	ErrUnknownCardName     = errors.New("card name in analysis is unknown")
	ErrCardCost            = errors.New("invalid card cost")
	ErrAnalysisKind        = errors.New("invalid analysis kind or format")
	ErrDuplicateReference  = errors.New("condition reference exists at least twice")
	ErrUnknownReference    = errors.New("condition reference in analysis is unknown")
	ErrConditionFormat     = errors.New("condition must set exactly one of card_name, all_of, any_of or reference")
)

// Document is the top-level analysis configuration.
type Document struct {
	CostProfile         []uint8          `json:"cost_profile" yaml:"cost_profile"`
	Cards               []CardName       `json:"cards" yaml:"cards"`
	ConditionReferences []NamedCondition `json:"condition_references" yaml:"condition_references"`
	Analysis            []AnalysisSpec   `json:"analysis" yaml:"analysis"`
}

// CardName declares one identified card and its cost.
type CardName struct {
	Name string `json:"name" yaml:"name"`
	Cost uint8  `json:"cost" yaml:"cost"`
}

// NamedCondition is a reusable condition other conditions can reference.
type NamedCondition struct {
	Name      string        `json:"name" yaml:"name"`
	Condition ConditionSpec `json:"condition" yaml:"condition"`
}

// AnalysisSpec selects one analysis to run: kind "custom" with conditions,
// or kind "cost_efficiency" without.
type AnalysisSpec struct {
	Kind       string          `json:"kind" yaml:"kind"`
	Name       string          `json:"name" yaml:"name"`
	Conditions []ConditionSpec `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// ConditionSpec is one node of a condition document: exactly one of the
// variant fields must be set. A card condition sets CardName together with
// ComesAtOrBefore.
type ConditionSpec struct {
	CardName        string          `json:"card_name,omitempty" yaml:"card_name,omitempty"`
	ComesAtOrBefore *uint8          `json:"comes_at_or_before,omitempty" yaml:"comes_at_or_before,omitempty"`
	AllOf           []ConditionSpec `json:"all_of,omitempty" yaml:"all_of,omitempty"`
	AnyOf           []ConditionSpec `json:"any_of,omitempty" yaml:"any_of,omitempty"`
	Reference       string          `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// ReadFile loads a document from a JSON or YAML file, chosen by extension.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read input file: %w", err)
	}
	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("decode yaml input: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("decode json input: %w", err)
		}
	}
	return doc, nil
}

// Parse validates a document and assembles one executor per analysis entry,
// each gated by the given warning threshold.
func Parse(doc Document, threshold uint64) ([]*analysis.Executor, error) {
	if len(doc.CostProfile) != deck.MaxCost+1 {
		return nil, fmt.Errorf("%w: length %d, should be %d",
			ErrProfileLength, len(doc.CostProfile), deck.MaxCost+1)
	}
	var profile deck.CostProfile
	copy(profile[:], doc.CostProfile)
	if cards := profile.Cards(); cards != deck.MaxSize {
		return nil, fmt.Errorf("%w: sum of cost profile is %d, should be %d",
			ErrProfileCardCount, cards, deck.MaxSize)
	}

	catalog, err := buildCatalog(doc.Cards, profile)
	if err != nil {
		return nil, err
	}
	references, err := buildReferences(doc.ConditionReferences)
	if err != nil {
		return nil, err
	}

	executors := make([]*analysis.Executor, 0, len(doc.Analysis))
	for _, spec := range doc.Analysis {
		e, err := buildExecutor(spec, catalog, references, profile, threshold)
		if err != nil {
			return nil, fmt.Errorf("analysis %q: %w", spec.Name, err)
		}
		executors = append(executors, e)
	}
	return executors, nil
}

// buildCatalog assigns sequential card ids to named cards, consuming slots
// from the cost profile so every name fits the declared curve.
func buildCatalog(cards []CardName, profile deck.CostProfile) (map[string]deck.Card, error) {
	catalog := make(map[string]deck.Card, len(cards))
	nextID := uint8(0)
	for _, card := range cards {
		if _, ok := catalog[card.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCardName, card.Name)
		}
		if card.Cost > deck.MaxCost {
			return nil, fmt.Errorf("%w: %d", ErrCardCost, card.Cost)
		}
		if profile[card.Cost] == 0 {
			return nil, fmt.Errorf("%w: %q at cost %d", ErrNoFreeCardWithCost, card.Name, card.Cost)
		}
		profile[card.Cost]--
		catalog[card.Name] = deck.NewCard(nextID, card.Cost)
		nextID++
	}
	return catalog, nil
}

func buildReferences(named []NamedCondition) (map[string]ConditionSpec, error) {
	references := make(map[string]ConditionSpec, len(named))
	for _, ref := range named {
		if _, ok := references[ref.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateReference, ref.Name)
		}
		references[ref.Name] = ref.Condition
	}
	return references, nil
}

func buildExecutor(
	spec AnalysisSpec,
	catalog map[string]deck.Card,
	references map[string]ConditionSpec,
	profile deck.CostProfile,
	threshold uint64,
) (*analysis.Executor, error) {
	switch {
	case spec.Kind == "custom" && spec.Conditions != nil:
		return buildCustom(spec, catalog, references, threshold)
	case spec.Kind == "cost_efficiency" && spec.Conditions == nil:
		d := profile.CostDeck()
		return analysis.NewExecutor(
			d,
			analysis.StandardTurnProfile(d.Size()),
			[]analysis.Analysis{analysis.NewCostEfficiency(spec.Name)},
			threshold,
		), nil
	default:
		return nil, ErrAnalysisKind
	}
}

// buildCustom assembles a condition-count executor. Every identified card a
// condition references joins the analysis deck once; the remaining slots are
// filled with empty placeholders.
func buildCustom(
	spec AnalysisSpec,
	catalog map[string]deck.Card,
	references map[string]ConditionSpec,
	threshold uint64,
) (*analysis.Executor, error) {
	var cards []deck.CardIdentity
	var conditions []condition.Condition
	for _, cond := range spec.Conditions {
		built, err := buildCondition(cond, catalog, references, &cards)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, built)
	}

	for len(cards) < deck.MaxSize {
		cards = append(cards, deck.NoCard)
	}

	count := analysis.NewConditionCount(spec.Name, condition.NewAllOf(conditions...))
	d := deck.New(cards)
	return analysis.NewExecutor(
		d,
		analysis.StandardTurnProfile(d.Size()),
		[]analysis.Analysis{count},
		threshold,
	), nil
}

// buildCondition translates one condition node, collecting every referenced
// card into the analysis deck. Each node is wrapped in a latch so that its
// result sticks for the remainder of a deck scan.
func buildCondition(
	spec ConditionSpec,
	catalog map[string]deck.Card,
	references map[string]ConditionSpec,
	cards *[]deck.CardIdentity,
) (condition.Condition, error) {
	switch {
	case spec.CardName != "" && spec.ComesAtOrBefore != nil:
		card, ok := catalog[spec.CardName]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCardName, spec.CardName)
		}
		identity := deck.Identified(card)
		if !containsIdentity(*cards, identity) {
			*cards = append(*cards, identity)
		}
		return condition.NewLatch(condition.NewAllOf(
			condition.NewCardID(card.ID()),
			condition.NewComesAtOrBefore(deck.TurnNumber(*spec.ComesAtOrBefore)),
		)), nil

	case spec.AllOf != nil:
		children, err := buildChildren(spec.AllOf, catalog, references, cards)
		if err != nil {
			return nil, err
		}
		return condition.NewLatch(condition.NewAllOf(children...)), nil

	case spec.AnyOf != nil:
		children, err := buildChildren(spec.AnyOf, catalog, references, cards)
		if err != nil {
			return nil, err
		}
		return condition.NewLatch(condition.NewAnyOf(children...)), nil

	case spec.Reference != "":
		referenced, ok := references[spec.Reference]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownReference, spec.Reference)
		}
		return buildCondition(referenced, catalog, references, cards)

	default:
		return nil, ErrConditionFormat
	}
}

func buildChildren(
	specs []ConditionSpec,
	catalog map[string]deck.Card,
	references map[string]ConditionSpec,
	cards *[]deck.CardIdentity,
) ([]condition.Condition, error) {
	children := make([]condition.Condition, 0, len(specs))
	for _, spec := range specs {
		child, err := buildCondition(spec, catalog, references, cards)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func containsIdentity(cards []deck.CardIdentity, identity deck.CardIdentity) bool {
	for _, card := range cards {
		if card == identity {
			return true
		}
	}
	return false
}
