package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"videodub/internal/captions"
	"videodub/internal/logging"
	"videodub/internal/services"
)

type fakeTranslator struct {
	prefix  string
	failOn  map[string]bool
	calls   []string
	failAll bool
}

func (f *fakeTranslator) Translate(_ context.Context, text string) (string, error) {
	f.calls = append(f.calls, text)
	if f.failAll || f.failOn[text] {
		return "", errors.New("model choked")
	}
	return f.prefix + text, nil
}

// fakeLoader serves translators for a fixed set of model IDs and records the
// load order.
type fakeLoader struct {
	models map[string]*fakeTranslator
	loads  []string
}

func (f *fakeLoader) load(_ context.Context, modelID string) (Translator, error) {
	f.loads = append(f.loads, modelID)
	translator, ok := f.models[modelID]
	if !ok {
		return nil, fmt.Errorf("model %s not available", modelID)
	}
	return translator, nil
}

func segmentsFixture() []captions.Segment {
	return []captions.Segment{
		{Start: 0, End: 1, Text: "konnichiwa"},
		{Start: 1, End: 2, Text: "sayonara"},
	}
}

func TestModelID(t *testing.T) {
	if got := ModelID("ja", "zh"); got != "Helsinki-NLP/opus-mt-ja-zh" {
		t.Errorf("ModelID() = %q", got)
	}
}

func TestDirectRouteTranslatesAllSegments(t *testing.T) {
	loader := &fakeLoader{models: map[string]*fakeTranslator{
		"Helsinki-NLP/opus-mt-ja-zh": {prefix: "zh:"},
	}}
	chain := NewChain(loader.load, logging.NewNop())
	segments := segmentsFixture()

	report, err := chain.Translate(context.Background(), segments, "ja", "zh", false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if report.Route != RouteDirect {
		t.Errorf("route = %q, want direct", report.Route)
	}
	if report.Translated != 2 || report.Kept != 0 {
		t.Errorf("report = %+v", report)
	}
	if segments[0].Text != "zh:konnichiwa" || segments[1].Text != "zh:sayonara" {
		t.Errorf("segments not rewritten: %+v", segments)
	}
}

func TestDirectRoutePerSegmentFailureKeepsOriginal(t *testing.T) {
	loader := &fakeLoader{models: map[string]*fakeTranslator{
		"Helsinki-NLP/opus-mt-ja-zh": {prefix: "zh:", failOn: map[string]bool{"konnichiwa": true}},
	}}
	chain := NewChain(loader.load, logging.NewNop())
	segments := segmentsFixture()

	report, err := chain.Translate(context.Background(), segments, "ja", "zh", false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if segments[0].Text != "konnichiwa" {
		t.Errorf("failed segment text changed: %q", segments[0].Text)
	}
	if segments[1].Text != "zh:sayonara" {
		t.Errorf("sibling segment not translated: %q", segments[1].Text)
	}
	if report.Translated != 1 || report.Kept != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestDirectLoadFailureFallsBackToEnglishOnly(t *testing.T) {
	loader := &fakeLoader{models: map[string]*fakeTranslator{
		"Helsinki-NLP/opus-mt-ja-en": {prefix: "en:"},
	}}
	chain := NewChain(loader.load, logging.NewNop())
	segments := segmentsFixture()

	report, err := chain.Translate(context.Background(), segments, "ja", "zh", false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if report.Route != RouteEnglishOnly {
		t.Errorf("route = %q, want english-only", report.Route)
	}
	if segments[0].Text != "en:konnichiwa" {
		t.Errorf("segment = %q, want English text", segments[0].Text)
	}
	wantLoads := []string{"Helsinki-NLP/opus-mt-ja-zh", "Helsinki-NLP/opus-mt-ja-en"}
	if len(loader.loads) != len(wantLoads) {
		t.Fatalf("loads = %v, want %v", loader.loads, wantLoads)
	}
	for i, model := range wantLoads {
		if loader.loads[i] != model {
			t.Errorf("load[%d] = %q, want %q", i, loader.loads[i], model)
		}
	}
}

func TestEnglishIntermediateTwoHop(t *testing.T) {
	loader := &fakeLoader{models: map[string]*fakeTranslator{
		"Helsinki-NLP/opus-mt-ja-en": {prefix: "en:"},
		"Helsinki-NLP/opus-mt-en-zh": {prefix: "zh:"},
	}}
	chain := NewChain(loader.load, logging.NewNop())
	segments := segmentsFixture()

	report, err := chain.Translate(context.Background(), segments, "ja", "zh", true)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if report.Route != RouteEnglishIntermediate {
		t.Errorf("route = %q, want english-intermediate", report.Route)
	}
	if segments[0].Text != "zh:en:konnichiwa" {
		t.Errorf("two-hop text = %q", segments[0].Text)
	}
}

func TestEnglishIntermediateUsesMultilingualFallback(t *testing.T) {
	loader := &fakeLoader{models: map[string]*fakeTranslator{
		MultilingualToEnglishModel:   {prefix: "en:"},
		"Helsinki-NLP/opus-mt-en-zh": {prefix: "zh:"},
	}}
	chain := NewChain(loader.load, logging.NewNop())
	segments := segmentsFixture()

	report, err := chain.Translate(context.Background(), segments, "ja", "zh", true)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if report.Route != RouteEnglishIntermediate {
		t.Errorf("route = %q", report.Route)
	}
	if segments[1].Text != "zh:en:sayonara" {
		t.Errorf("text = %q", segments[1].Text)
	}
}

func TestEnglishIntermediateSecondHopLoadFailureDegrades(t *testing.T) {
	loader := &fakeLoader{models: map[string]*fakeTranslator{
		"Helsinki-NLP/opus-mt-ja-en": {prefix: "en:"},
	}}
	chain := NewChain(loader.load, logging.NewNop())
	segments := segmentsFixture()

	report, err := chain.Translate(context.Background(), segments, "ja", "zh", true)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if report.Route != RouteEnglishOnly {
		t.Errorf("route = %q, want english-only degradation", report.Route)
	}
	if segments[0].Text != "en:konnichiwa" {
		t.Errorf("text = %q", segments[0].Text)
	}
}

func TestTwoHopFailureKeepsNoPartialText(t *testing.T) {
	loader := &fakeLoader{models: map[string]*fakeTranslator{
		"Helsinki-NLP/opus-mt-ja-en": {prefix: "en:"},
		"Helsinki-NLP/opus-mt-en-zh": {prefix: "zh:", failOn: map[string]bool{"en:konnichiwa": true}},
	}}
	chain := NewChain(loader.load, logging.NewNop())
	segments := segmentsFixture()

	report, err := chain.Translate(context.Background(), segments, "ja", "zh", true)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if segments[0].Text != "konnichiwa" {
		t.Errorf("segment kept partial-hop text: %q", segments[0].Text)
	}
	if segments[1].Text != "zh:en:sayonara" {
		t.Errorf("sibling segment = %q", segments[1].Text)
	}
	if report.Translated != 1 || report.Kept != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestBlankSegmentsNeverSubmitted(t *testing.T) {
	translator := &fakeTranslator{prefix: "zh:"}
	loader := &fakeLoader{models: map[string]*fakeTranslator{
		"Helsinki-NLP/opus-mt-ja-zh": translator,
	}}
	chain := NewChain(loader.load, logging.NewNop())
	segments := []captions.Segment{
		{Start: 0, End: 1, Text: "   "},
		{Start: 1, End: 2, Text: "honto"},
		{Start: 2, End: 3, Text: ""},
	}

	report, err := chain.Translate(context.Background(), segments, "ja", "zh", false)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if report.Blank != 2 || report.Translated != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(translator.calls) != 1 || translator.calls[0] != "honto" {
		t.Errorf("translator calls = %v", translator.calls)
	}
	if segments[0].Text != "   " {
		t.Errorf("blank segment text changed: %q", segments[0].Text)
	}
}

func TestNoRouteLeavesSegmentsUntouched(t *testing.T) {
	loader := &fakeLoader{models: map[string]*fakeTranslator{}}
	chain := NewChain(loader.load, logging.NewNop())
	segments := segmentsFixture()

	report, err := chain.Translate(context.Background(), segments, "ja", "zh", true)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if report.Route != RouteNone {
		t.Errorf("route = %q, want none", report.Route)
	}
	if segments[0].Text != "konnichiwa" || segments[1].Text != "sayonara" {
		t.Errorf("segments changed with no capability: %+v", segments)
	}
}

func TestInvalidLanguagesAreStructuralErrors(t *testing.T) {
	loader := &fakeLoader{models: map[string]*fakeTranslator{}}
	chain := NewChain(loader.load, logging.NewNop())

	_, err := chain.Translate(context.Background(), segmentsFixture(), "", "zh", false)
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("empty source language error = %v, want ErrValidation", err)
	}

	_, err = chain.Translate(context.Background(), segmentsFixture(), "ja", "!!", false)
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("bad target language error = %v, want ErrValidation", err)
	}
}

func TestChainWithoutLoaderIsConfigurationError(t *testing.T) {
	chain := NewChain(nil, logging.NewNop())
	_, err := chain.Translate(context.Background(), segmentsFixture(), "ja", "zh", false)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestSegmentOrderPreserved(t *testing.T) {
	translator := &fakeTranslator{prefix: "zh:"}
	loader := &fakeLoader{models: map[string]*fakeTranslator{
		"Helsinki-NLP/opus-mt-ja-zh": translator,
	}}
	chain := NewChain(loader.load, logging.NewNop())

	var segments []captions.Segment
	for i := 0; i < 10; i++ {
		segments = append(segments, captions.Segment{Start: float64(i), End: float64(i + 1), Text: fmt.Sprintf("line-%02d", i)})
	}
	if _, err := chain.Translate(context.Background(), segments, "ja", "zh", false); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if len(translator.calls) != 10 {
		t.Fatalf("calls = %d", len(translator.calls))
	}
	for i, call := range translator.calls {
		if !strings.HasSuffix(call, fmt.Sprintf("-%02d", i)) {
			t.Errorf("call %d = %q, out of chronological order", i, call)
		}
	}
}
