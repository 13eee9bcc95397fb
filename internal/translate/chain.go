package translate

import (
	"context"
	"fmt"
	"strings"

	"log/slog"

	"videodub/internal/captions"
	"videodub/internal/language"
	"videodub/internal/logging"
	"videodub/internal/services"
)

// Translator translates one text fragment. Implementations wrap an external
// model and may fail per call; the chain contains those failures.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Loader loads the translation capability behind a model identifier. A load
// failure moves the chain to its next stage; it is never fatal by itself.
type Loader func(ctx context.Context, modelID string) (Translator, error)

// ModelID builds the opus-mt identifier for a direct language pair.
func ModelID(src, tgt string) string {
	return fmt.Sprintf("Helsinki-NLP/opus-mt-%s-%s", src, tgt)
}

// MultilingualToEnglishModel is the generic fallback for the to-English hop
// when no language-specific model exists.
const MultilingualToEnglishModel = "Helsinki-NLP/opus-mt-mul-en"

// Routes taken by the chain, reported for observability and tests.
const (
	RouteDirect              = "direct"
	RouteEnglishIntermediate = "english-intermediate"
	RouteEnglishOnly         = "english-only"
	RouteNone                = "none"
)

// Report summarizes what one Translate call did.
type Report struct {
	Route      string
	Translated int // segments whose text was rewritten
	Kept       int // segments left unchanged after a translation failure
	Blank      int // whitespace-only segments never submitted
}

// Chain walks the fallback precedence using a single Loader for every model
// candidate.
type Chain struct {
	loader   Loader
	logger   *slog.Logger
	progress func(done, total int)
}

// NewChain constructs a chain over the given loader.
func NewChain(loader Loader, logger *slog.Logger) *Chain {
	return &Chain{loader: loader, logger: logging.NewComponentLogger(logger, "translate")}
}

// OnSegment registers a callback invoked after every visited segment,
// translated or not, with the count of segments handled so far.
func (c *Chain) OnSegment(fn func(done, total int)) {
	c.progress = fn
}

func (c *Chain) notify(done, total int) {
	if c.progress != nil {
		c.progress(done, total)
	}
}

// Translate rewrites segment text in place from srcLang to tgtLang. Segments
// are visited in order; per-segment failures keep the original text and never
// abort the remainder. Only structural problems (bad languages, missing
// loader) return an error.
func (c *Chain) Translate(ctx context.Context, segments []captions.Segment, srcLang, tgtLang string, allowEnglishIntermediate bool) (Report, error) {
	if c == nil || c.loader == nil {
		return Report{Route: RouteNone}, services.Wrap(services.ErrConfiguration, "translate", "chain", "no capability loader configured", nil)
	}
	src, err := language.Normalize(srcLang)
	if err != nil {
		return Report{Route: RouteNone}, services.Wrap(services.ErrValidation, "translate", "chain", "source language", err)
	}
	tgt, err := language.Normalize(tgtLang)
	if err != nil {
		return Report{Route: RouteNone}, services.Wrap(services.ErrValidation, "translate", "chain", "target language", err)
	}

	// Stage 1: direct model for the exact pair.
	direct, directModel, loadErr := c.loadFirst(ctx, ModelID(src, tgt))
	if loadErr == nil {
		report := c.applySingle(ctx, segments, direct, directModel)
		report.Route = RouteDirect
		return report, nil
	}
	c.logger.Warn("direct translation model unavailable",
		logging.String("model", ModelID(src, tgt)),
		logging.Error(loadErr),
	)

	if allowEnglishIntermediate && tgt != language.English {
		return c.translateViaEnglish(ctx, segments, src, tgt)
	}

	// Stage 3: English-only fallback so the run still produces readable
	// captions instead of untouched source text.
	return c.translateToEnglish(ctx, segments, src)
}

// translateViaEnglish performs the two-hop stage: source to English, then
// English to target. If the second hop cannot load, the chain degrades to
// source-to-English only.
func (c *Chain) translateViaEnglish(ctx context.Context, segments []captions.Segment, src, tgt string) (Report, error) {
	toEnglish, toEnglishModel, err := c.loadFirst(ctx, ModelID(src, language.English), MultilingualToEnglishModel)
	if err != nil {
		c.logger.Warn("no capability can reach English; leaving segments untranslated",
			logging.String("source", src),
			logging.Error(err),
		)
		return Report{Route: RouteNone, Kept: len(segments)}, nil
	}

	fromEnglish, fromEnglishModel, err := c.loadFirst(ctx, ModelID(language.English, tgt))
	if err != nil {
		c.logger.Warn("second hop model unavailable; degrading to English output",
			logging.String("model", ModelID(language.English, tgt)),
			logging.Error(err),
		)
		report := c.applySingle(ctx, segments, toEnglish, toEnglishModel)
		report.Route = RouteEnglishOnly
		return report, nil
	}

	report := Report{Route: RouteEnglishIntermediate}
	for i := range segments {
		text := strings.TrimSpace(segments[i].Text)
		if text == "" {
			report.Blank++
			c.notify(i+1, len(segments))
			continue
		}
		english, err := toEnglish.Translate(ctx, text)
		if err != nil {
			c.warnSegment(i, toEnglishModel, err)
			report.Kept++
			c.notify(i+1, len(segments))
			continue
		}
		final, err := fromEnglish.Translate(ctx, english)
		if err != nil {
			// No partial-hop text: the segment keeps its source text.
			c.warnSegment(i, fromEnglishModel, err)
			report.Kept++
			c.notify(i+1, len(segments))
			continue
		}
		segments[i].Text = final
		report.Translated++
		c.notify(i+1, len(segments))
	}
	return report, nil
}

// translateToEnglish performs the English-only fallback stage.
func (c *Chain) translateToEnglish(ctx context.Context, segments []captions.Segment, src string) (Report, error) {
	toEnglish, model, err := c.loadFirst(ctx, ModelID(src, language.English), MultilingualToEnglishModel)
	if err != nil {
		c.logger.Warn("no capability can reach English; leaving segments untranslated",
			logging.String("source", src),
			logging.Error(err),
		)
		return Report{Route: RouteNone, Kept: len(segments)}, nil
	}
	report := c.applySingle(ctx, segments, toEnglish, model)
	report.Route = RouteEnglishOnly
	return report, nil
}

// loadFirst walks an ordered candidate list and returns the first capability
// that loads, with the model that produced it.
func (c *Chain) loadFirst(ctx context.Context, candidates ...string) (Translator, string, error) {
	var lastErr error
	for _, modelID := range candidates {
		translator, err := c.loader(ctx, modelID)
		if err == nil && translator != nil {
			return translator, modelID, nil
		}
		if err == nil {
			err = fmt.Errorf("loader returned no capability for %s", modelID)
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no model candidates")
	}
	return nil, "", lastErr
}

// applySingle translates every non-blank segment through one capability,
// keeping originals on per-segment failure.
func (c *Chain) applySingle(ctx context.Context, segments []captions.Segment, translator Translator, model string) Report {
	var report Report
	for i := range segments {
		text := strings.TrimSpace(segments[i].Text)
		if text == "" {
			report.Blank++
			c.notify(i+1, len(segments))
			continue
		}
		translated, err := translator.Translate(ctx, text)
		if err != nil {
			c.warnSegment(i, model, err)
			report.Kept++
			c.notify(i+1, len(segments))
			continue
		}
		segments[i].Text = translated
		report.Translated++
		c.notify(i+1, len(segments))
	}
	return report
}

func (c *Chain) warnSegment(index int, model string, err error) {
	c.logger.Warn("segment translation failed; keeping original text",
		logging.Int(logging.FieldSegment, index+1),
		logging.String("model", model),
		logging.Error(err),
	)
}
