package resolve

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// FallbackFonts are used for fonts the host cannot load.
var FallbackFonts = []scene.FontName{
	{Family: "Inter", Style: "Regular"},
	{Family: "Inter", Style: "Thin"},
	{Family: "Inter", Style: "Extra Light"},
	{Family: "Inter", Style: "Light"},
	{Family: "Inter", Style: "Medium"},
	{Family: "Inter", Style: "Semi Bold"},
	{Family: "Inter", Style: "Bold"},
	{Family: "Inter", Style: "Extra Bold"},
	{Family: "Inter", Style: "Black"},
}

// FontResult is the outcome of [LoadFonts].
type FontResult struct {
	// Available lists the requested fonts that loaded, in request order.
	Available []scene.FontName
	// Missing lists the requested fonts that did not, in request order.
	Missing []scene.FontName
	// Replacements maps encoded missing fonts to encoded replacements.
	Replacements map[string]string
	Report       Report
}

// FontReplacement picks the replacement for a missing font: the first
// fallback with the same style, else the first fallback. It reports false
// when fallbacks is empty.
func FontReplacement(missing scene.FontName, fallbacks []scene.FontName) (scene.FontName, bool) {
	for _, f := range fallbacks {
		if f.Style == missing.Style {
			return f, true
		}
	}
	if len(fallbacks) == 0 {
		return scene.FontName{}, false
	}
	return fallbacks[0], true
}

type fontSlot struct {
	ok      bool
	replace string
	outcome Outcome
}

// LoadFonts loads every requested font concurrently and computes
// replacements for the ones that fail. The only error is a font name that
// cannot be encoded.
func LoadFonts(ctx context.Context, loader host.FontLoader, requested, fallbacks []scene.FontName, logger *log.Logger) (*FontResult, error) {
	logger = orDiscard(logger)

	encoded := make([]string, len(requested))
	for i, f := range requested {
		enc, err := scene.EncodeFont(f)
		if err != nil {
			return nil, err
		}
		encoded[i] = enc
	}
	fallbackKeys := make([]string, len(fallbacks))
	for i, f := range fallbacks {
		enc, err := scene.EncodeFont(f)
		if err != nil {
			return nil, err
		}
		fallbackKeys[i] = enc
	}

	slots := make([]fontSlot, len(requested))
	var wg sync.WaitGroup
	for i, font := range requested {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slots[i] = loadFont(ctx, loader, font, encoded[i], fallbacks, fallbackKeys, logger)
		}()
	}
	wg.Wait()

	res := &FontResult{Replacements: make(map[string]string)}
	for i, slot := range slots {
		if slot.ok {
			res.Available = append(res.Available, requested[i])
		} else {
			res.Missing = append(res.Missing, requested[i])
			if slot.replace != "" {
				res.Replacements[encoded[i]] = slot.replace
			}
		}
		res.Report.Outcomes = append(res.Report.Outcomes, slot.outcome)
	}
	return res, nil
}

func loadFont(ctx context.Context, loader host.FontLoader, font scene.FontName, key string, fallbacks []scene.FontName, fallbackKeys []string, logger *log.Logger) fontSlot {
	err := loader.LoadFont(ctx, font)
	if err == nil {
		return fontSlot{ok: true, outcome: Outcome{Subject: key, Status: StatusLoaded}}
	}

	replacement, ok := FontReplacement(font, fallbacks)
	if !ok {
		logger.Error("font not available and no fallbacks configured", "font", key, "err", err)
		return fontSlot{outcome: Outcome{Subject: key, Status: StatusFailed, Err: err}}
	}
	replKey, _ := scene.EncodeFont(replacement)
	logger.Warn("font not available, substituting", "font", key, "replacement", replKey, "err", err)

	if rerr := loader.LoadFont(ctx, replacement); rerr != nil {
		logger.Error("replacement font failed to load", "font", replKey, "err", rerr)
		return fontSlot{
			replace: fallbackKeys[0],
			outcome: Outcome{Subject: key, Status: StatusFailed, Detail: "mapped to " + fallbackKeys[0], Err: rerr},
		}
	}
	return fontSlot{
		replace: replKey,
		outcome: Outcome{Subject: key, Status: StatusSubstituted, Detail: replKey, Err: err},
	}
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}
