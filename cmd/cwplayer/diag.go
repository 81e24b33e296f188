package main

import (
	"github.com/rs/zerolog"

	"github.com/morsekit/cwplayer/internal/audio"
	"github.com/morsekit/cwplayer/internal/morse"
)

// runDiag verifies the code table and sweeps the rate grid, reporting every
// pair whose derived sample counts drift more than one percent from the
// requested overall rate.
func runDiag(params audio.Params, logger zerolog.Logger) {
	if err := morse.CheckTable(); err != nil {
		logger.Fatal().Err(err).Msg("code table check failed")
	}
	logger.Info().Msg("code table ok")

	worst := 0.0
	failed := 0
	for overall := 1.0; overall <= 100.0; overall++ {
		for char := overall; char <= 100.0; char++ {
			tm := morse.NewTiming(overall, char, params.SampleRate)
			pct := tm.RateError(overall, params.SampleRate)
			if pct > worst {
				worst = pct
			}
			if pct > 1.0 {
				failed++
				logger.Warn().
					Float64("overall_wpm", overall).
					Float64("char_wpm", char).
					Float64("error_pct", pct).
					Int("dit", tm.Dit).
					Int("dah", tm.Dah).
					Int("char_gap", tm.CharGap).
					Int("word_gap", tm.WordGap).
					Msg("rate error above 1%")
			}
		}
	}

	logger.Info().
		Int("sample_rate", params.SampleRate).
		Int("pairs_failed", failed).
		Float64("worst_error_pct", worst).
		Msg("timing sweep complete")
}
