package schemwright

import (
	"github.com/sirupsen/logrus"

	"github.com/pilecraft/schemwright/translate"
)

// ProgressFunc, if set, is called after each pipeline stage completes with
// the stage's name and a rough fraction of the whole conversion done.
type ProgressFunc func(stage string, fraction float64)

type config struct {
	logger   *logrus.Entry
	progress ProgressFunc
	blocks   *translate.Table
	legacy   *translate.LegacyTable
}

// Option configures a Convert call.
type Option func(*config)

// WithLogger attaches a logrus logger; each conversion derives its own
// entry from it, tagged with a fresh correlation id.
func WithLogger(l *logrus.Logger) Option {
	return func(c *config) { c.logger = logrus.NewEntry(l) }
}

// WithProgress registers a callback invoked after each pipeline stage.
func WithProgress(fn ProgressFunc) Option {
	return func(c *config) { c.progress = fn }
}

// WithBlockTable supplies the Java-to-Bedrock TranslationEntry table.
// Without it, every Java block keeps its name and states, rewritten into
// the Bedrock descriptor form (namespace stripped, state pairs quoted and
// sorted); air and invalid blocks are still dropped.
func WithBlockTable(t *translate.Table) Option {
	return func(c *config) { c.blocks = t }
}

// WithLegacyTable supplies the classic-dialect numeric id/data lookup.
// Without it, classic schematics translate to nothing.
func WithLegacyTable(t *translate.LegacyTable) Option {
	return func(c *config) { c.legacy = t }
}

func defaultConfig() *config {
	return &config{logger: logrus.NewEntry(logrus.StandardLogger())}
}

func (c *config) report(stage string, fraction float64) {
	if c.progress != nil {
		c.progress(stage, fraction)
	}
}
