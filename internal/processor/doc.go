// Package processor runs a translation request end to end: resolve the
// translation, annotate it with pinyin and fold the result into a single
// Outcome for the presenter. It also drives batch runs.
package processor
