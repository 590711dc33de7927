// Package exporter writes pipeline results to disk for the caller: a wide
// CSV of metric and derived series (periods as columns) and a JSON dump of
// the full Result including its diagnostics trail.
package exporter
