// Package extraction normalizes loosely-structured tabular financial
// files into canonical metric time series.
//
// The pipeline runs six stages strictly forward:
//
//  1. Format detection: route by extension, score delimiter candidates
//     over a content sniff (format.go).
//  2. Table decoding: ordered engine fallbacks produce a RawTable
//     (decode.go, engine_excelize.go, engine_html.go).
//  3. Axis location: find the row or column carrying period labels and
//     the table orientation (axis.go, period.go).
//  4. Metric matching: bind remaining rows or columns to canonical
//     metrics through an exact → alias → keyword rule pipeline over an
//     immutable alias dictionary (matcher.go, aliases.go).
//  5. Series assembly: coerce cells to numbers with locale tolerance and
//     emit one ordered series per bound metric (assemble.go).
//  6. Derived metrics: margins, ratios and growth series where all
//     inputs are present (derive.go).
//
// Every run produces a Result; stage failures are recorded in the
// diagnostics trail and yield partial data rather than errors. Partial,
// visibly incomplete output is always preferred over a hard failure.
//
// A typical invocation:
//
//	pipe := extraction.NewPipeline(extraction.DefaultDictionary(), logger)
//	result := pipe.Run(ctx, "statements.csv", content)
//	if result.Partial {
//	    // axis found, but no labels matched the dictionary
//	}
package extraction
