package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/dialect"

	_ "github.com/leapstack-labs/leapcube/pkg/dialects/all"
)

// generateDialectDocs generates the dialect reference page from the registry.
func generateDialectDocs(outDir string) error {
	log.Printf("Generating dialect docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Dialects", "SQL dialects leapcube renders for")
	w.GeneratedMarker()

	w.Header(1, "Dialects")
	w.Paragraph("Every member renders through the dialect of its query. The dialect decides identifier quoting and case, the longest legal alias, and the SQL for aggregations and time truncation.")

	var rows [][]string
	for _, name := range dialect.List() {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		maxLen := "-"
		if d.MaxIdentifierLength > 0 {
			maxLen = fmt.Sprint(d.MaxIdentifierLength)
		}
		approx := "-"
		if d.ApproxCountDistinct != "" {
			approx = InlineCode(d.ApproxCountDistinct)
		}
		rows = append(rows, []string{
			InlineCode(d.Name),
			InlineCode(d.Identifiers.Quote),
			normalizationName(d.Identifiers.Normalization),
			maxLen,
			InlineCode(d.DefaultSchema),
			approx,
		})
	}
	w.Table([]string{"Dialect", "Quote", "Normalization", "Max Identifier", "Default Schema", "Approx Distinct"}, rows)

	w.Header(2, "Aggregations")
	aggs := []string{
		dialect.AggCount, dialect.AggCountDistinct, dialect.AggCountDistinctApprox,
		dialect.AggSum, dialect.AggAvg, dialect.AggMin, dialect.AggMax, dialect.AggNumber,
	}
	w.BulletList(wrapCode(aggs))

	w.Header(2, "Time Granularities")
	w.Paragraph(strings.Join(wrapCode(dialect.Granularities), ", "))

	filename := filepath.Join(outDir, "dialects.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

func wrapCode(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = InlineCode(s)
	}
	return out
}

func normalizationName(n core.NormalizationStrategy) string {
	switch n {
	case core.NormUppercase:
		return "uppercase"
	case core.NormCaseSensitive:
		return "case sensitive"
	case core.NormCaseInsensitive:
		return "case insensitive"
	default:
		return "lowercase"
	}
}
