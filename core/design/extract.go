package design

import (
	"regexp"
	"strings"
)

const explanationHeading = "## Design Explanation"

var (
	mermaidFence = regexp.MustCompile("(?s)```mermaid\n(.*?)```")
	sqlFence     = regexp.MustCompile("(?s)```sql\n(.*?)```")
)

// Sections are the three named fields extracted from a model reply.
type Sections struct {
	ERDMermaid  string
	SQLQueries  string
	Explanation string
}

// Missing lists the section names that came back empty.
func (s Sections) Missing() []string {
	var missing []string
	if strings.TrimSpace(s.ERDMermaid) == "" {
		missing = append(missing, "erd_mermaid")
	}
	if strings.TrimSpace(s.SQLQueries) == "" {
		missing = append(missing, "sql_queries")
	}
	if strings.TrimSpace(s.Explanation) == "" {
		missing = append(missing, "explanation")
	}
	return missing
}

// ExtractSections pulls the Mermaid diagram, SQL and explanation out of a
// raw model reply. The model is asked for a fixed layout but is not
// trusted to produce it; absent sections stay empty and the caller decides
// on fallbacks.
func ExtractSections(reply string) Sections {
	var sections Sections

	if m := mermaidFence.FindStringSubmatch(reply); m != nil {
		sections.ERDMermaid = strings.TrimSpace(m[1])
	}
	if m := sqlFence.FindStringSubmatch(reply); m != nil {
		sections.SQLQueries = strings.TrimSpace(m[1])
	}

	sections.Explanation = extractExplanation(reply)
	return sections
}

// extractExplanation takes the text after the "## Design Explanation"
// heading up to the next heading. When the heading is missing it falls
// back to the text after the last code fence, provided the reply carried
// both expected fenced blocks.
func extractExplanation(reply string) string {
	if idx := strings.Index(reply, explanationHeading); idx >= 0 {
		rest := reply[idx+len(explanationHeading):]
		rest = strings.TrimPrefix(rest, "\n")
		if end := strings.Index(rest, "\n##"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}

	parts := strings.Split(reply, "```")
	if len(parts) >= 5 {
		return strings.TrimSpace(parts[len(parts)-1])
	}
	return ""
}
