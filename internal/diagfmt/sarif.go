package diagfmt

import (
	"encoding/json"
	"io"

	"svfront/internal/diag"
	"svfront/internal/sourcemap"
)

// sarifLog is a minimal SARIF 2.1.0 document: one run, one tool, a flat
// list of results. Enough for an editor or CI check to annotate a diff;
// no taxonomies, no fix suggestions.
type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool      `json:"tool"`
	Results []sarifResult  `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion            `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

// SARIF writes one run covering every bag in bags (keyed by display path)
// as a SARIF log to w.
func SARIF(w io.Writer, bags map[string]*diag.Bag, sm *sourcemap.SourceMap, meta SarifRunMeta) error {
	rules := map[string]struct{}{}
	var results []sarifResult
	for path, bag := range bags {
		if bag == nil {
			continue
		}
		for _, d := range bag.Items() {
			loc := sm.ReportedLocation(d.Primary.Buffer, d.Primary.Start)
			rules[d.Code.ID()] = struct{}{}
			results = append(results, sarifResult{
				RuleID:  d.Code.ID(),
				Level:   sarifLevel(d.Severity),
				Message: sarifMessage{Text: d.Message},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: path},
						Region:           sarifRegion{StartLine: loc.Line, StartColumn: loc.Col},
					},
				}},
			})
		}
	}

	ruleList := make([]sarifRule, 0, len(rules))
	for id := range rules {
		ruleList = append(ruleList, sarifRule{ID: id, Name: id})
	}

	doc := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion, Rules: ruleList}},
			Results: results,
		}},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
