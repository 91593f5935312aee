package services

import "strings"

// ClassificationResult reports the best template match for an uploaded
// file's header row.
type ClassificationResult struct {
	Sheet      string  `json:"sheet"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	// LowConfidence is set when the best score fell below the acceptance
	// threshold and the proposal log shape was substituted. The user should
	// review and override before committing.
	LowConfidence bool `json:"low_confidence"`
}

// minConfidence is the score below which a detection is not trusted and the
// proposal log shape is used instead.
const minConfidence = 0.5

// DetectShape scores the tokenized header row against every registered
// template and picks the best match. The score of a template is the fraction
// of its keywords found among the headers, matching case-insensitively by
// substring containment in either direction. Ties break toward the template
// registered first.
func DetectShape(headers []string) ClassificationResult {
	lowered := make([]string, 0, len(headers))
	for _, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			lowered = append(lowered, h)
		}
	}

	best := ClassificationResult{Sheet: SheetProposal, Label: ShapeLabel(SheetProposal)}
	for _, tpl := range shapeTemplates {
		score := scoreTemplate(tpl, lowered)
		if score > best.Confidence {
			best.Confidence = score
			best.Sheet = tpl.Sheet
			best.Label = tpl.Label
		}
	}

	if best.Confidence < minConfidence {
		// Low-score files default to the proposal log, the office's most
		// common upload. Confidence is preserved so the UI can warn.
		best.Sheet = SheetProposal
		best.Label = ShapeLabel(SheetProposal)
		best.LowConfidence = true
	}
	return best
}

// scoreTemplate counts how many template keywords appear among the headers.
func scoreTemplate(tpl ShapeTemplate, lowered []string) float64 {
	if len(tpl.Keywords) == 0 {
		return 0
	}
	found := 0
	for _, kw := range tpl.Keywords {
		kw = strings.ToLower(kw)
		for _, h := range lowered {
			if strings.Contains(h, kw) || strings.Contains(kw, h) {
				found++
				break
			}
		}
	}
	return float64(found) / float64(len(tpl.Keywords))
}
