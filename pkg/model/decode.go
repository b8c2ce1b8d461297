package model

import (
	"encoding/json"
	"fmt"
)

// titleKeys is the ordered fallback chain for a row's display title. The
// upstream API nests the title under a different key depending on content
// classification; the first key present wins.
var titleKeys = []string{"series-title", "collection-title", "generic-title"}

// refSetVariants is the priority order of reference-set envelope tags. The
// upstream wraps the item list in exactly one of these, again depending on
// content classification.
var refSetVariants = []string{"CuratedSet", "TrendingSet", "PersonalizedCuratedSet"}

type catalogEnvelope struct {
	Collection *struct {
		Rows []rowDescriptor `json:"rows"`
	} `json:"collection"`
}

type rowDescriptor struct {
	Type  string            `json:"type"`
	RefID string            `json:"refId"`
	Text  map[string]string `json:"text"`
	Items []ContentItem     `json:"items"`
}

// displayTitle resolves the row title through the fallback chain, synthesizing
// a "Collection N" label when every known key is absent or empty.
func (rd rowDescriptor) displayTitle(index int) string {
	for _, key := range titleKeys {
		if title := rd.Text[key]; title != "" {
			return title
		}
	}
	return fmt.Sprintf("Collection %d", index)
}

// DecodeCatalog parses the home catalog payload into ordered rows. A row with
// type "SetRef" is deferred; any other type carries its items inline.
func DecodeCatalog(data []byte) ([]CatalogRow, error) {
	var env catalogEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode catalog payload: %w", err)
	}
	if env.Collection == nil {
		return nil, fmt.Errorf("catalog payload is missing the collection object")
	}

	rows := make([]CatalogRow, 0, len(env.Collection.Rows))
	for i, rd := range env.Collection.Rows {
		row := CatalogRow{
			Index: i,
			Title: rd.displayTitle(i),
		}
		if rd.Type == "SetRef" {
			row.Kind = SourceDeferred
			row.Ref = rd.RefID
		} else {
			row.Kind = SourceInline
			row.Items = rd.Items
		}
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("catalog row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type refSetBody struct {
	Items []ContentItem `json:"items"`
}

// DecodeReferenceSet parses a reference-set payload. The envelope tag varies
// by content classification, so each known variant is attempted in priority
// order and the first one present is used.
func DecodeReferenceSet(data []byte) ([]ContentItem, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode reference set payload: %w", err)
	}

	for _, variant := range refSetVariants {
		raw, ok := env[variant]
		if !ok {
			continue
		}
		var body refSetBody
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("failed to decode %s body: %w", variant, err)
		}
		return body.Items, nil
	}
	return nil, fmt.Errorf("reference set payload has no recognized set variant")
}
