package cv

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// snapshotSchema is the minimal shape a persisted snapshot must have to be
// merged over the defaults.
const snapshotSchema = `{
  "type": "object",
  "required": ["personal", "experience", "education", "projects", "certifications"],
  "properties": {
    "personal":       {"type": "object"},
    "experience":     {"type": "array", "items": {"type": "object"}},
    "education":      {"type": "array", "items": {"type": "object"}},
    "projects":       {"type": "array", "items": {"type": "object"}},
    "certifications": {"type": "array", "items": {"type": "object"}}
  }
}`

var snapshotLoader = gojsonschema.NewStringLoader(snapshotSchema)

// ErrInvalidSnapshot indicates persisted data that cannot become a Document.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Encode serializes doc as a snapshot.
func Encode(doc Document) ([]byte, error) {
	doc.normalize()
	return json.Marshal(doc)
}

// Decode validates a snapshot and merges it over the defaults. Personal and
// scalar fields missing from data keep their default values; collections in
// data replace the default collections. Items without an id get one.
func Decode(data []byte) (Document, error) {
	res, err := gojsonschema.Validate(snapshotLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return Document{}, fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(msgs, "; "))
	}

	doc := Default()
	// decoding into reused backing arrays would keep default fields in
	// elements the snapshot leaves partially empty
	doc.Personal.SocialLinks = nil
	doc.Experience = nil
	doc.Education = nil
	doc.Projects = nil
	doc.Certifications = nil

	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	doc.normalize()
	EnsureIDs(&doc)
	return doc, nil
}
