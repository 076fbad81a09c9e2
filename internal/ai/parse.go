package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/internal/imports"
	"github.com/talentosprecato/Mari/internal/prompts"
)

func stringSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeString}
}

func objectSchema(fields ...string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = stringSchema()
	}
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         fields,
		PropertyOrdering: fields,
	}
}

func arraySchema(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

// documentSchema constrains the parse reply to the Document shape without ids,
// photo or layout.
var documentSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"personal": objectSchema(
			"fullName", "email", "phone", "address", "linkedin", "website",
			"dateOfBirth", "placeOfBirth",
		),
		"experience": arraySchema(objectSchema(
			"jobTitle", "company", "location", "startDate", "endDate", "responsibilities",
		)),
		"education": arraySchema(objectSchema(
			"degree", "institution", "location", "startDate", "endDate", "details",
		)),
		"projects": arraySchema(objectSchema(
			"name", "technologies", "link", "description",
		)),
		"certifications": arraySchema(objectSchema(
			"name", "issuingOrganization", "date",
		)),
		"skills":                stringSchema(),
		"professionalNarrative": stringSchema(),
	},
	Required: []string{
		"personal", "experience", "education", "projects", "certifications", "skills",
	},
	PropertyOrdering: []string{
		"personal", "professionalNarrative", "experience", "education", "skills",
		"projects", "certifications",
	},
}

func (s *system) Parse(ctx context.Context, src imports.Source, language string) (cv.Document, error) {
	prompt, err := prompts.Parse(language, src.Text)
	if err != nil {
		return cv.Document{}, err
	}

	var parts []*genai.Part
	if src.Inline() {
		parts = append(parts, genai.NewPartFromBytes(src.Data, src.MIMEType))
	}
	parts = append(parts, genai.NewPartFromText(prompt))

	reply, err := s.text(ctx,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   documentSchema,
		},
	)
	if err != nil {
		return cv.Document{}, err
	}

	doc, err := decodeDocument(reply)
	if err != nil {
		return cv.Document{}, err
	}

	s.logger.Info("cv parsed",
		"file", src.Filename,
		"experience", len(doc.Experience),
		"education", len(doc.Education),
	)
	return doc, nil
}

// decodeDocument reads a parse reply. Identifiers, images and layout in the
// reply are discarded; the section order is the default one.
func decodeDocument(reply string) (cv.Document, error) {
	var doc cv.Document
	if err := json.Unmarshal([]byte(CleanJSON(reply)), &doc); err != nil {
		return cv.Document{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	for i := range doc.Experience {
		doc.Experience[i].ID = ""
	}
	for i := range doc.Education {
		doc.Education[i].ID = ""
	}
	for i := range doc.Projects {
		doc.Projects[i].ID = ""
	}
	for i := range doc.Certifications {
		doc.Certifications[i].ID = ""
	}

	doc.Personal.Photo = ""
	doc.Signature = ""
	doc.VideoURL = ""
	doc.SectionOrder = cv.DefaultSectionOrder()
	doc.SectionStyles = nil

	return doc.Clone(), nil
}
