package prompts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/talentosprecato/Mari/internal/cv"
)

const (
	photoMarker     = "[photo provided]"
	signatureMarker = "[signature provided]"
)

type personalData struct {
	cv.PersonalDetails
	Photo string `json:"photo,omitempty"`
}

// sectionData renders the Document sections named in order as one indented
// JSON object whose keys keep that order. Unknown and duplicate ids are
// skipped, as are sections that carry no data.
func sectionData(doc cv.Document, order []cv.SectionID) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	seen := make(map[cv.SectionID]bool, len(order))
	for _, id := range order {
		if seen[id] {
			continue
		}
		seen[id] = true

		value, ok := sectionValue(doc, id)
		if !ok {
			continue
		}

		raw, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("marshal section %s: %w", id, err)
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(string(id))
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(raw)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return "", fmt.Errorf("indent section data: %w", err)
	}
	return out.String(), nil
}

func sectionValue(doc cv.Document, id cv.SectionID) (any, bool) {
	switch id {
	case cv.SectionPersonal:
		p := personalData{PersonalDetails: doc.Personal}
		p.PersonalDetails.Photo = ""
		if doc.Personal.Photo != "" {
			p.Photo = photoMarker
		}
		return p, true
	case cv.SectionExperience:
		return doc.Experience, true
	case cv.SectionEducation:
		return doc.Education, true
	case cv.SectionSkills:
		return doc.Skills, true
	case cv.SectionProjects, cv.SectionPortfolio:
		return doc.Projects, true
	case cv.SectionCertifications:
		return doc.Certifications, true
	case cv.SectionVideo:
		return doc.VideoURL, doc.VideoURL != ""
	case cv.SectionProfessionalNarrative:
		return doc.ProfessionalNarrative, true
	case cv.SectionSignature:
		return signatureMarker, doc.Signature != ""
	}
	return nil, false
}

func containsSection(order []cv.SectionID, id cv.SectionID) bool {
	return slices.Contains(order, id)
}
