// Package prompts builds the text sent to the generative model. Every builder
// is a pure function of its inputs; prompt bodies are embedded text templates
// parsed once at startup.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/talentosprecato/Mari/internal/cv"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Options selects how a CV is rendered.
type Options struct {
	Template       string
	Sections       []cv.SectionID
	Language       string
	PhotoAlignment string

	// Styles overrides the Document's section styles when non-nil.
	Styles map[cv.StylableSection]cv.SectionStyle
}

// Instructions returns the layout guidance embedded in the generate prompt.
func (t Template) Instructions() string {
	return t.instructions
}

type styleHint struct {
	Section    cv.StylableSection
	Border     cv.Border
	Spacing    cv.Spacing
	Background string
}

type generateData struct {
	Template Template
	Language string
	Photo    string
	Styles   []styleHint
	Data     string
}

// Generate builds the CV rendering prompt. Sections are embedded in the order
// of opts.Sections, or the Document's section order when none are given.
func Generate(doc cv.Document, opts Options) (string, error) {
	order := opts.Sections
	if len(order) == 0 {
		order = doc.SectionOrder
	}

	data, err := sectionData(doc, order)
	if err != nil {
		return "", err
	}

	styles := opts.Styles
	if styles == nil {
		styles = doc.SectionStyles
	}

	return execute("generate.tmpl", generateData{
		Template: LookupTemplate(opts.Template),
		Language: LookupLanguage(opts.Language).instruction,
		Photo:    photoInstruction(doc, order, ParsePhotoAlignment(opts.PhotoAlignment)),
		Styles:   styleHints(order, styles),
		Data:     data,
	})
}

// Parse builds the prompt that converts an uploaded CV into the Document
// shape. text is the extracted document text and may be empty when the file
// itself is attached to the request.
func Parse(language, text string) (string, error) {
	return execute("parse.tmpl", struct {
		Language string
		Text     string
	}{
		Language: LookupLanguage(language).instruction,
		Text:     text,
	})
}

// Script builds the teleprompter narrative prompt for a video introduction.
func Script(doc cv.Document, language string) (string, error) {
	data, err := sectionData(doc, cv.DefaultSectionOrder())
	if err != nil {
		return "", err
	}
	return execute("script.tmpl", struct {
		Language string
		Data     string
	}{
		Language: LookupLanguage(language).instruction,
		Data:     data,
	})
}

// Jobs builds the job search prompt. The model is asked for a fenced JSON
// array of roles with hiring organizations.
func Jobs(doc cv.Document, location, language string) (string, error) {
	data, err := sectionData(doc, []cv.SectionID{
		cv.SectionPersonal,
		cv.SectionExperience,
		cv.SectionEducation,
		cv.SectionSkills,
		cv.SectionProjects,
		cv.SectionCertifications,
	})
	if err != nil {
		return "", err
	}
	return execute("jobs.tmpl", struct {
		Location string
		Language string
		Data     string
	}{
		Location: location,
		Language: LookupLanguage(language).instruction,
		Data:     data,
	})
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func photoInstruction(doc cv.Document, order []cv.SectionID, align PhotoAlignment) string {
	if doc.Personal.Photo == "" || !containsSection(order, cv.SectionPersonal) {
		return ""
	}
	switch align {
	case PhotoLeft:
		return "The user provided a profile photo. The photo is placed to the left of the name by the page layout, so do not reference or describe it."
	case PhotoNone:
		return "The user chose to hide the profile photo. Do not mention a photo."
	default:
		return "The user provided a profile photo. The photo is placed to the right of the name by the page layout, so do not reference or describe it."
	}
}

func styleHints(order []cv.SectionID, styles map[cv.StylableSection]cv.SectionStyle) []styleHint {
	var hints []styleHint
	for _, id := range order {
		section, err := cv.ParseStylableSection(string(id))
		if err != nil {
			continue
		}
		style, ok := styles[section]
		if !ok || style == cv.DefaultStyle() {
			continue
		}
		hints = append(hints, styleHint{
			Section:    section,
			Border:     style.Border,
			Spacing:    style.Spacing,
			Background: style.BackgroundColor,
		})
	}
	return hints
}
