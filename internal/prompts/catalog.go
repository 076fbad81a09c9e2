package prompts

import "slices"

// Template is a CV layout the model is asked to follow.
type Template struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	LongDescription string `json:"longDescription"`

	instructions string
}

// DefaultTemplate is used when a template id is not recognized.
const DefaultTemplate = "modern"

var templates = []Template{
	{
		ID:              "modern",
		Name:            "Modern",
		Description:     "A clean, professional single-column layout.",
		LongDescription: "Ideal for tech, startups, and modern industries. Features a clean, single-column layout that emphasizes skills and recent achievements. Designed for readability on any device.",
		instructions: `- **Layout:** Use a clean, professional, single-column layout.
- **Summary:** Write a "Professional Summary" section.
- **Style:** Emphasize skills and recent experience. Use horizontal rules sparingly to separate major sections. The overall tone should be contemporary and direct.`,
	},
	{
		ID:              "two-column-professional",
		Name:            "Two-Column Pro",
		Description:     "A modern layout with a sidebar for key info.",
		LongDescription: "A professional two-column layout that separates contact details and skills into a sidebar for quick scanning, while giving ample space for detailed experience and education history.",
		instructions: `- **Layout:** Produce a two-column feel with a Markdown table: a narrow left column for contact details, skills and certifications, and a wide right column for the summary, experience and education.
- **Summary:** Open the right column with a short "Profile" paragraph.
- **Style:** Keep the sidebar terse, using short lists. Keep the main column detailed and chronological.`,
	},
	{
		ID:              "creative",
		Name:            "Creative",
		Description:     "A stylish layout for roles in design, marketing, etc.",
		LongDescription: "Perfect for designers, marketers, and creative professionals. This layout uses more visual flair to highlight a portfolio or key projects. Designed to be memorable and stand out.",
		instructions: `- **Layout:** Get creative with Markdown. You could suggest a two-column feel by using tables or other structures if it looks clean.
- **Summary:** Instead of a formal summary, create a short, engaging "About Me" section (2-3 sentences).
- **Style:** Use visual separators like '---' or even subtle, professional emojis to break up content. Highlight projects or a portfolio prominently. The tone should be energetic and memorable.`,
	},
	{
		ID:              "classic",
		Name:            "Classic",
		Description:     "A traditional, formal layout for conservative fields.",
		LongDescription: "Best suited for traditional industries like law, finance, or academia. Follows a formal structure with a clear chronological order, prioritizing professionalism over visual embellishments.",
		instructions: `- **Layout:** Follow a traditional, conservative, single-column format.
- **Objective:** Start with a formal "Career Objective" statement instead of a summary.
- **Style:** Use a clear, chronological order for experience and education. Maintain a highly formal and professional tone. Do not use any icons or visual flair. Prioritize clarity and tradition.`,
	},
	{
		ID:              "eu-cv",
		Name:            "EU CV",
		Description:     "A standard, minimal European format.",
		LongDescription: "Follows the standard European CV format. A clean, structured, and comprehensive layout ideal for applications within the EU. Focuses on clarity and detailed information.",
		instructions: `- **Layout:** Follow the Europass structure: "Personal Information", "Work Experience", "Education and Training", "Personal Skills", then any remaining sections.
- **Personal Information:** Include date and place of birth when they are provided.
- **Style:** Use reverse chronological order with dates first on each entry. Keep the tone factual and complete rather than promotional.`,
	},
	{
		ID:              "ai-content-editor",
		Name:            "AI Content Editor",
		Description:     "Highlights AI skills and content creation experience.",
		LongDescription: "Tailored for roles in AI content, prompt engineering, and digital strategy. This template emphasizes technical skills alongside creative content portfolios, showcasing a blend of analytical and artistic abilities.",
		instructions: `- **Layout:** Single column, with a "Core AI & Content Skills" section placed directly after the summary.
- **Summary:** Position the candidate at the intersection of AI tooling and content creation.
- **Style:** Call out prompt engineering, model evaluation, editorial work and content metrics. Present projects as a portfolio with links.`,
	},
	{
		ID:              "social-media-creative",
		Name:            "Social Media Creative",
		Description:     "Visually engaging, perfect for social media roles.",
		LongDescription: "A vibrant, visually-driven template for social media managers, content creators, and digital marketers. It's designed to highlight engagement metrics, successful campaigns, and platform-specific expertise in a modern, stylish format.",
		instructions: `- **Layout:** Lead with a punchy one-line headline under the name, followed by the social profiles.
- **Summary:** Write a short, conversational "About Me".
- **Style:** Highlight campaigns, audience growth and engagement metrics. Subtle, professional emojis are welcome as section markers. Keep paragraphs short and scannable.`,
	},
	{
		ID:              "technical",
		Name:            "Technical",
		Description:     "Data-dense, for engineering and IT roles.",
		LongDescription: "A clean, information-rich template for technical roles like software engineering. Prioritizes skills, projects, and tools in a highly scannable format.",
		instructions: `- **Layout:** Single column. Place a "Technical Skills" section right after the name, grouped by category (languages, frameworks, infrastructure, tools).
- **Summary:** One or two sentences at most.
- **Style:** Dense and scannable. Name technologies explicitly in every experience bullet and list the stack of every project.`,
	},
	{
		ID:              "minimalist",
		Name:            "Minimalist",
		Description:     "Elegant and simple, focusing on typography.",
		LongDescription: "A sophisticated, minimalist design that uses typography and white space to create a polished look. Perfect for roles where clarity and elegance are key.",
		instructions: `- **Layout:** Single column with generous spacing and no horizontal rules.
- **Summary:** A single refined sentence.
- **Style:** No icons, no tables, no emojis. Rely on headings, whitespace and concise wording.`,
	},
}

// Templates lists the available templates in display order.
func Templates() []Template {
	return slices.Clone(templates)
}

// LookupTemplate returns the template with the given id, or the default
// template when id is unknown.
func LookupTemplate(id string) Template {
	for _, t := range templates {
		if t.ID == id {
			return t
		}
	}
	return templates[0]
}

// Language is an output language. Instruction is how the language is named
// inside a prompt.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`

	instruction string
}

// DefaultLanguage is used when a language code is not recognized.
const DefaultLanguage = "en"

var languages = []Language{
	{Code: "en", Name: "English", instruction: "English"},
	{Code: "it", Name: "Italiano", instruction: "Italian"},
	{Code: "fr", Name: "Français", instruction: "French"},
	{Code: "es", Name: "Español", instruction: "Spanish"},
	{Code: "pt", Name: "Português", instruction: "Portuguese"},
	{Code: "ru", Name: "Русский", instruction: "Russian"},
	{Code: "ar", Name: "العربية", instruction: "Arabic"},
	{Code: "it-sal", Name: "Salentino (dialetto)", instruction: "the Salentino dialect of southern Italy"},
	{Code: "it-sic", Name: "Siciliano (dialetto)", instruction: "the Sicilian dialect"},
}

// Languages lists the available output languages in display order.
func Languages() []Language {
	return slices.Clone(languages)
}

// LookupLanguage returns the language with the given code, or English when
// code is unknown.
func LookupLanguage(code string) Language {
	for _, l := range languages {
		if l.Code == code {
			return l
		}
	}
	return languages[0]
}

// PhotoAlignment places the profile photo in the rendered CV.
type PhotoAlignment string

const (
	PhotoLeft  PhotoAlignment = "left"
	PhotoRight PhotoAlignment = "right"
	PhotoNone  PhotoAlignment = "none"
)

// ParsePhotoAlignment returns the alignment for s, defaulting to right.
func ParsePhotoAlignment(s string) PhotoAlignment {
	switch a := PhotoAlignment(s); a {
	case PhotoLeft, PhotoRight, PhotoNone:
		return a
	}
	return PhotoRight
}
