package cv

// Default returns the sample Document shown to a new user. Item ids are
// minted on every call.
func Default() Document {
	doc := Document{
		Personal: PersonalDetails{
			FullName:    "Jane Doe",
			Email:       "jane.doe@example.com",
			Phone:       "123-456-7890",
			Address:     "123 Main St, Anytown, USA",
			LinkedIn:    "linkedin.com/in/janedoe",
			Website:     "janedoe.com",
			SocialLinks: []SocialLink{},
		},
		Experience: []Experience{{
			ID:        newID(),
			JobTitle:  "Senior Software Engineer",
			Company:   "Tech Solutions Inc.",
			Location:  "San Francisco, CA",
			StartDate: "2020-01",
			EndDate:   "Present",
			Responsibilities: "- Led development of a new client-facing web application.\n" +
				"- Mentored junior engineers.\n" +
				"- Improved application performance by 20%.",
		}},
		Education: []Education{{
			ID:          newID(),
			Degree:      "B.S. in Computer Science",
			Institution: "State University",
			Location:    "Anytown, USA",
			StartDate:   "2016-08",
			EndDate:     "2020-05",
			Details:     "GPA: 3.8, Magna Cum Laude",
		}},
		Projects:       []Project{},
		Certifications: []Certification{},
		Skills:         "React, TypeScript, Node.js, Python, AWS, Docker, SQL",
		SectionOrder:   DefaultSectionOrder(),
		SectionStyles:  map[StylableSection]SectionStyle{},
	}
	return doc
}
