package core

import (
	"fmt"
	"strings"
)

// States is the fixed enumeration of administrative regions recognised in
// profiles and eligibility rules.
var States = []string{
	"Andhra Pradesh",
	"Arunachal Pradesh",
	"Assam",
	"Bihar",
	"Chhattisgarh",
	"Delhi",
	"Goa",
	"Gujarat",
	"Haryana",
	"Himachal Pradesh",
	"Jammu and Kashmir",
	"Jharkhand",
	"Karnataka",
	"Kerala",
	"Madhya Pradesh",
	"Maharashtra",
	"Manipur",
	"Meghalaya",
	"Mizoram",
	"Nagaland",
	"Odisha",
	"Punjab",
	"Rajasthan",
	"Sikkim",
	"Tamil Nadu",
	"Telangana",
	"Tripura",
	"Uttar Pradesh",
	"Uttarakhand",
	"West Bengal",
}

// Categories lists the valid reservation categories.
var Categories = []Category{CategorySC, CategoryST, CategoryOBC, CategoryGeneral}

// EducationLevels lists the valid education levels in ascending order.
var EducationLevels = []EducationLevel{
	LevelClass9, LevelClass10, LevelClass11, LevelClass12,
	LevelUndergraduate, LevelPostgraduate, LevelProfessional,
}

// Genders lists the valid gender values.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Religions lists the valid religion values.
var Religions = []Religion{
	ReligionHindu, ReligionMuslim, ReligionChristian,
	ReligionSikh, ReligionBuddhist, ReligionJain, ReligionOther,
}

// Areas lists the valid area values.
var Areas = []Area{AreaUrban, AreaRural}

// Courses lists the valid fields of study.
var Courses = []Course{
	CourseEngineering, CourseMedical, CourseScience, CourseArts,
	CourseCommerce, CourseLaw, CourseManagement, CourseVocational, CourseOther,
}

// Describe projects the profile's known attributes into a natural-language
// sentence in the same text space as Scholarship.CanonicalText, so both can
// be embedded with the same model.
func (p *Profile) Describe() string {
	var parts []string
	if p.Category != "" {
		parts = append(parts, fmt.Sprintf("%s category student", p.Category))
	} else {
		parts = append(parts, "student")
	}
	if p.Gender != "" {
		parts = append(parts, string(p.Gender))
	}
	if p.State != "" {
		parts = append(parts, "from "+p.State)
	}
	if p.EducationLevel != "" {
		parts = append(parts, strings.ReplaceAll(string(p.EducationLevel), "_", " "))
	}
	if p.Course != "" {
		parts = append(parts, "pursuing "+string(p.Course))
	}
	if p.Income != nil {
		parts = append(parts, fmt.Sprintf("family income %d rupees", *p.Income))
	}
	if p.Disability != nil && *p.Disability {
		parts = append(parts, "with disability")
	}
	if p.Religion != "" {
		parts = append(parts, string(p.Religion)+" religion")
	}
	if p.Area != "" {
		parts = append(parts, "from "+string(p.Area)+" area")
	}
	return strings.Join(parts, ", ")
}

// CanonicalText is the text a scholarship's embedding vector is computed
// from: name, description and a flattened summary of the eligibility rule.
func (s *Scholarship) CanonicalText() string {
	var b strings.Builder
	b.WriteString(s.Name)
	if s.Description != "" {
		b.WriteString(". ")
		b.WriteString(s.Description)
	}
	b.WriteString(". ")
	b.WriteString(s.Eligibility.Summary())
	return b.String()
}
