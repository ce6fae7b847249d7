package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint is a content hash used to detect when a scholarship's
// embedding text has changed and a re-embed is needed.
type Fingerprint uint64

// FingerprintOf computes a deterministic fingerprint from text using BLAKE2b.
// Identical text always produces an identical fingerprint.
func FingerprintOf(text string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// Category is an applicant's reservation category.
type Category string

const (
	CategorySC      Category = "SC"
	CategoryST      Category = "ST"
	CategoryOBC     Category = "OBC"
	CategoryGeneral Category = "General"
)

// EducationLevel is an applicant's current level of education.
// Levels are ordered from Class9 up through Professional.
type EducationLevel string

const (
	LevelClass9        EducationLevel = "class_9"
	LevelClass10       EducationLevel = "class_10"
	LevelClass11       EducationLevel = "class_11"
	LevelClass12       EducationLevel = "class_12"
	LevelUndergraduate EducationLevel = "undergraduate"
	LevelPostgraduate  EducationLevel = "postgraduate"
	LevelProfessional  EducationLevel = "professional"
)

// Gender identifies an applicant's gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Religion identifies an applicant's religion.
type Religion string

const (
	ReligionHindu     Religion = "hindu"
	ReligionMuslim    Religion = "muslim"
	ReligionChristian Religion = "christian"
	ReligionSikh      Religion = "sikh"
	ReligionBuddhist  Religion = "buddhist"
	ReligionJain      Religion = "jain"
	ReligionOther     Religion = "other"
)

// Area identifies whether an applicant lives in an urban or rural area.
type Area string

const (
	AreaUrban Area = "urban"
	AreaRural Area = "rural"
)

// Course is an applicant's field of study.
type Course string

const (
	CourseEngineering Course = "engineering"
	CourseMedical     Course = "medical"
	CourseScience     Course = "science"
	CourseArts        Course = "arts"
	CourseCommerce    Course = "commerce"
	CourseLaw         Course = "law"
	CourseManagement  Course = "management"
	CourseVocational  Course = "vocational"
	CourseOther       Course = "other"
)

// Profile holds the attributes collected for an applicant.
// Every field is optional; a zero value means the attribute is unknown.
// The matcher treats a Profile as immutable input per call.
type Profile struct {
	State          string         `json:"state,omitempty"`
	Category       Category       `json:"category,omitempty"`
	EducationLevel EducationLevel `json:"educationLevel,omitempty"`
	Income         *int64         `json:"income,omitempty"` // annual family income in rupees
	Gender         Gender         `json:"gender,omitempty"`
	Disability     *bool          `json:"disability,omitempty"`
	Religion       Religion       `json:"religion,omitempty"`
	Area           Area           `json:"area,omitempty"`
	Course         Course         `json:"course,omitempty"`
}

// ScholarshipType distinguishes government-funded from privately-funded scholarships.
type ScholarshipType string

const (
	TypePublic  ScholarshipType = "public"
	TypePrivate ScholarshipType = "private"
)

// Status is a scholarship's moderation status.
// Only approved scholarships are visible to the matcher.
type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
	StatusRejected Status = "rejected"
)

// Scholarship is a single scholarship listing with its eligibility rule.
// The lifecycle (create/edit/approve/delete) is owned by the external CRUD
// collaborator; this engine only reads approved scholarships.
type Scholarship struct {
	Id                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Benefits          string          `json:"benefits,omitempty"`
	Deadline          string          `json:"deadline,omitempty"` // heterogeneous formats, see deadline package
	ApplicationSteps  []string        `json:"applicationSteps,omitempty"`
	RequiredDocuments []string        `json:"requiredDocuments,omitempty"`
	OfficialUrl       string          `json:"officialUrl,omitempty"`
	Type              ScholarshipType `json:"type"`
	Status            Status          `json:"status"`
	Eligibility       EligibilityRule `json:"eligibility"`
	InsertedAt        time.Time       `json:"insertedAt,omitempty"`
	UpdatedAt         time.Time       `json:"updatedAt,omitempty"`
}

// Fingerprint returns the fingerprint of the scholarship's embedding text.
func (s *Scholarship) Fingerprint() Fingerprint {
	return FingerprintOf(s.CanonicalText())
}

// MatchStrategy identifies how a match response was computed.
type MatchStrategy string

const (
	// StrategyRuleBased means only the eligibility rules contributed to scores.
	StrategyRuleBased MatchStrategy = "rule-based"
	// StrategyHybrid means semantic similarity was blended into scores.
	StrategyHybrid MatchStrategy = "hybrid"
)

// MatchResult is one scored scholarship in a match response.
// Results are recomputed from the current profile and scholarship set on
// every call and are never persisted.
type MatchResult struct {
	ScholarshipId string `json:"scholarshipId"`

	// EligibilityScore is the rule-based score in [0,100].
	// Zero for semantic-only suggestions.
	EligibilityScore float64 `json:"eligibilityScore"`

	// SemanticScore is the similarity score in [0,100].
	// Nil when semantic matching was not used.
	SemanticScore *float64 `json:"semanticScore,omitempty"`

	// FinalScore is the weighted combination used for ranking.
	FinalScore float64 `json:"finalScore"`

	// MatchReasons lists human-readable reasons, strongest first.
	MatchReasons []string `json:"matchReasons"`

	// EligibilityWarnings is non-empty only for semantic suggestions and
	// describes which hard criteria the applicant does not satisfy.
	EligibilityWarnings []string `json:"eligibilityWarnings,omitempty"`

	IsSemanticSuggestion bool `json:"isSemanticSuggestion"`
}

// MatchResponse is the full result of a matching request.
type MatchResponse struct {
	Recommendations     []*MatchResult `json:"recommendations"`
	SemanticSuggestions []*MatchResult `json:"semanticSuggestions,omitempty"`
	TotalMatches        int            `json:"totalMatches"`
	MatchingStrategy    MatchStrategy  `json:"matchingStrategy"`
}
