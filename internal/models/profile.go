package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Profile is the portfolio data document. Pointer fields distinguish an
// absent key from an empty value; JSON null decodes as absent.
type Profile struct {
	Personal     *Personal     `json:"personal"`
	Education    []Education   `json:"education"`
	Experience   []Experience  `json:"experience"`
	Projects     []Project     `json:"projects"`
	AboutWebsite *AboutWebsite `json:"aboutWebsite"`
}

type Personal struct {
	Name     *string `json:"name"`
	Title    *string `json:"title"`
	Summary  *string `json:"summary"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Skills   []Skill `json:"skills"`
}

type Skill struct {
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Tools       []string `json:"tools"`
}

type Education struct {
	Degree      *string `json:"degree"`
	Institution *string `json:"institution"`
	Period      *string `json:"period"`
	Focus       *string `json:"focus"`
}

type Experience struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Period      *string `json:"period"`
	Description *string `json:"description"`
	CompanyURL  *string `json:"companyUrl"`
}

type Project struct {
	Title            *string   `json:"title"`
	Subtitle         *string   `json:"subtitle"`
	ShortDescription *string   `json:"shortDescription"`
	FullDescription  *string   `json:"fullDescription"`
	Company          *string   `json:"company"`
	Year             *Scalar   `json:"year"`
	Active           *bool     `json:"active"`
	Skills           *[]string `json:"skills"`
}

// IsActive reports whether the project should be published. Missing means active.
func (p Project) IsActive() bool {
	return p.Active == nil || *p.Active
}

type AboutWebsite struct {
	Goals            *string `json:"goals"`
	TechnicalDetails *string `json:"technicalDetails"`
	Restrictions     *string `json:"restrictions"`
	Learned          *string `json:"learned"`
}

// Scalar holds a JSON string or number as text. Numbers keep their literal
// form, so 2023 becomes "2023".
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = Scalar(num.String())
	return nil
}
