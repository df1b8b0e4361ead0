package processor

import (
	"github.com/xhad/profile-embed/internal/models"
)

type field struct {
	name  string
	value *string
}

// checkRequired returns a *MissingFieldError for the first absent field.
func checkRequired(path string, fields ...field) error {
	for _, f := range fields {
		if f.value == nil {
			return &MissingFieldError{Path: path + "." + f.name}
		}
	}
	return nil
}

func validateSkill(path string, s models.Skill) error {
	return checkRequired(path,
		field{"category", s.Category},
		field{"description", s.Description},
	)
}

func validateEducation(path string, e models.Education) error {
	return checkRequired(path,
		field{"degree", e.Degree},
		field{"institution", e.Institution},
	)
}

func validateExperience(path string, e models.Experience) error {
	return checkRequired(path,
		field{"title", e.Title},
		field{"company", e.Company},
		field{"description", e.Description},
	)
}

func validateProject(path string, p models.Project) error {
	return checkRequired(path,
		field{"title", p.Title},
		field{"subtitle", p.Subtitle},
		field{"shortDescription", p.ShortDescription},
		field{"fullDescription", p.FullDescription},
	)
}

func orEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
