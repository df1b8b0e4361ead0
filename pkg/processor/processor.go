package processor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xhad/profile-embed/internal/models"
	"github.com/xhad/profile-embed/internal/types"
)

var _ types.Processor = (*Processor)(nil)

type ProcessorConfig struct {
	// Types restricts output to these chunk types. Empty keeps all.
	Types []models.ChunkType
	// StripHTML renders HTML fragments in free-text fields as plain text.
	StripHTML bool
	// CollapseWhitespace folds whitespace runs in content to single spaces.
	CollapseWhitespace bool
	// IncludeInactive emits projects marked "active": false.
	IncludeInactive bool
}

type Processor struct {
	config  ProcessorConfig
	allowed map[models.ChunkType]bool
}

func NewWithConfig(config ProcessorConfig) Processor {
	var allowed map[models.ChunkType]bool
	if len(config.Types) > 0 {
		allowed = make(map[models.ChunkType]bool, len(config.Types))
		for _, t := range config.Types {
			allowed[t] = true
		}
	}

	return Processor{
		config:  config,
		allowed: allowed,
	}
}

// Extract runs the default processor: every chunk type, content verbatim.
func Extract(profile *models.Profile) ([]models.Chunk, error) {
	p := NewWithConfig(ProcessorConfig{})
	return p.Process(profile)
}

// Process maps a profile to chunks in the fixed order summary, skills,
// contact, education, experience, projects, website.
func (p *Processor) Process(profile *models.Profile) ([]models.Chunk, error) {
	chunks := []models.Chunk{}
	if profile == nil {
		return chunks, nil
	}

	emit := func(t models.ChunkType, content string, metadata models.Metadata) {
		if p.allowed != nil && !p.allowed[t] {
			return
		}
		content = p.cleanText(content)
		// only a blank summary can end up empty
		if content == "" {
			return
		}
		chunks = append(chunks, models.Chunk{
			Type:     t,
			Content:  content,
			Metadata: metadata,
		})
	}

	if personal := profile.Personal; personal != nil {
		if personal.Summary != nil {
			emit(models.ChunkSummary, p.text(*personal.Summary), models.Metadata{
				"name":  orEmpty(personal.Name),
				"title": orEmpty(personal.Title),
			})
		}

		for i, skill := range personal.Skills {
			if err := validateSkill(fmt.Sprintf("personal.skills[%d]", i), skill); err != nil {
				return nil, err
			}
			content := fmt.Sprintf("%s: %s Tools: %s",
				*skill.Category,
				p.text(*skill.Description),
				strings.Join(skill.Tools, ", "))
			emit(models.ChunkSkill, content, models.Metadata{
				"category": *skill.Category,
			})
		}

		content := fmt.Sprintf("Contact: %s, %s, %s",
			orEmpty(personal.Email),
			orEmpty(personal.Phone),
			orEmpty(personal.Location))
		emit(models.ChunkContact, content, models.Metadata{})
	}

	for i, edu := range profile.Education {
		if err := validateEducation(fmt.Sprintf("education[%d]", i), edu); err != nil {
			return nil, err
		}
		content := fmt.Sprintf("%s from %s (%s)", *edu.Degree, *edu.Institution, orEmpty(edu.Period))
		if edu.Focus != nil {
			content += ". Focus: " + p.text(*edu.Focus)
		}
		emit(models.ChunkEducation, content, models.Metadata{
			"institution": *edu.Institution,
			"degree":      *edu.Degree,
		})
	}

	for i, exp := range profile.Experience {
		if err := validateExperience(fmt.Sprintf("experience[%d]", i), exp); err != nil {
			return nil, err
		}
		content := fmt.Sprintf("%s at %s (%s). %s",
			*exp.Title,
			*exp.Company,
			orEmpty(exp.Period),
			p.text(*exp.Description))
		emit(models.ChunkExperience, content, models.Metadata{
			"company":    *exp.Company,
			"title":      *exp.Title,
			"companyUrl": orEmpty(exp.CompanyURL),
		})
	}

	for i, project := range profile.Projects {
		if !project.IsActive() && !p.config.IncludeInactive {
			continue
		}
		if err := validateProject(fmt.Sprintf("projects[%d]", i), project); err != nil {
			return nil, err
		}

		content := fmt.Sprintf("%s: %s. %s. %s",
			*project.Title,
			*project.Subtitle,
			p.text(*project.ShortDescription),
			p.text(*project.FullDescription))

		skills := []string{}
		if project.Skills != nil {
			skills = append(skills, *project.Skills...)
			content += " Technologies: " + strings.Join(skills, ", ")
		}

		year := ""
		if project.Year != nil {
			year = string(*project.Year)
		}

		emit(models.ChunkProject, content, models.Metadata{
			"title":   *project.Title,
			"company": orEmpty(project.Company),
			"year":    year,
			"skills":  skills,
		})
	}

	if about := profile.AboutWebsite; about != nil {
		content := fmt.Sprintf("About this website: Goals: %s. Technical details: %s. Restrictions: %s. What was learned: %s.",
			p.text(orEmpty(about.Goals)),
			p.text(orEmpty(about.TechnicalDetails)),
			p.text(orEmpty(about.Restrictions)),
			p.text(orEmpty(about.Learned)))
		emit(models.ChunkWebsite, content, models.Metadata{})
	}

	return chunks, nil
}

// text prepares a free-text field for interpolation.
func (p *Processor) text(s string) string {
	if p.config.StripHTML {
		return stripHTML(s)
	}
	return s
}

func (p *Processor) cleanText(text string) string {
	if p.config.CollapseWhitespace {
		return strings.Join(strings.Fields(text), " ")
	}
	return text
}

const blockElements = "p, div, br, li, ul, ol, h1, h2, h3, h4, h5, h6, tr, blockquote"

func stripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	// keep words from adjacent blocks apart
	doc.Find(blockElements).AfterHtml(" ")

	return strings.Join(strings.Fields(doc.Text()), " ")
}
