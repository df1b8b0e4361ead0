package processor_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/profile-embed/internal/models"
	"github.com/xhad/profile-embed/pkg/processor"
)

const fullProfile = `{
  "personal": {
    "name": "Ana Silva",
    "title": "Engineer",
    "summary": "Builds things.",
    "email": "ana@example.com",
    "phone": "+351 900",
    "location": "Porto",
    "skills": [
      {"category": "Languages", "description": "Typed and untyped.", "tools": ["Go", "Python"]},
      {"category": "Cloud", "description": "Runs things."}
    ]
  },
  "education": [
    {"degree": "MSc", "institution": "FEUP", "period": "2015-2017", "focus": "Systems"},
    {"degree": "BSc", "institution": "UP", "period": "2012-2015"}
  ],
  "experience": [
    {"title": "Engineer", "company": "Acme", "period": "2018-now", "description": "Shipped it.", "companyUrl": "https://acme.test"}
  ],
  "projects": [
    {"title": "One", "subtitle": "First", "shortDescription": "Short", "fullDescription": "Full", "company": "Acme", "year": 2021, "skills": ["Go", "SQL"]},
    {"title": "Two", "subtitle": "Second", "shortDescription": "S", "fullDescription": "F", "active": false},
    {"title": "Three", "subtitle": "Third", "shortDescription": "S", "fullDescription": "F", "active": true, "year": "2019"}
  ],
  "aboutWebsite": {"goals": "G", "technicalDetails": "T", "restrictions": "R", "learned": "L"}
}`

func parse(t *testing.T, doc string) *models.Profile {
	t.Helper()
	var profile models.Profile
	require.NoError(t, json.Unmarshal([]byte(doc), &profile))
	return &profile
}

func types(chunks []models.Chunk) []models.ChunkType {
	out := make([]models.ChunkType, len(chunks))
	for i, c := range chunks {
		out[i] = c.Type
	}
	return out
}

func TestExtract_PersonalExample(t *testing.T) {
	profile := parse(t, `{"personal":{"summary":"S","skills":[{"category":"Languages","description":"D","tools":["Go","Rust"]}],"email":"a@b.com"}}`)

	chunks, err := processor.Extract(profile)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, models.Chunk{
		Type:     models.ChunkSummary,
		Content:  "S",
		Metadata: models.Metadata{"name": "", "title": ""},
	}, chunks[0])
	assert.Equal(t, models.Chunk{
		Type:     models.ChunkSkill,
		Content:  "Languages: D Tools: Go, Rust",
		Metadata: models.Metadata{"category": "Languages"},
	}, chunks[1])
	assert.Equal(t, models.Chunk{
		Type:     models.ChunkContact,
		Content:  "Contact: a@b.com, , ",
		Metadata: models.Metadata{},
	}, chunks[2])
}

func TestExtract_FullProfileOrder(t *testing.T) {
	chunks, err := processor.Extract(parse(t, fullProfile))
	require.NoError(t, err)

	assert.Equal(t, []models.ChunkType{
		models.ChunkSummary,
		models.ChunkSkill,
		models.ChunkSkill,
		models.ChunkContact,
		models.ChunkEducation,
		models.ChunkEducation,
		models.ChunkExperience,
		models.ChunkProject,
		models.ChunkProject,
		models.ChunkWebsite,
	}, types(chunks))

	for _, c := range chunks {
		assert.NotEmpty(t, c.Content, "chunk %s", c.Type)
		assert.Nil(t, c.Embedding)
	}

	assert.Equal(t, "Cloud: Runs things. Tools: ", chunks[2].Content)
	assert.Equal(t, "Contact: ana@example.com, +351 900, Porto", chunks[3].Content)
	assert.Equal(t, "MSc from FEUP (2015-2017). Focus: Systems", chunks[4].Content)
	assert.Equal(t, "BSc from UP (2012-2015)", chunks[5].Content)
	assert.Equal(t, "Engineer at Acme (2018-now). Shipped it.", chunks[6].Content)
	assert.Equal(t, models.Metadata{
		"company":    "Acme",
		"title":      "Engineer",
		"companyUrl": "https://acme.test",
	}, chunks[6].Metadata)

	assert.Equal(t, "One: First. Short. Full Technologies: Go, SQL", chunks[7].Content)
	assert.Equal(t, models.Metadata{
		"title":   "One",
		"company": "Acme",
		"year":    "2021",
		"skills":  []string{"Go", "SQL"},
	}, chunks[7].Metadata)

	assert.Equal(t, "Three: Third. S. F", chunks[8].Content)
	assert.Equal(t, models.Metadata{
		"title":   "Three",
		"company": "",
		"year":    "2019",
		"skills":  []string{},
	}, chunks[8].Metadata)

	assert.Equal(t, "About this website: Goals: G. Technical details: T. Restrictions: R. What was learned: L.", chunks[9].Content)
}

func TestExtract_ContactChunk(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    int
		content string
	}{
		{"empty personal", `{"personal":{}}`, 1, "Contact: , , "},
		{"only phone", `{"personal":{"phone":"123"}}`, 1, "Contact: , 123, "},
		{"no personal", `{"education":[]}`, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := processor.Extract(parse(t, tt.doc))
			require.NoError(t, err)

			var contacts []models.Chunk
			for _, c := range chunks {
				if c.Type == models.ChunkContact {
					contacts = append(contacts, c)
				}
			}
			require.Len(t, contacts, tt.want)
			if tt.want == 1 {
				assert.Equal(t, tt.content, contacts[0].Content)
			}
		})
	}
}

func TestExtract_ProjectActive(t *testing.T) {
	tests := []struct {
		name   string
		active string
		want   int
	}{
		{"omitted", ``, 1},
		{"true", `,"active":true`, 1},
		{"false", `,"active":false`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"projects":[{"title":"P","subtitle":"Sub","shortDescription":"Short","fullDescription":"Full"` + tt.active + `}]}`
			chunks, err := processor.Extract(parse(t, doc))
			require.NoError(t, err)
			assert.Len(t, chunks, tt.want)
		})
	}
}

func TestExtract_InactiveProjectSkipsValidation(t *testing.T) {
	chunks, err := processor.Extract(parse(t, `{"projects":[{"title":"P","active":false}]}`))
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestExtract_IncludeInactive(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{IncludeInactive: true})
	chunks, err := p.Process(parse(t, fullProfile))
	require.NoError(t, err)

	var titles []any
	for _, c := range chunks {
		if c.Type == models.ChunkProject {
			titles = append(titles, c.Metadata["title"])
		}
	}
	assert.Equal(t, []any{"One", "Two", "Three"}, titles)
}

func TestExtract_PresenceOfKeySuffixes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "education without focus",
			doc:  `{"education":[{"degree":"D","institution":"I","period":"P"}]}`,
			want: "D from I (P)",
		},
		{
			name: "education with focus",
			doc:  `{"education":[{"degree":"D","institution":"I","period":"P","focus":"X"}]}`,
			want: "D from I (P). Focus: X",
		},
		{
			name: "education with empty focus",
			doc:  `{"education":[{"degree":"D","institution":"I","focus":""}]}`,
			want: "D from I (). Focus: ",
		},
		{
			name: "project without skills key",
			doc:  `{"projects":[{"title":"T","subtitle":"S","shortDescription":"A","fullDescription":"B"}]}`,
			want: "T: S. A. B",
		},
		{
			name: "project with empty skills",
			doc:  `{"projects":[{"title":"T","subtitle":"S","shortDescription":"A","fullDescription":"B","skills":[]}]}`,
			want: "T: S. A. B Technologies: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := processor.Extract(parse(t, tt.doc))
			require.NoError(t, err)
			require.Len(t, chunks, 1)
			assert.Equal(t, tt.want, chunks[0].Content)
		})
	}
}

func TestExtract_MissingRequiredField(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
	}{
		{"skill category", `{"personal":{"skills":[{"description":"D"}]}}`, "personal.skills[0].category"},
		{"skill description", `{"personal":{"skills":[{"category":"C","description":"D"},{"category":"C"}]}}`, "personal.skills[1].description"},
		{"education degree", `{"education":[{"institution":"I"}]}`, "education[0].degree"},
		{"experience description", `{"experience":[{"title":"T","company":"C"}]}`, "experience[0].description"},
		{"project subtitle", `{"projects":[{"title":"T","shortDescription":"A","fullDescription":"B"}]}`, "projects[0].subtitle"},
		{"null counts as absent", `{"education":[{"degree":"D","institution":null}]}`, "education[0].institution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := processor.Extract(parse(t, tt.doc))
			require.Error(t, err)
			assert.Nil(t, chunks)
			assert.True(t, errors.Is(err, processor.ErrMissingRequiredField))

			var missing *processor.MissingFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.path, missing.Path)
		})
	}
}

func TestExtract_BlankSummaryDropped(t *testing.T) {
	chunks, err := processor.Extract(parse(t, `{"personal":{"summary":""}}`))
	require.NoError(t, err)
	assert.Equal(t, []models.ChunkType{models.ChunkContact}, types(chunks))
}

func TestExtract_EmptyProfile(t *testing.T) {
	chunks, err := processor.Extract(parse(t, `{}`))
	require.NoError(t, err)
	assert.NotNil(t, chunks)
	assert.Empty(t, chunks)

	chunks, err = processor.Extract(nil)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestProcessor_TypeFilter(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{
		Types: []models.ChunkType{models.ChunkWebsite, models.ChunkSkill},
	})

	chunks, err := p.Process(parse(t, fullProfile))
	require.NoError(t, err)
	assert.Equal(t, []models.ChunkType{
		models.ChunkSkill,
		models.ChunkSkill,
		models.ChunkWebsite,
	}, types(chunks))
}

func TestProcessor_TypeFilterStillValidates(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{
		Types: []models.ChunkType{models.ChunkSummary},
	})

	_, err := p.Process(parse(t, `{"education":[{"degree":"D"}]}`))
	assert.ErrorIs(t, err, processor.ErrMissingRequiredField)
}

func TestProcessor_StripHTML(t *testing.T) {
	doc := `{"projects":[{"title":"T","subtitle":"S","shortDescription":"Plain &amp; simple","fullDescription":"<p>Built a <b>thing</b>.</p><p>Then   more.</p>"}]}`

	plain, err := processor.Extract(parse(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "T: S. Plain &amp; simple. <p>Built a <b>thing</b>.</p><p>Then   more.</p>", plain[0].Content)

	p := processor.NewWithConfig(processor.ProcessorConfig{StripHTML: true})
	chunks, err := p.Process(parse(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "T: S. Plain &amp; simple. Built a thing. Then more.", chunks[0].Content)
}

func TestProcessor_CollapseWhitespace(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{CollapseWhitespace: true})
	chunks, err := p.Process(parse(t, `{"personal":{"summary":"  Line one.\n\n  Line   two. "}}`))
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "Line one. Line two.", chunks[0].Content)
	assert.Equal(t, "Contact: , ,", chunks[1].Content)
}
