package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/midaytech/brainloop/internal/models"
)

const newTagID models.ID = "0"

var (
	errTitleRequired = errors.New("a title is required")
	errInvalidTime   = errors.New("enter a positive number of minutes")
)

// problemForm holds the editable fields of a problem while a form is shown.
type problemForm struct {
	Title      string
	Problem    string
	Examples   string
	Notes      string
	Tags       string
	Difficulty models.Difficulty
	Status     models.Status
}

func newProblemForm(p *models.Problem) *problemForm {
	f := &problemForm{
		Difficulty: models.Easy,
		Status:     models.ToDo,
	}

	if p == nil {
		return f
	}

	f.Title = p.Title
	f.Problem = p.Problem
	f.Examples = p.Examples
	f.Notes = p.Notes
	f.Tags = strings.Join(p.TagNames(), ", ")

	if p.Difficulty != "" {
		f.Difficulty = p.Difficulty
	}

	if p.Status != "" {
		f.Status = p.Status
	}

	return f
}

func (f *problemForm) form(title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Title").
				Value(&f.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errTitleRequired
					}

					return nil
				}),
			huh.NewSelect[models.Difficulty]().
				Title("Difficulty").
				Options(huh.NewOptions(models.Difficulties...)...).
				Value(&f.Difficulty),
			huh.NewSelect[models.Status]().
				Title("Status").
				Options(huh.NewOptions(models.Statuses...)...).
				Value(&f.Status),
			huh.NewInput().
				Title("Tags").
				Description("Comma-separated; new tags are created").
				Value(&f.Tags),
		),
		huh.NewGroup(
			huh.NewText().Title("Problem").Value(&f.Problem),
			huh.NewText().Title("Examples").Value(&f.Examples),
			huh.NewText().Title("Notes").Value(&f.Notes),
		),
	)
}

// input converts the form into an API payload. Tags that already exist
// keep their ID.
func (f *problemForm) input(known []models.Tag) *models.ProblemInput {
	return &models.ProblemInput{
		Title:      strings.TrimSpace(f.Title),
		Problem:    f.Problem,
		Examples:   f.Examples,
		Notes:      f.Notes,
		Difficulty: f.Difficulty,
		Status:     f.Status,
		Tags:       parseTags(f.Tags, known),
	}
}

// parseTags splits a comma-separated tag list, dropping blanks and
// duplicates. Names are matched against known tags without regard to
// letter case; unknown names become new tags.
func parseTags(s string, known []models.Tag) []models.Tag {
	tags := []models.Tag{}
	seen := make(map[string]bool)

	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)

		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}

		seen[key] = true

		tag := models.Tag{ID: newTagID, Name: name}

		for _, k := range known {
			if strings.EqualFold(k.Name, name) {
				tag = k
				break
			}
		}

		tags = append(tags, tag)
	}

	return tags
}

// needsFirstSolve reports whether a saved problem is done but has never
// had its solve time recorded.
func needsFirstSolve(p *models.Problem) bool {
	return p.Status == models.Done && !p.Timed()
}

// promptMinutes asks for a time in minutes.
func promptMinutes(title string) (models.Minutes, error) {
	var value string

	err := huh.NewInput().
		Title(title).
		Placeholder("minutes").
		Value(&value).
		Validate(func(s string) error {
			if _, err := models.ParseMinutes(s); err != nil {
				return errInvalidTime
			}

			return nil
		}).
		Run()
	if err != nil {
		return 0, err
	}

	return models.ParseMinutes(value)
}

func confirm(title string) (bool, error) {
	var ok bool

	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()

	return ok, err
}
