package diagnosis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplestep/pathfinder/internal/catalog"
	"github.com/simplestep/pathfinder/internal/models"
)

func TestNewState_EveryQuestionDefaultsFalse(t *testing.T) {
	c := catalog.Default()
	s := NewState(c)

	for _, cat := range c.Categories() {
		for _, q := range cat.Questions {
			v, ok := s.answers[cat.ID][q.ID]
			assert.True(t, ok, "missing entry %s.%s", cat.ID, q.ID)
			assert.False(t, v)
		}
		assert.False(t, s.IsCategorySelected(cat.ID))
	}
	assert.Equal(t, models.EnvironmentNone, s.Environment())
}

func TestSetAnswer(t *testing.T) {
	s := NewState(nil)

	require.NoError(t, s.SetAnswer(models.CategoryLanguage, "echolalia", true))
	assert.True(t, s.Answer(models.CategoryLanguage, "echolalia"))
	assert.True(t, s.IsCategorySelected(models.CategoryLanguage))

	require.NoError(t, s.SetAnswer(models.CategoryLanguage, "echolalia", false))
	assert.False(t, s.IsCategorySelected(models.CategoryLanguage))
}

func TestSetAnswer_InvalidQuestion(t *testing.T) {
	s := NewState(nil)

	err := s.SetAnswer(models.CategoryLanguage, "problemBehavior", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidQuestion))
	assert.Contains(t, err.Error(), "language.problemBehavior")

	err = s.SetAnswer("motor", "other", true)
	assert.True(t, errors.Is(err, ErrInvalidQuestion))
}

func TestSetEnvironment(t *testing.T) {
	s := NewState(nil)

	require.NoError(t, s.SetEnvironment(models.EnvironmentHome))
	require.NoError(t, s.SetEnvironment(models.EnvironmentInstitution))
	assert.Equal(t, models.EnvironmentInstitution, s.Environment())

	err := s.SetEnvironment("school")
	assert.True(t, errors.Is(err, ErrInvalidEnvironment))
	assert.Equal(t, models.EnvironmentInstitution, s.Environment())

	require.NoError(t, s.SetEnvironment(models.EnvironmentNone))
	assert.Equal(t, models.EnvironmentNone, s.Environment())
}

func TestComplete_MissingEnvironment(t *testing.T) {
	s := NewState(nil)
	require.NoError(t, s.SetAnswer(models.CategoryBehavior, "problemBehavior", true))

	_, err := s.Complete()
	assert.ErrorIs(t, err, ErrMissingEnvironment)

	// State is untouched and can still be completed afterwards.
	assert.True(t, s.Answer(models.CategoryBehavior, "problemBehavior"))
	require.NoError(t, s.SetEnvironment(models.EnvironmentExpert))
	data, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, models.EnvironmentExpert, data.Environment())
}

func TestComplete_SnapshotIsImmutable(t *testing.T) {
	s := NewState(nil)
	require.NoError(t, s.SetAnswer(models.CategoryDevelopment, "diverseTasks", true))
	require.NoError(t, s.SetEnvironment(models.EnvironmentHome))

	data, err := s.Complete()
	require.NoError(t, err)

	require.NoError(t, s.SetAnswer(models.CategoryDevelopment, "diverseTasks", false))
	require.NoError(t, s.SetAnswer(models.CategoryLanguage, "other", true))
	require.NoError(t, s.SetEnvironment(models.EnvironmentExpert))

	assert.True(t, data.Answer(models.CategoryDevelopment, "diverseTasks"))
	assert.False(t, data.Answer(models.CategoryLanguage, "other"))
	assert.Equal(t, models.EnvironmentHome, data.Environment())

	answers := data.Answers(models.CategoryDevelopment)
	answers["diverseTasks"] = false
	assert.True(t, data.Answer(models.CategoryDevelopment, "diverseTasks"))
}

func TestActiveCategories(t *testing.T) {
	tests := []struct {
		name    string
		answers map[models.ProblemCategory][]string
		want    models.CategorySet
	}{
		{
			name: "nothing checked",
			want: models.NewCategorySet(),
		},
		{
			name:    "other flag alone activates its category",
			answers: map[models.ProblemCategory][]string{models.CategoryLanguage: {"other"}},
			want:    models.NewCategorySet(models.CategoryLanguage),
		},
		{
			name: "two categories",
			answers: map[models.ProblemCategory][]string{
				models.CategoryBehavior:    {"routineChangeDifficulty"},
				models.CategoryDevelopment: {"comprehensiveSupport", "other"},
			},
			want: models.NewCategorySet(models.CategoryBehavior, models.CategoryDevelopment),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(nil)
			for cat, ids := range tt.answers {
				for _, id := range ids {
					require.NoError(t, s.SetAnswer(cat, id, true))
				}
			}
			require.NoError(t, s.SetEnvironment(models.EnvironmentHome))

			data, err := s.Complete()
			require.NoError(t, err)
			assert.Equal(t, tt.want, data.ActiveCategories())
			for _, cat := range models.Categories {
				assert.Equal(t, tt.want.Has(cat), data.IsActive(cat))
			}
		})
	}
}

func TestNewData_CopiesAnswers(t *testing.T) {
	answers := Answers{models.CategoryLanguage: {"other": true}}
	data := NewData(answers, models.EnvironmentNone)

	answers[models.CategoryLanguage]["other"] = false
	assert.True(t, data.Answer(models.CategoryLanguage, "other"))
	assert.Equal(t, models.EnvironmentNone, data.Environment())
	assert.Equal(t, models.NewCategorySet(models.CategoryLanguage), data.ActiveCategories())
}
