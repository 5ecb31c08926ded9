package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
)

func TestNewCompletionResponse_UsesConfiguredQuestionCount(t *testing.T) {
	// Arrange
	attempt := &entity.SurveyAttempt{
		ID:       10,
		ThemeID:  5,
		Score:    9,
		IsPassed: false,
	}
	answers := []entity.UserAnswer{
		{QuestionID: 1, SelectedOption: "C", IsCorrect: true},
		{QuestionID: 2, SelectedOption: "A", IsCorrect: false},
	}

	// Act
	resp := NewCompletionResponse(attempt, answers, 10)

	// Assert: итог считается от настроенного числа вопросов, не от числа ответов
	require.NotNil(t, resp.Result)
	assert.Equal(t, 10, resp.Result.TotalQuestions)
	assert.Equal(t, 9, resp.Result.Score)
	assert.InDelta(t, 90.0, resp.Result.SuccessRate, 0.001)
	assert.False(t, resp.Result.IsPassed)

	require.Len(t, resp.Answers, 2)
	assert.True(t, resp.Answers[0].IsCorrect)
	assert.Equal(t, "A", resp.Answers[1].SelectedOption)
}
