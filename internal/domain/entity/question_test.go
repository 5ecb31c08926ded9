package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_IsCorrectAnswer(t *testing.T) {
	question := Question{CorrectOption: "C"}

	assert.True(t, question.IsCorrectAnswer("C"))
	assert.True(t, question.IsCorrectAnswer("c"), "Сравнение без учёта регистра")
	assert.True(t, question.IsCorrectAnswer(" C "), "Пробелы по краям игнорируются")
	assert.False(t, question.IsCorrectAnswer("A"))
	assert.False(t, question.IsCorrectAnswer(""))
}

func TestNormalizeAnswerLetter(t *testing.T) {
	assert.Equal(t, "A", NormalizeAnswerLetter("a"))
	assert.Equal(t, "D", NormalizeAnswerLetter(" d "))
	assert.Equal(t, "B", NormalizeAnswerLetter("B"))
	assert.Equal(t, "", NormalizeAnswerLetter("E"), "Буква вне A-D отклоняется")
	assert.Equal(t, "", NormalizeAnswerLetter("AB"))
	assert.Equal(t, "", NormalizeAnswerLetter(""))
	assert.Equal(t, "", NormalizeAnswerLetter("1"))
}

func TestCountCorrect(t *testing.T) {
	answers := []UserAnswer{
		{IsCorrect: true},
		{IsCorrect: false},
		{IsCorrect: true},
		{IsCorrect: true},
	}
	assert.Equal(t, 3, CountCorrect(answers))
	assert.Equal(t, 0, CountCorrect(nil))
}
