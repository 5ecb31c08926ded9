package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

func createTestThemeService(themeRepo *MockThemeRepository, questionRepo *MockQuestionRepository) *ThemeService {
	return NewThemeService(themeRepo, questionRepo, new(MockAttemptRepository), getTestSurveyConfig())
}

func TestThemeService_SetActive_RequiresFullQuestionSet(t *testing.T) {
	// Arrange: в теме только 7 активных вопросов
	themeRepo := new(MockThemeRepository)
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("CountActive", uint(5)).Return(int64(7), nil)

	svc := createTestThemeService(themeRepo, questionRepo)

	// Act
	err := svc.SetActive(5, true)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "10")
	themeRepo.AssertNotCalled(t, "SetActive")
}

func TestThemeService_SetActive_Success(t *testing.T) {
	// Arrange
	themeRepo := new(MockThemeRepository)
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("CountActive", uint(5)).Return(int64(10), nil)
	themeRepo.On("SetActive", uint(5), true).Return(nil)

	svc := createTestThemeService(themeRepo, questionRepo)

	// Act
	err := svc.SetActive(5, true)

	// Assert
	require.NoError(t, err)
	themeRepo.AssertExpectations(t)
}

func TestThemeService_SetActive_DeactivateSkipsCount(t *testing.T) {
	// Arrange: выключение темы не требует полного набора вопросов
	themeRepo := new(MockThemeRepository)
	questionRepo := new(MockQuestionRepository)
	themeRepo.On("SetActive", uint(5), false).Return(nil)

	svc := createTestThemeService(themeRepo, questionRepo)

	// Act
	err := svc.SetActive(5, false)

	// Assert
	require.NoError(t, err)
	questionRepo.AssertNotCalled(t, "CountActive")
}

func TestThemeService_Create_StartsInactive(t *testing.T) {
	// Arrange
	themeRepo := new(MockThemeRepository)
	themeRepo.On("Create", mock.MatchedBy(func(theme *entity.SurveyTheme) bool {
		return theme.Title == "История" && !theme.IsActive
	})).Return(nil)

	svc := createTestThemeService(themeRepo, new(MockQuestionRepository))

	// Act
	theme, err := svc.Create("История", "Вопросы по всемирной истории")

	// Assert
	require.NoError(t, err)
	assert.False(t, theme.IsActive)
	themeRepo.AssertExpectations(t)
}

func TestThemeService_AddQuestion_InvalidCorrectOption(t *testing.T) {
	// Arrange
	themeRepo := new(MockThemeRepository)
	questionRepo := new(MockQuestionRepository)
	themeRepo.On("GetByID", uint(5)).Return(&entity.SurveyTheme{ID: 5}, nil)

	svc := createTestThemeService(themeRepo, questionRepo)

	// Act
	_, err := svc.AddQuestion(5, QuestionInput{
		Text:          "Вопрос",
		OptionA:       "1",
		OptionB:       "2",
		OptionC:       "3",
		OptionD:       "4",
		CorrectOption: "X",
	})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	questionRepo.AssertNotCalled(t, "Create")
}

func TestThemeService_AddQuestionBatch_AssignsOrder(t *testing.T) {
	// Arrange: вопросы без order_num получают порядковые номера
	themeRepo := new(MockThemeRepository)
	questionRepo := new(MockQuestionRepository)
	themeRepo.On("GetByID", uint(5)).Return(&entity.SurveyTheme{ID: 5}, nil)
	questionRepo.On("CreateBatch", mock.MatchedBy(func(questions []entity.Question) bool {
		return len(questions) == 2 && questions[0].OrderNum == 1 && questions[1].OrderNum == 2
	})).Return(nil)

	svc := createTestThemeService(themeRepo, questionRepo)

	inputs := []QuestionInput{
		{Text: "Первый", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectOption: "a"},
		{Text: "Второй", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectOption: "B"},
	}

	// Act
	questions, err := svc.AddQuestionBatch(5, inputs)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "A", questions[0].CorrectOption, "Буква должна нормализоваться к верхнему регистру")
	questionRepo.AssertExpectations(t)
}

func TestThemeService_ListForUser_MarksPassedAndOngoing(t *testing.T) {
	// Arrange
	themeRepo := new(MockThemeRepository)
	attemptRepo := new(MockAttemptRepository)

	themes := []entity.SurveyTheme{
		{ID: 1, Title: "Пройдена", IsActive: true},
		{ID: 2, Title: "В процессе", IsActive: true},
		{ID: 3, Title: "Не начата", IsActive: true},
	}
	themeRepo.On("List", true).Return(themes, nil)
	attemptRepo.On("HasPassed", uint(7), uint(1)).Return(true, nil)
	attemptRepo.On("HasPassed", uint(7), uint(2)).Return(false, nil)
	attemptRepo.On("HasPassed", uint(7), uint(3)).Return(false, nil)
	attemptRepo.On("GetOngoing", uint(7), uint(2)).Return(&entity.SurveyAttempt{ID: 42, UserID: 7, ThemeID: 2}, nil)
	attemptRepo.On("GetOngoing", uint(7), uint(3)).Return(nil, apperrors.ErrNotFound)

	svc := NewThemeService(themeRepo, new(MockQuestionRepository), attemptRepo, getTestSurveyConfig())

	// Act
	statuses, err := svc.ListForUser(7)

	// Assert
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.True(t, statuses[0].Passed)
	assert.True(t, statuses[1].Ongoing)
	assert.Equal(t, uint(42), statuses[1].AttemptID)
	assert.False(t, statuses[2].Passed)
	assert.False(t, statuses[2].Ongoing)
}
