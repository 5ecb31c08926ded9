package service

import (
	"fmt"
	"log"

	"github.com/Junior279753/geopoll-sub000/internal/config"
	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	"github.com/Junior279753/geopoll-sub000/internal/domain/repository"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

// ThemeService управляет темами опросов и их вопросами
type ThemeService struct {
	themeRepo    repository.ThemeRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	surveyCfg    config.SurveyConfig
}

// NewThemeService создает новый сервис тем
func NewThemeService(
	themeRepo repository.ThemeRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	surveyCfg config.SurveyConfig,
) *ThemeService {
	return &ThemeService{
		themeRepo:    themeRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		surveyCfg:    surveyCfg,
	}
}

// ThemeStatus описывает тему глазами конкретного пользователя
type ThemeStatus struct {
	Theme     entity.SurveyTheme `json:"theme"`
	Passed    bool               `json:"passed"`
	Ongoing   bool               `json:"ongoing"`
	AttemptID uint               `json:"attempt_id,omitempty"`
}

// ListForUser возвращает активные темы с признаками "пройдена" и
// "есть незавершённая попытка" для каждого пользователя
func (s *ThemeService) ListForUser(userID uint) ([]ThemeStatus, error) {
	themes, err := s.themeRepo.List(true)
	if err != nil {
		return nil, err
	}

	statuses := make([]ThemeStatus, 0, len(themes))
	for _, theme := range themes {
		status := ThemeStatus{Theme: theme}

		passed, err := s.attemptRepo.HasPassed(userID, theme.ID)
		if err != nil {
			return nil, err
		}
		status.Passed = passed

		if !passed {
			ongoing, err := s.attemptRepo.GetOngoing(userID, theme.ID)
			if err == nil {
				status.Ongoing = true
				status.AttemptID = ongoing.ID
			} else if !apperrors.IsNotFound(err) {
				return nil, err
			}
		}

		statuses = append(statuses, status)
	}
	return statuses, nil
}

// List возвращает все темы (для администратора)
func (s *ThemeService) List() ([]entity.SurveyTheme, error) {
	return s.themeRepo.List(false)
}

// GetByID возвращает тему по ID
func (s *ThemeService) GetByID(themeID uint) (*entity.SurveyTheme, error) {
	return s.themeRepo.GetByID(themeID)
}

// Create создает новую тему. Тема создаётся неактивной:
// активация возможна только с полным набором вопросов.
func (s *ThemeService) Create(title, description string) (*entity.SurveyTheme, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}

	theme := &entity.SurveyTheme{
		Title:       title,
		Description: description,
		IsActive:    false,
	}
	if err := s.themeRepo.Create(theme); err != nil {
		return nil, err
	}

	log.Printf("[ThemeService] Создана тема %d '%s'", theme.ID, theme.Title)
	return theme, nil
}

// Update обновляет заголовок и описание темы
func (s *ThemeService) Update(themeID uint, title, description string) (*entity.SurveyTheme, error) {
	theme, err := s.themeRepo.GetByID(themeID)
	if err != nil {
		return nil, err
	}

	if title != "" {
		theme.Title = title
	}
	theme.Description = description

	if err := s.themeRepo.Update(theme); err != nil {
		return nil, err
	}
	return theme, nil
}

// SetActive включает или выключает тему. Активация требует ровно
// полного набора активных вопросов, иначе попытки будут незавершаемы.
func (s *ThemeService) SetActive(themeID uint, active bool) error {
	if active {
		count, err := s.questionRepo.CountActive(themeID)
		if err != nil {
			return err
		}
		if count != int64(s.surveyCfg.QuestionsPerTheme) {
			return fmt.Errorf("%w: theme must have exactly %d active questions, has %d",
				apperrors.ErrValidation, s.surveyCfg.QuestionsPerTheme, count)
		}
	}
	return s.themeRepo.SetActive(themeID, active)
}

// Delete удаляет тему вместе с вопросами (каскад в БД)
func (s *ThemeService) Delete(themeID uint) error {
	return s.themeRepo.Delete(themeID)
}

// QuestionInput описывает вопрос при создании или обновлении
type QuestionInput struct {
	Text          string `json:"text" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectOption string `json:"correct_option" binding:"required"`
	OrderNum      int    `json:"order_num"`
}

func (in *QuestionInput) toEntity(themeID uint) (*entity.Question, error) {
	letter := entity.NormalizeAnswerLetter(in.CorrectOption)
	if letter == "" {
		return nil, fmt.Errorf("%w: correct option must be one of A-D", apperrors.ErrValidation)
	}
	if in.Text == "" || in.OptionA == "" || in.OptionB == "" || in.OptionC == "" || in.OptionD == "" {
		return nil, fmt.Errorf("%w: question text and all four options are required", apperrors.ErrValidation)
	}
	return &entity.Question{
		ThemeID:       themeID,
		Text:          in.Text,
		OptionA:       in.OptionA,
		OptionB:       in.OptionB,
		OptionC:       in.OptionC,
		OptionD:       in.OptionD,
		CorrectOption: letter,
		OrderNum:      in.OrderNum,
		IsActive:      true,
	}, nil
}

// AddQuestion добавляет вопрос к теме
func (s *ThemeService) AddQuestion(themeID uint, input QuestionInput) (*entity.Question, error) {
	if _, err := s.themeRepo.GetByID(themeID); err != nil {
		return nil, err
	}

	question, err := input.toEntity(themeID)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// AddQuestionBatch добавляет набор вопросов к теме одной вставкой
func (s *ThemeService) AddQuestionBatch(themeID uint, inputs []QuestionInput) ([]entity.Question, error) {
	if _, err := s.themeRepo.GetByID(themeID); err != nil {
		return nil, err
	}

	questions := make([]entity.Question, 0, len(inputs))
	for i, input := range inputs {
		question, err := input.toEntity(themeID)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if question.OrderNum == 0 {
			question.OrderNum = i + 1
		}
		questions = append(questions, *question)
	}

	if err := s.questionRepo.CreateBatch(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// UpdateQuestion обновляет вопрос
func (s *ThemeService) UpdateQuestion(questionID uint, input QuestionInput) (*entity.Question, error) {
	existing, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}

	updated, err := input.toEntity(existing.ThemeID)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.IsActive = existing.IsActive
	updated.CreatedAt = existing.CreatedAt

	if err := s.questionRepo.Update(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeactivateQuestion мягко удаляет вопрос из темы
func (s *ThemeService) DeactivateQuestion(questionID uint) error {
	return s.questionRepo.Deactivate(questionID)
}

// GetQuestions возвращает вопросы темы (включая правильные ответы — только
// для администратора; публичные вопросы отдаются через AttemptService)
func (s *ThemeService) GetQuestions(themeID uint) ([]entity.Question, error) {
	return s.questionRepo.GetByThemeID(themeID, false)
}
