package dto

import (
	"time"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	"github.com/Junior279753/geopoll-sub000/internal/service"
)

// QuestionResponse представляет вопрос в формате для ответа клиенту.
// Правильный ответ не включается до завершения попытки.
type QuestionResponse struct {
	ID       uint   `json:"id"`
	ThemeID  uint   `json:"theme_id"`
	Text     string `json:"text"`
	OptionA  string `json:"option_a"`
	OptionB  string `json:"option_b"`
	OptionC  string `json:"option_c"`
	OptionD  string `json:"option_d"`
	OrderNum int    `json:"order_num"`
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) *QuestionResponse {
	return &QuestionResponse{
		ID:       q.ID,
		ThemeID:  q.ThemeID,
		Text:     q.Text,
		OptionA:  q.OptionA,
		OptionB:  q.OptionB,
		OptionC:  q.OptionC,
		OptionD:  q.OptionD,
		OrderNum: q.OrderNum,
	}
}

// NewQuestionResponses создает DTO для списка вопросов
func NewQuestionResponses(questions []entity.Question) []*QuestionResponse {
	responses := make([]*QuestionResponse, len(questions))
	for i := range questions {
		responses[i] = NewQuestionResponse(&questions[i])
	}
	return responses
}

// AttemptResponse представляет попытку в формате для ответа клиенту
type AttemptResponse struct {
	ID           uint       `json:"id"`
	ThemeID      uint       `json:"theme_id"`
	Score        int        `json:"score"`
	IsCompleted  bool       `json:"is_completed"`
	IsPassed     bool       `json:"is_passed"`
	RewardAmount int64      `json:"reward_amount"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// NewAttemptResponse создает DTO для попытки
func NewAttemptResponse(a *entity.SurveyAttempt) *AttemptResponse {
	return &AttemptResponse{
		ID:           a.ID,
		ThemeID:      a.ThemeID,
		Score:        a.Score,
		IsCompleted:  a.IsCompleted,
		IsPassed:     a.IsPassed,
		RewardAmount: a.RewardAmount,
		StartedAt:    a.StartedAt,
		CompletedAt:  a.CompletedAt,
	}
}

// StartAttemptResponse представляет начатую попытку вместе с вопросами
type StartAttemptResponse struct {
	Attempt   *AttemptResponse    `json:"attempt"`
	Questions []*QuestionResponse `json:"questions"`
}

// NewStartAttemptResponse создает DTO для начала прохождения
func NewStartAttemptResponse(attempt *entity.SurveyAttempt, questions []entity.Question) *StartAttemptResponse {
	return &StartAttemptResponse{
		Attempt:   NewAttemptResponse(attempt),
		Questions: NewQuestionResponses(questions),
	}
}

// AnswerOutcomeResponse представляет результат сохранения ответа
type AnswerOutcomeResponse struct {
	IsCorrect      bool `json:"is_correct"`
	CurrentScore   int  `json:"current_score"`
	TotalAnswered  int  `json:"total_answered"`
	TotalQuestions int  `json:"total_questions"`
}

// NewAnswerOutcomeResponse создает DTO для результата ответа
func NewAnswerOutcomeResponse(o *service.AnswerOutcome) *AnswerOutcomeResponse {
	return &AnswerOutcomeResponse{
		IsCorrect:      o.IsCorrect,
		CurrentScore:   o.CurrentScore,
		TotalAnswered:  o.TotalAnswered,
		TotalQuestions: o.TotalQuestions,
	}
}

// AnswerResponse представляет сохранённый ответ (без признака правильности)
type AnswerResponse struct {
	QuestionID     uint   `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}

// AttemptResultResponse представляет итог завершённой попытки
type AttemptResultResponse struct {
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	IsPassed       bool    `json:"is_passed"`
	RewardAmount   int64   `json:"reward_amount"`
	SuccessRate    float64 `json:"success_rate"`
}

// AnswerReviewResponse представляет ответ в разборе завершённой попытки
type AnswerReviewResponse struct {
	QuestionID     uint   `json:"question_id"`
	SelectedOption string `json:"selected_option"`
	IsCorrect      bool   `json:"is_correct"`
}

// CompletionResponse представляет результат завершения попытки с разбором
type CompletionResponse struct {
	Result  *AttemptResultResponse `json:"result"`
	Answers []AnswerReviewResponse `json:"answers"`
}

// NewCompletionResponse создает DTO для завершённой попытки.
// totalQuestions берётся из настроек опроса, не из количества ответов.
func NewCompletionResponse(attempt *entity.SurveyAttempt, answers []entity.UserAnswer, totalQuestions int) *CompletionResponse {
	review := make([]AnswerReviewResponse, len(answers))
	for i, a := range answers {
		review[i] = AnswerReviewResponse{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
			IsCorrect:      a.IsCorrect,
		}
	}
	return &CompletionResponse{
		Result: &AttemptResultResponse{
			Score:          attempt.Score,
			TotalQuestions: totalQuestions,
			IsPassed:       attempt.IsPassed,
			RewardAmount:   attempt.RewardAmount,
			SuccessRate:    attempt.SuccessRate(totalQuestions),
		},
		Answers: review,
	}
}

// AttemptDetailResponse представляет завершённую попытку с разбором ответов
type AttemptDetailResponse struct {
	Attempt *AttemptResponse `json:"attempt"`
	Answers []AnswerResponse `json:"answers"`
}

// NewAttemptDetailResponse создает DTO для детального просмотра попытки
func NewAttemptDetailResponse(attempt *entity.SurveyAttempt, answers []entity.UserAnswer) *AttemptDetailResponse {
	converted := make([]AnswerResponse, len(answers))
	for i, a := range answers {
		converted[i] = AnswerResponse{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
		}
	}
	return &AttemptDetailResponse{
		Attempt: NewAttemptResponse(attempt),
		Answers: converted,
	}
}

// PaginatedAttemptsResponse представляет пагинированную историю попыток
type PaginatedAttemptsResponse struct {
	Attempts []*AttemptResponse `json:"attempts"`
	Total    int64              `json:"total"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}

// NewPaginatedAttemptsResponse создает DTO для истории попыток
func NewPaginatedAttemptsResponse(attempts []entity.SurveyAttempt, total int64, limit, offset int) *PaginatedAttemptsResponse {
	converted := make([]*AttemptResponse, len(attempts))
	for i := range attempts {
		converted[i] = NewAttemptResponse(&attempts[i])
	}
	return &PaginatedAttemptsResponse{
		Attempts: converted,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}
}

// ThemeResponse представляет тему опроса для клиента
type ThemeResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
	Passed      bool   `json:"passed"`
	Ongoing     bool   `json:"ongoing"`
	AttemptID   uint   `json:"attempt_id,omitempty"`
}

// NewThemeResponses создает DTO для списка тем со статусами пользователя
func NewThemeResponses(statuses []service.ThemeStatus) []*ThemeResponse {
	responses := make([]*ThemeResponse, len(statuses))
	for i, s := range statuses {
		responses[i] = &ThemeResponse{
			ID:          s.Theme.ID,
			Title:       s.Theme.Title,
			Description: s.Theme.Description,
			IsActive:    s.Theme.IsActive,
			Passed:      s.Passed,
			Ongoing:     s.Ongoing,
			AttemptID:   s.AttemptID,
		}
	}
	return responses
}
