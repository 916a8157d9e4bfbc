package form

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// QuestionForm is the submitted question after trimming
type QuestionForm struct {
	Question string `json:"question" validate:"notblank"`
}

func NewQuestionForm(text string) QuestionForm {
	return QuestionForm{
		Question: strings.TrimSpace(text),
	}
}

func (f QuestionForm) Validate(validate *validator.Validate) error {
	return validate.Struct(f)
}

func (f QuestionForm) String() string {
	return f.Question
}
