package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/examprep-service/internal/models"
)

// Question type labels accepted by the prompt composer
var questionTypes = map[string]bool{
	"MCQ":          true,
	"Passage":      true,
	"Figure Logic": true,
	"Short Answer": true,
}

// IsQuestionType reports whether t has a formatting rule block
func IsQuestionType(t string) bool {
	return questionTypes[t]
}

func registerRules(validate *validator.Validate) {
	validate.RegisterValidation("task_title", func(fl validator.FieldLevel) bool {
		title := strings.TrimSpace(fl.Field().String())
		return len(title) >= 1 && len(title) <= 120
	})

	validate.RegisterValidation("task_status", func(fl validator.FieldLevel) bool {
		return models.TaskStatus(fl.Field().String()).IsValid()
	})

	validate.RegisterValidation("question_type", func(fl validator.FieldLevel) bool {
		return IsQuestionType(fl.Field().String())
	})
}
