// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков. Помимо текста ошибки ответ
// несёт стабильный машиночитаемый код, по которому клиент ветвится вместо
// сравнения строк сообщений.
package response

import (
	"fmt"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON-ответа сервера.
type Response struct {
	Status string       `json:"status"`
	Error  string       `json:"error,omitempty"`
	Code   string       `json:"code,omitempty"`
	Issues []FieldIssue `json:"issues,omitempty"`
	Data   any          `json:"data,omitempty"`
}

// FieldIssue одна ошибка валидации, привязанная к полю формы.
type FieldIssue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
	Code   string `json:"code" example:"BAD_REQUEST"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Машиночитаемые коды ошибок, стабильная часть контракта API.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeValidation       = "VALIDATION_ERROR"
	CodeEmailRegistered  = "EMAIL_ALREADY_REGISTERED"
	CodeNameTaken        = "PROGRAM_NAME_TAKEN"
	CodeAlreadyPaid      = "ALREADY_SUBSCRIBED"
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeBadCredentials   = "INVALID_CREDENTIALS"
	CodeTooManyRequests  = "TOO_MANY_REQUESTS"
	CodeInternal         = "INTERNAL_ERROR"
	CodeEmailSendFailure = "EMAIL_SEND_FAILED"
)

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой, сообщением и машиночитаемым кодом.
func Error(code, msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
		Code:   code,
	}
}

// ValidationError формирует Response со списком нарушений по полям.
func ValidationError(errs validator.ValidationErrors) Response {
	issues := make([]FieldIssue, 0, len(errs))

	for _, err := range errs {
		issue := FieldIssue{
			Field: err.Field(),
			Rule:  err.ActualTag(),
		}
		switch err.ActualTag() {
		case "required":
			issue.Message = fmt.Sprintf("field %s is a required field", err.Field())
		case "email":
			issue.Message = fmt.Sprintf("field %s must be a valid email address", err.Field())
		case "uuid":
			issue.Message = fmt.Sprintf("field %s must be a valid uuid", err.Field())
		case "min":
			issue.Message = fmt.Sprintf("field %s is shorter than allowed", err.Field())
		case "max":
			issue.Message = fmt.Sprintf("field %s is longer than allowed", err.Field())
		case "gt":
			issue.Message = fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param())
		default:
			issue.Message = fmt.Sprintf("field %s is not valid", err.Field())
		}
		issues = append(issues, issue)
	}
	return Response{
		Status: StatusError,
		Error:  "validation failed",
		Code:   CodeValidation,
		Issues: issues,
	}
}
