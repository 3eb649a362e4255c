// Package validate проверяет тела запросов по декларативной схеме полей.
//
// Каждая сущность описывает обязательные поля один раз (schemas.go),
// а Check проверяет произвольный JSON payload против схемы:
//
//	if err := validate.Check(payload, validate.CandidateCreate); err != nil {
//	    // err — *ValidationError, перечисляет все нарушения
//	}
//
// Check чистая функция: не изменяет payload и не имеет побочных эффектов.
package validate
