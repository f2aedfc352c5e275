package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния
	// (например, повторная отправка уже завершённой попытки).
	ErrConflict = errors.New("resource state conflict")

	// ErrInfeasible используется, когда генератор вариантов не может
	// удовлетворить правило отбора: в пуле мало вопросов, либо не существует
	// подмножества с точной суммой баллов.
	ErrInfeasible = errors.New("selection rule cannot be satisfied")
)
