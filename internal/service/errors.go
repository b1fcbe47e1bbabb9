package service

import (
	"errors"
	"fmt"
)

// Классы ошибок операций. Любая ошибка гасится на границе операции и
// превращается в единый ответ {message, error}; процесс не падает.
var (
	// ErrValidation — некорректные или отсутствующие поля; до побочных эффектов.
	ErrValidation = errors.New("validation")
	// ErrConflict — дубликат логина/телефона; проверяется поиском до вставки.
	ErrConflict = errors.New("conflict")
	// ErrNotFound — нет такой записи.
	ErrNotFound = errors.New("not found")
	// ErrUpload — сбой хостинга изображений; отчёт откатывается целиком.
	ErrUpload = errors.New("upload")
)

func validationf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, a...))
}

func conflictf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, a...))
}
