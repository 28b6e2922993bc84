package service

import "errors"

// Классы ошибок ядра. Хранилище и обработчики сопоставляют с ними
// свои ошибки через errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("conflict")
)
