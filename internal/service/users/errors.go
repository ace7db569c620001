package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail возвращается при попытке создать пользователя с занятым email
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidRole возвращается при неизвестной роли
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
