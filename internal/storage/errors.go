// Package storage содержит ошибки уровня хранилища, общие для всех репозиториев.
package storage

import "errors"

var (
	// ErrNotFound — запись не найдена или принадлежит другому пользователю.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушено ограничение уникальности.
	ErrAlreadyExists = errors.New("already exists")
	// ErrAlreadyPaid — счёт уже оплачен.
	ErrAlreadyPaid = errors.New("account already paid")
)
