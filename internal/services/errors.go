// Package services содержит ошибки, общие для бизнес-сервисов.
// Сами сервисы лежат во вложенных пакетах по предметным областям.
package services

import "errors"

var (
	// ErrInvalidInput — запрос прошёл валидацию формы, но не может быть выполнен.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials — неверный email или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrGoalCompleted — цель достигнута накопленной суммой и не может снова стать активной.
	ErrGoalCompleted = errors.New("goal completed")
)
