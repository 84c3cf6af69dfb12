package domain

import "errors"

var (
	// ErrForbidden: бот не может писать в чат (кикнут, нет прав, канал без админки).
	ErrForbidden = errors.New("recipient forbidden")
	// ErrBadTarget: чат не найден или идентификатор получателя некорректен.
	ErrBadTarget = errors.New("invalid recipient")
	// ErrEmptyAnswer: модель не вернула текст.
	ErrEmptyAnswer = errors.New("empty answer")
)
