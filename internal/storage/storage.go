// Package storage абстрагирует браузерное localStorage хранилище
// за интерфейсом ключ-значение: in-memory реализация для тестов и
// не-браузерных окружений, файловая - для персистентного кэша сессии.
package storage

import "errors"

// ErrKeyNotFound возвращается когда ключ отсутствует в хранилище
var ErrKeyNotFound = errors.New("key not found")

// Store определяет методы хранилища ключ-значение.
// Delete отсутствующего ключа не является ошибкой.
type Store interface {
	// Get возвращает значение по ключу или ErrKeyNotFound
	Get(key string) (string, error)

	// Set сохраняет значение по ключу
	Set(key, value string) error

	// Delete удаляет ключ
	Delete(key string) error
}
