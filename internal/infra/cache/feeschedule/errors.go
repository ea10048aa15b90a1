package feeschedule

import "errors"

var (
	// ErrCacheMiss возвращается, когда значения нет в кэше или оно устарело
	ErrCacheMiss = errors.New("feeschedule.cache: miss")

	// ErrCacheBackend возвращается при ошибке хранилища кэша
	ErrCacheBackend = errors.New("feeschedule.cache: backend error")

	// ErrCodec возвращается при ошибке (де)сериализации значения
	ErrCodec = errors.New("feeschedule.cache: codec error")
)
