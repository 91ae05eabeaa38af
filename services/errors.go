package services

import "errors"

// Ошибки бизнес-логики склада. Контроллеры сопоставляют их с HTTP статусами.
var (
	ErrInvalidAmount     = errors.New("количество должно быть положительным числом")
	ErrEmptyName         = errors.New("имя не может быть пустым")
	ErrMaterialNotFound  = errors.New("материал не найден")
	ErrCategoryNotFound  = errors.New("категория не найдена")
	ErrInsufficientStock = errors.New("недостаточно материалов")
	ErrCategoryNotEmpty  = errors.New("в категории есть материалы, удаление невозможно")
)
