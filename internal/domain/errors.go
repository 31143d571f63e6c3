package domain

import "errors"

var (
	// ErrValidation некорректный или неаутентифицированный ввод
	ErrValidation = errors.New("validation error")
	// ErrNotFound запрошенная сущность отсутствует
	ErrNotFound = errors.New("not found")
	// ErrForbidden профиль заблокирован или не имеет прав
	ErrForbidden = errors.New("forbidden")

	ErrPromoExhausted    = errors.New("promo code exhausted")
	ErrPromoExpired      = errors.New("promo code expired")
	ErrPersistence       = errors.New("persistence error")
	ErrUpstream          = errors.New("upstream error")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}
