// Package apperr holds the business error taxonomy shared by usecases and the
// transport layer. Every error carries a Kind and the offending value so the
// handler can answer with a precise status without exposing storage details.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindUnknownItem                Kind = "UnknownItem"
	KindOutOfStock                 Kind = "OutOfStock"
	KindItemNotInBasket            Kind = "ItemNotInBasket"
	KindInvalidQuantity            Kind = "InvalidQuantity"
	KindInvalidSortKey             Kind = "InvalidSortKey"
	KindInvalidPage                Kind = "InvalidPage"
	KindInvalidPriceGroupPredicate Kind = "InvalidPriceGroupPredicate"
	KindDuplicateSession           Kind = "DuplicateSession"
	KindStorageConflict            Kind = "StorageConflict"
	KindInvalidItem                Kind = "InvalidItem"
	KindDuplicateItem              Kind = "DuplicateItem"
	KindDuplicateStock             Kind = "DuplicateStock"
	KindBasketNotFound             Kind = "BasketNotFound"
)

// Error is a classified failure. Value is the input that caused it.
type Error struct {
	Kind    Kind
	Message string
	Value   any
	Err     error
}

func (e *Error) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Value)
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match on Kind, so errors.Is(err, ErrUnknownItem) works for any
// UnknownItem error regardless of its value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrUnknownItem                = &Error{Kind: KindUnknownItem}
	ErrOutOfStock                 = &Error{Kind: KindOutOfStock}
	ErrItemNotInBasket            = &Error{Kind: KindItemNotInBasket}
	ErrInvalidQuantity            = &Error{Kind: KindInvalidQuantity}
	ErrInvalidSortKey             = &Error{Kind: KindInvalidSortKey}
	ErrInvalidPage                = &Error{Kind: KindInvalidPage}
	ErrInvalidPriceGroupPredicate = &Error{Kind: KindInvalidPriceGroupPredicate}
	ErrDuplicateSession           = &Error{Kind: KindDuplicateSession}
	ErrStorageConflict            = &Error{Kind: KindStorageConflict}
	ErrInvalidItem                = &Error{Kind: KindInvalidItem}
	ErrDuplicateItem              = &Error{Kind: KindDuplicateItem}
	ErrDuplicateStock             = &Error{Kind: KindDuplicateStock}
	ErrBasketNotFound             = &Error{Kind: KindBasketNotFound}
)

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func UnknownItem(code string) *Error {
	return &Error{Kind: KindUnknownItem, Message: "unknown item code", Value: code}
}

func OutOfStock(code string) *Error {
	return &Error{Kind: KindOutOfStock, Message: "item not in stock", Value: code}
}

func ItemNotInBasket(code string) *Error {
	return &Error{Kind: KindItemNotInBasket, Message: "item not in basket", Value: code}
}

func InvalidQuantity(count int) *Error {
	return &Error{Kind: KindInvalidQuantity, Message: "invalid quantity", Value: count}
}

func InvalidPrice(price any) *Error {
	return &Error{Kind: KindInvalidQuantity, Message: "invalid price", Value: price}
}

func InvalidSortKey(key string) *Error {
	return &Error{Kind: KindInvalidSortKey, Message: "invalid sort key", Value: key}
}

func InvalidPage(page int) *Error {
	return &Error{Kind: KindInvalidPage, Message: "invalid page", Value: page}
}

func InvalidPageSize(size int) *Error {
	return &Error{Kind: KindInvalidPage, Message: "invalid page size", Value: size}
}

func InvalidPriceGroup(detail any) *Error {
	return &Error{Kind: KindInvalidPriceGroupPredicate, Message: "invalid price group predicate", Value: detail}
}

func DuplicateSession(session string) *Error {
	return &Error{Kind: KindDuplicateSession, Message: "basket already exists for session", Value: session}
}

func BasketNotFound(session string) *Error {
	return &Error{Kind: KindBasketNotFound, Message: "basket not found", Value: session}
}

func InvalidItem(field string, value any) *Error {
	return &Error{Kind: KindInvalidItem, Message: fmt.Sprintf("invalid %s", field), Value: value}
}

func DuplicateItem(code string) *Error {
	return &Error{Kind: KindDuplicateItem, Message: "item code already exists", Value: code}
}

func DuplicateStock(code string) *Error {
	return &Error{Kind: KindDuplicateStock, Message: "stock already exists for item", Value: code}
}

// StorageConflict wraps a serialization failure that survived all retries.
// The cause is kept for logging but is not part of the message.
func StorageConflict(cause error) *Error {
	return &Error{Kind: KindStorageConflict, Message: "concurrent update conflict, retry the operation", Err: cause}
}
