package query

import "github.com/fekuna/omnipos-catalog-service/pkg/apperr"

// Page is a validated 1-based result window.
type Page struct {
	Number int
	Size   int
}

func NewPage(number, size int) (Page, error) {
	if number < 1 {
		return Page{}, apperr.InvalidPage(number)
	}
	if size < 1 {
		return Page{}, apperr.InvalidPageSize(size)
	}
	return Page{Number: number, Size: size}, nil
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) Limit() int {
	return p.Size
}
