package utils

import "github.com/gofiber/fiber/v2"

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Pagination - limit/offset параметры списочных запросов
type Pagination struct {
	Limit  int
	Offset int
}

func ParsePagination(c *fiber.Ctx) Pagination {
	p := Pagination{Limit: DefaultLimit}

	if limit := c.QueryInt("limit"); limit > 0 {
		p.Limit = limit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if offset := c.QueryInt("offset"); offset > 0 {
		p.Offset = offset
	}

	return p
}

// Slice applies the window to a slice length and returns the [from, to) bounds.
func (p Pagination) Slice(total int) (int, int) {
	from := p.Offset
	if from > total {
		from = total
	}
	to := from + p.Limit
	if to > total {
		to = total
	}
	return from, to
}
