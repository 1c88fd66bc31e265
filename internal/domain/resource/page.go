package resource

// PageMeta describes where a page sits in the full result set.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// PageResult is one normalized page of records. TotalsKnown is false when the
// backend reported neither totalItems nor totalPages and Meta was derived.
type PageResult struct {
	Items       []Resource `json:"items"`
	Meta        PageMeta   `json:"meta"`
	TotalsKnown bool       `json:"-"`
}

// TotalPages returns ceil(totalItems/limit) with a floor of 1.
func TotalPages(totalItems, limit int) int {
	if limit <= 0 {
		limit = 1 // avoid division by zero
	}
	pages := (totalItems + limit - 1) / limit
	if pages < 1 {
		return 1
	}
	return pages
}

// Normalize fills derived fields and keeps page and limit in range.
func (m PageMeta) Normalize() PageMeta {
	if m.Limit < 1 {
		m.Limit = 1
	}
	if m.Page < 1 {
		m.Page = 1
	}
	if m.TotalItems < 0 {
		m.TotalItems = 0
	}
	if m.TotalItems > 0 || m.TotalPages < 1 {
		m.TotalPages = TotalPages(m.TotalItems, m.Limit)
	}
	return m
}

// HasNext reports whether a page exists after the current one.
func (m PageMeta) HasNext() bool {
	return m.Page < m.TotalPages
}

// HasPrev reports whether a page exists before the current one.
func (m PageMeta) HasPrev() bool {
	return m.Page > 1
}

// Ordinal returns the display row number for a zero-based row on a page.
// It is never used as an identifier.
func Ordinal(rowIndex, page, limit int) int {
	return (page-1)*limit + rowIndex + 1
}
