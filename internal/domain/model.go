package domain

import (
	"fmt"
	"math"
)

// BaseModel is the common base struct for all domain models.
// Only the surrogate key is kept: the users table carries no audit columns.
type BaseModel struct {
	ID uint `gorm:"primaryKey" json:"id"`
}

// PageRequest is a zero-based offset/limit window over an ordered result set.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest validates page and size and returns the window.
// page must be >= 0 and size >= 1; there is no upper bound on size.
func NewPageRequest(page, size int) (PageRequest, error) {
	if page < 0 {
		return PageRequest{}, NewAppError(CodeInvalidArgument, fmt.Sprintf("page must not be negative, got %d", page), nil)
	}
	if size < 1 {
		return PageRequest{}, NewAppError(CodeInvalidArgument, fmt.Sprintf("size must be at least 1, got %d", size), nil)
	}
	return PageRequest{Page: page, Size: size}, nil
}

// Offset returns the number of rows skipped before this window.
// It saturates at math.MaxInt64 instead of wrapping.
func (r PageRequest) Offset() int64 {
	page, size := int64(r.Page), int64(r.Size)
	if page <= 0 || size <= 0 {
		return 0
	}
	if page > math.MaxInt64/size {
		return math.MaxInt64
	}
	return page * size
}

// PageCount returns the number of pages of r.Size needed to hold total rows.
func (r PageRequest) PageCount(total int64) int {
	if r.Size <= 0 || total <= 0 {
		return 0
	}
	size := int64(r.Size)
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return int(pages)
}

// PastEnd reports whether the window starts at or after the last of total rows.
// It compares page numbers, so huge page values never overflow.
func (r PageRequest) PastEnd(total int64) bool {
	return r.Page >= r.PageCount(total)
}

// Sort describes the ordering applied to a page.
type Sort struct {
	Empty    bool `json:"empty"`
	Sorted   bool `json:"sorted"`
	Unsorted bool `json:"unsorted"`
}

// Pageable echoes the window a page was produced from.
type Pageable struct {
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	Sort       Sort  `json:"sort"`
	Offset     int64 `json:"offset"`
	Paged      bool  `json:"paged"`
	Unpaged    bool  `json:"unpaged"`
}

// Page is one window of an ordered result set plus position metadata.
// Content is never nil so it always serializes as a JSON array.
type Page[T any] struct {
	Content          []T      `json:"content"`
	Pageable         Pageable `json:"pageable"`
	Last             bool     `json:"last"`
	TotalPages       int      `json:"totalPages"`
	TotalElements    int64    `json:"totalElements"`
	Size             int      `json:"size"`
	Number           int      `json:"number"`
	Sort             Sort     `json:"sort"`
	First            bool     `json:"first"`
	NumberOfElements int      `json:"numberOfElements"`
	Empty            bool     `json:"empty"`
}
