package pkg

import (
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/userpage/internal/domain"
)

// likeEscape is the escape character used in LIKE patterns. It is not a
// backslash so the same clause works on sqlite, postgres and mysql.
const likeEscape = "!"

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// Paginate returns a GORM scope that applies LIMIT and OFFSET for the window.
// Windows past the end should be skipped with PageRequest.PastEnd first.
func Paginate(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(int(req.Offset())).Limit(req.Size)
	}
}

// Contains returns a GORM scope filtering rows whose column contains value as
// a literal substring. Wildcards in value are escaped. An empty value applies
// no condition, so rows whose column is NULL are included; a LIKE '%%'
// predicate would drop them. An invalid column name turns the scope into a
// no-op. Case sensitivity follows the column collation of the store.
func Contains(column, value string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" || !validFieldName.MatchString(column) {
			return db
		}
		return db.Where(column+" LIKE ? ESCAPE '"+likeEscape+"'", LikePattern(value))
	}
}

// LikePattern wraps value in % wildcards after escaping LIKE metacharacters.
func LikePattern(value string) string {
	return "%" + likeReplacer.Replace(value) + "%"
}

// NewPage builds a Page with computed metadata for the given window.
// A window past the last page yields empty content with the totals intact.
func NewPage[T any](items []T, total int64, req domain.PageRequest) *domain.Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := req.PageCount(total)

	unsorted := domain.Sort{Empty: true, Sorted: false, Unsorted: true}

	return &domain.Page[T]{
		Content: items,
		Pageable: domain.Pageable{
			PageNumber: req.Page,
			PageSize:   req.Size,
			Sort:       unsorted,
			Offset:     req.Offset(),
			Paged:      true,
			Unpaged:    false,
		},
		Last:             req.Page >= totalPages-1,
		TotalPages:       totalPages,
		TotalElements:    total,
		Size:             req.Size,
		Number:           req.Page,
		Sort:             unsorted,
		First:            req.Page == 0,
		NumberOfElements: len(items),
		Empty:            len(items) == 0,
	}
}
