package user

// ListUsersQuery is the query string of GET /api/v1/users.
// Missing parameters take the defaults below; page and size must be integers.
type ListUsersQuery struct {
	Name string `form:"name"`
	Page int    `form:"page,default=0" binding:"min=0"`
	Size int    `form:"size,default=10" binding:"min=1"`
}
