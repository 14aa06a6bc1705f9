package pkg

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/simp-lee/userpage/internal/domain"
)

// TimestampLayout is the zone-less ISO-8601 layout of HTTPResponse.TimeStamp.
const TimestampLayout = "2006-01-02T15:04:05.999999999"

// now is replaced in tests.
var now = time.Now

// HTTPResponse is the standard JSON envelope for API responses.
// Data is omitted from the output when nil.
type HTTPResponse[T any] struct {
	TimeStamp  string `json:"timeStamp"`
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Data       *T     `json:"data,omitempty"`
}

// Wrap builds an envelope around payload stamped with the current time.
// The status label is derived from statusCode (200 -> "OK", 400 -> "BAD_REQUEST").
func Wrap[T any](payload *T, message string, statusCode int) HTTPResponse[T] {
	return HTTPResponse[T]{
		TimeStamp:  now().Format(TimestampLayout),
		StatusCode: statusCode,
		Status:     StatusLabel(statusCode),
		Message:    message,
		Data:       payload,
	}
}

// StatusLabel returns the upper snake case reason phrase for an HTTP status code.
// Unknown codes yield "UNKNOWN".
func StatusLabel(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return "UNKNOWN"
	}
	text = strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text)
	return strings.ToUpper(text)
}

// Success sends a 200 envelope carrying data.
func Success[T any](c *gin.Context, message string, data *T) {
	c.JSON(http.StatusOK, Wrap(data, message, http.StatusOK))
}

// Error sends an error envelope without data. If err is a *domain.AppError its
// code selects the HTTP status and its message is exposed; otherwise a generic
// 500 is returned.
func Error(c *gin.Context, err error) {
	status := domain.HTTPStatusCode(err)

	var appErr *domain.AppError
	msg := "internal error"
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	c.JSON(status, Wrap[any](nil, msg, status))
}

// ValidationError sends a 400 envelope. For validator.ValidationErrors the data
// holds a field -> rule map; other binding errors (e.g. a non-numeric integer)
// only carry the error text as message.
func ValidationError(c *gin.Context, err error) {
	validationErrorWithType(c, err, nil)
}

// BindQuery binds the query string to obj and validates it. On failure it
// sends a ValidationError response and returns false.
//
//	if !pkg.BindQuery(c, &q) { return }
func BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		validationErrorWithType(c, err, obj)
		return false
	}
	return true
}

func validationErrorWithType(c *gin.Context, err error, obj any) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, Wrap[any](nil, err.Error(), http.StatusBadRequest))
		return
	}

	formTags := buildTagMap(obj, "form")

	fieldErrors := make(map[string]string, len(ve))
	for _, fe := range ve {
		name := fe.Field()
		if tag, ok := formTags[fe.StructField()]; ok {
			name = tag
		} else {
			name = strings.ToLower(name)
		}
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		fieldErrors[name] = msg
	}

	c.JSON(http.StatusBadRequest, Wrap(&fieldErrors, "validation error", http.StatusBadRequest))
}

// buildTagMap returns a map from struct field name to the name in the given tag.
// If obj is nil or not a struct (pointer), it returns nil.
func buildTagMap(obj any, key string) map[string]string {
	if obj == nil {
		return nil
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	m := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if name := parseTagName(f.Tag.Get(key)); name != "" {
			m[f.Name] = name
		}
	}
	return m
}

// parseTagName extracts the field name from a struct tag value.
func parseTagName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return ""
	}
	return name
}
