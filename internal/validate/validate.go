// Package validate wraps a shared go-playground validator instance for
// request body validation via struct tags.
package validate

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	v    *validator.Validate
	once sync.Once
)

// Struct validates s using its `validate` tags.
func Struct(s any) error {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
	})
	return v.Struct(s)
}
