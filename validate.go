package openapix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// statusCodeRules bounds response codes to the range OpenAPI can key.
var statusCodeRules = []validation.Rule{
	validation.Required,
	validation.Min(100),
	validation.Max(599),
}

var schemeNameRules = []validation.Rule{
	validation.Required,
	validation.Length(1, 128),
}

// serverURLRules accept absolute URLs and server-relative paths.
var serverURLRules = []validation.Rule{
	validation.Required,
	validation.By(func(value any) error {
		s, _ := value.(string)
		if strings.HasPrefix(s, "/") || govalidator.IsURL(s) {
			return nil
		}
		return errors.New("must be an absolute URL or start with /")
	}),
}

func validateArg(name string, value any, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
