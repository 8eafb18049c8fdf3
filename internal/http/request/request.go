package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode parses the JSON body into dst and runs its validation tags. The
// returned error names the first offending field so clients get something
// actionable instead of a bare 400.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]

			return fmt.Errorf("field %s failed validation (%s)", fieldName(f), f.Tag())
		}

		return err
	}

	return nil
}

func fieldName(f validator.FieldError) string {
	// StructNamespace looks like "createSaleRequest.Amount"; keep the leaf.
	parts := strings.Split(f.StructNamespace(), ".")

	return parts[len(parts)-1]
}
