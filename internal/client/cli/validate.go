package cli

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/gesan-dev/backoffice-cli/internal/client/models"
)

// matchesDomain builds a rule checking that an email belongs to the
// organizational domain. Accounts outside it are a backend concern we never
// even submit.
func matchesDomain(domain string) validation.RuleFunc {
	suffix := "@" + strings.ToLower(domain)
	return func(value interface{}) error {
		s, _ := value.(string)
		if !strings.HasSuffix(strings.ToLower(s), suffix) {
			return fmt.Errorf("must be a %s address", domain)
		}
		return nil
	}
}

// loginPayload is the locally validated login form input.
type loginPayload struct {
	Email    string
	Password string

	domain string
}

func (p loginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(
			&p.Email,
			validation.Required,
			is.Email,
			validation.By(matchesDomain(p.domain)),
		),
		validation.Field(
			&p.Password,
			validation.Required,
		),
	)
}

// signupPayload is the locally validated signup form input. Text fields are
// expected to be trimmed before construction.
type signupPayload struct {
	GivenName  string
	FamilyName string
	Username   string
	Email      string
	Password   string
	Role       models.Role

	domain string
}

func (p signupPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.GivenName, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.FamilyName, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(
			&p.Email,
			validation.Required,
			is.Email,
			validation.By(matchesDomain(p.domain)),
		),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 0)),
		validation.Field(
			&p.Role,
			validation.Required,
			validation.In(models.RoleAnalyst, models.RoleManager, models.RoleAdmin),
		),
	)
}
