package chat

import (
	goerrors "errors"
	"fmt"
	"messenger/errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// fieldErrors maps the first failing field of a command to the client error
// shown to the user.
var fieldErrors = map[string]error{
	"Text":      errors.ErrEmptyText,
	"Name":      errors.ErrEmptyGroupName,
	"MemberIDs": errors.ErrNoMembers,
	"Emoji":     errors.ErrEmptyEmoji,
}

// Validate checks a command before it is sent.
func Validate(cmd Command) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !goerrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	first := fieldErrs[0]
	if mapped, ok := fieldErrors[first.StructField()]; ok {
		return mapped
	}
	return fmt.Errorf("%w: %s %s failed on %q", errors.ErrInvalidCommand, cmd.Action(), first.StructField(), first.Tag())
}
