package workflow

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldRule binds one form field to a validator tag and the message shown
// when the value does not satisfy it.
type FieldRule struct {
	Field   string
	Rule    string
	Message string
}

// Schema is the static validation table of one form. Rules are checked in
// order and only the first failure per field is reported.
type Schema []FieldRule

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Check validates values against the schema. A nil result means the form
// may be submitted.
func (s Schema) Check(values map[string]string) FieldErrors {
	v := validatorInstance()
	var errs FieldErrors
	for _, rule := range s {
		if _, failed := errs[rule.Field]; failed {
			continue
		}
		if err := v.Var(values[rule.Field], rule.Rule); err != nil {
			if errs == nil {
				errs = FieldErrors{}
			}
			errs[rule.Field] = rule.Message
		}
	}
	return errs
}

const (
	msgRequired      = "This field is required"
	msgInvalidEmail  = "Please enter a valid email"
	msgDigits        = "Please enter a number"
	msgImageRequired = "Please upload an image"
	msgFileRequired  = "Please upload a file"
	msgUsername      = "Please enter your ID"
	msgPassword      = "Please enter your password"
)

var authorSchema = Schema{
	{Field: "thumbnail", Rule: "required", Message: msgImageRequired},
	{Field: "name", Rule: "required", Message: msgRequired},
	{Field: "email", Rule: "required", Message: msgRequired},
	{Field: "email", Rule: "email", Message: msgInvalidEmail},
	{Field: "bio", Rule: "required", Message: msgRequired},
}

var ebookMetadataSchema = Schema{
	{Field: "title", Rule: "required", Message: msgRequired},
	{Field: "intro", Rule: "required", Message: msgRequired},
	{Field: "price", Rule: "required", Message: msgRequired},
	{Field: "price", Rule: "number", Message: msgDigits},
	{Field: "authorId", Rule: "required", Message: msgRequired},
	{Field: "authorId", Rule: "number", Message: msgDigits},
}

var ebookAssetsSchema = Schema{
	{Field: "thumbnail", Rule: "required", Message: msgImageRequired},
	{Field: "description", Rule: "required", Message: msgImageRequired},
	{Field: "preview", Rule: "required", Message: msgFileRequired},
	{Field: "pdf", Rule: "required", Message: msgFileRequired},
}

var ebookUpdateSchema = append(append(Schema{}, ebookMetadataSchema...), ebookAssetsSchema...)

var loginSchema = Schema{
	{Field: "username", Rule: "required", Message: msgUsername},
	{Field: "password", Rule: "required", Message: msgPassword},
}
