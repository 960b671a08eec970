package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// requestError entrada HTTP mal formada o que no pasa la validación.
type requestError struct {
	code    string
	message string
	details map[string]string
}

func (e *requestError) Error() string { return e.message }

// validationDetails mapea cada campo inválido a la regla que incumple.
func validationDetails(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

func validateStruct(out any) error {
	if err := validate.Struct(out); err != nil {
		return &requestError{code: "VALIDATION", message: "parámetros inválidos", details: validationDetails(err)}
	}
	return nil
}

// parseBody decodifica el JSON del cuerpo y lo valida.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &requestError{code: "INVALID_BODY", message: "cuerpo inválido"}
	}
	return validateStruct(out)
}

// parseQuery decodifica la query string y la valida. prepare se aplica antes de validar (defaults).
func parseQuery(c *fiber.Ctx, out any, prepare func()) error {
	if err := c.QueryParser(out); err != nil {
		return &requestError{code: "INVALID_QUERY", message: err.Error()}
	}
	if prepare != nil {
		prepare()
	}
	return validateStruct(out)
}
