package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/vcmdu/Stock-master/internal/application/dto"
	"github.com/vcmdu/Stock-master/internal/domain"
)

var validate = validator.New()

// requestError entrada HTTP mal formada o que no pasa la validación del DTO.
type requestError struct {
	code    string
	message string
	details any
}

func (e *requestError) Error() string { return e.message }

// parseBody decodifica el JSON del cuerpo y aplica las reglas `validate` del DTO.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &requestError{code: "INVALID_BODY", message: "cuerpo inválido"}
	}
	return validateStruct(out)
}

// parseQuery igual que parseBody para los parámetros de la URL.
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return &requestError{code: "INVALID_QUERY", message: "parámetros inválidos"}
	}
	return validateStruct(out)
}

func validateStruct(out any) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return &requestError{code: "VALIDATION", message: "datos inválidos", details: fields}
	}
	return &requestError{code: "VALIDATION", message: err.Error()}
}

// respondError traduce un error del dominio a su código HTTP.
func respondError(c *fiber.Ctx, err error) error {
	var (
		insufficient *domain.InsufficientStockError
		ambiguous    *domain.AmbiguousMatchError
		unknown      *domain.UnknownProductError
	)
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: reqErr.code, Message: reqErr.message, Details: reqErr.details})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: err.Error(),
			Details: fiber.Map{"productId": insufficient.ProductID, "available": insufficient.Available, "requested": insufficient.Requested},
		})
	case errors.As(err, &ambiguous):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "AMBIGUOUS_PRODUCT", Message: err.Error(), Details: fiber.Map{"candidates": ambiguous.Candidates},
		})
	case errors.As(err, &unknown):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "UNKNOWN_PRODUCT", Message: err.Error(), Details: fiber.Map{"suggestions": unknown.Suggestions},
		})
	case errors.Is(err, domain.ErrOrphanedTransaction):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "ORPHANED_TRANSACTION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case domain.IsValidationError(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrPersistenceWrite):
		return c.Status(fiber.StatusInsufficientStorage).JSON(dto.NotDurableResponse{Code: "NOT_DURABLE", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// respondMutation responde el resultado de una mutación. Si solo falló la persistencia el cambio
// ya está aplicado: 507 con el resultado y durable=false.
func respondMutation(c *fiber.Ctx, status int, result any, err error) error {
	if err == nil {
		return c.Status(status).JSON(result)
	}
	if errors.Is(err, domain.ErrPersistenceWrite) {
		return c.Status(fiber.StatusInsufficientStorage).JSON(dto.NotDurableResponse{
			Code: "NOT_DURABLE", Message: err.Error(), Durable: false, Result: result,
		})
	}
	return respondError(c, err)
}
