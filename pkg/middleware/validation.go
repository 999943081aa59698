package middleware

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/dallyp22/Scheduler-VS/pkg/errors"
)

var validatorOnce sync.Once

var (
	skuIDRegex            = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)
	productFamilyRegex    = regexp.MustCompile(`^[A-J]$`)
	cleaningCategoryRegex = regexp.MustCompile(`^[A-D]$`)
)

var customValidations = map[string]validator.Func{
	"sku_id":            validateSKUID,
	"product_family":    validateProductFamily,
	"cleaning_category": validateCleaningCategory,
	"order_sort":        validateOrderSort,
}

// InitValidator registers the scheduler validators on gin's validator engine
func InitValidator() {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		for tag, fn := range customValidations {
			_ = v.RegisterValidation(tag, fn)
		}
		v.RegisterTagNameFunc(jsonTagName)
	})
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

func validateSKUID(fl validator.FieldLevel) bool {
	return skuIDRegex.MatchString(fl.Field().String())
}

func validateProductFamily(fl validator.FieldLevel) bool {
	return productFamilyRegex.MatchString(fl.Field().String())
}

func validateCleaningCategory(fl validator.FieldLevel) bool {
	return cleaningCategoryRegex.MatchString(fl.Field().String())
}

func validateOrderSort(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "input", "due_date", "priority":
		return true
	}
	return false
}

// ValidationErrorFormatter formats validation errors into a field map
func ValidationErrorFormatter(err error) map[string]string {
	fields := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			fields[e.Field()] = formatValidationError(e)
		}
	}
	return fields
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gtfield":
		return "must be after " + e.Param()
	case "sku_id":
		return "must be a valid SKU id (alphanumeric, dashes and underscores)"
	case "product_family":
		return "must be a product family from A to J"
	case "cleaning_category":
		return "must be a cleaning category from A to D"
	case "order_sort":
		return "must be one of: input, due_date, priority"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// BindAndValidate binds the JSON body and validates it
func BindAndValidate(c *gin.Context, obj interface{}) *apperrors.AppError {
	if err := c.ShouldBindJSON(obj); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return apperrors.ErrValidationWithFields("validation failed", ValidationErrorFormatter(validationErrors))
		}
		return apperrors.ErrBadRequest("invalid request body: " + err.Error())
	}
	return nil
}

// ContentType rejects non-JSON bodies on POST, PUT and PATCH
func ContentType() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case "POST", "PUT", "PATCH":
			contentType := c.GetHeader("Content-Type")
			if c.Request.ContentLength > 0 && !strings.HasPrefix(contentType, "application/json") {
				AbortWithAppError(c, apperrors.New(apperrors.CodeUnsupportedMedia, "Content-Type must be application/json"))
				return
			}
		}
		c.Next()
	}
}
