package validators

import (
	"reflect"
	"regexp"
	"time"

	"hotelrp/cmd/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

var cnaeRegex = regexp.MustCompile(`^\d{2}\.?\d{2}-\d/\d{2}$`)

// Register installs every custom rule on validate.
func Register(validate *validator.Validate) {
	_ = validate.RegisterValidation("cnpj", CNPJ)
	_ = validate.RegisterValidation("cnae", CNAE)
	_ = validate.RegisterValidation("isodate", ISODate)
	_ = validate.RegisterValidation("nodupes", NoDupes)
}

// CNPJ accepts formatted or digits-only CNPJs with valid check digits.
func CNPJ(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return utils.IsCNPJValid(utils.OnlyDigits(val))
}

func CNAE(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return cnaeRegex.MatchString(val)
}

func ISODate(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse("2006-01-02", val)
	return err == nil
}

func NoDupes(fl validator.FieldLevel) bool {
	slice := fl.Field()
	if slice.Kind() != reflect.Slice {
		log.Warnf("validator 'nodupes' applied to non-slice type: %s\n", slice.Kind().String())
		return false
	}

	length := slice.Len()
	seen := make(map[any]bool, length)
	for i := 0; i < length; i++ {
		val := slice.Index(i).Interface()
		if _, exists := seen[val]; exists {
			return false
		}
		seen[val] = true
	}
	return true
}
