package service

import (
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for i, char := range value {
				// Cannot be started with a digit or underscore
				if i == 0 && (unicode.IsDigit(char) || char == '_') {
					return false
				}
				// Digits, letters or underscore
				if !unicode.IsLetter(char) && !unicode.IsDigit(char) && char != '_' {
					return false
				}
			}
			return true
		})
		// Zero-padded 24-hour time of day, e.g. "09:00" or "21:30"
		validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if len(value) != 5 || value[2] != ':' {
				return false
			}
			for _, i := range []int{0, 1, 3, 4} {
				if value[i] < '0' || value[i] > '9' {
					return false
				}
			}
			hours := int(value[0]-'0')*10 + int(value[1]-'0')
			minutes := int(value[3]-'0')*10 + int(value[4]-'0')
			return hours < 24 && minutes < 60
		})
	})
}
