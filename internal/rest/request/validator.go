package request

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tag names are lowercase slugs like "go" or "clean-arch"
var tagNameRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func validTagName(fl validator.FieldLevel) bool {
	return tagNameRe.MatchString(fl.Field().String())
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// ignore the error, the name is a constant and cannot collide
		_ = v.RegisterValidation("tagname", validTagName)
	}
}
