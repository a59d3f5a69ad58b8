package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the struct-level rules gin's binding layer
// cannot express with field tags. Called once from main.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterStructValidation(createPostFormValidation, createPostForm{})
}

// A post must carry a link, a text body, or both.
func createPostFormValidation(sl validator.StructLevel) {
	form := sl.Current().Interface().(createPostForm)
	if form.URL == "" && form.Content == "" {
		sl.ReportError(form.URL, "URL", "url", "url_or_content", "")
		sl.ReportError(form.Content, "Content", "content", "url_or_content", "")
	}
}
