package domain

import (
	"autolink/internal/core/category"
	"autolink/internal/platform/net/http/bind"
)

// link_category accepts the builtin names category.Parse knows, aliases included
func init() {
	err := bind.RegisterTag("link_category", func(fl bind.FieldLevel) bool {
		_, ok := category.Parse(fl.Field().String())
		return ok
	}, "{0} must be url, phone, email, mention or hashtag")
	if err != nil {
		panic(err)
	}
}
