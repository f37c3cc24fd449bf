// Package parsley derives Parsley.js validation attributes from form field
// descriptors and writes them into each field's widget attribute bag.
//
// Derive handles a single field: required-ness, regex patterns, length and
// value bounds, and a type marker picked from a fixed ordered table (url,
// email, digits, number). Bind runs Derive over every field of a form with the
// form's namespace and then applies the extras block from the form metadata,
// resolving `equalto` targets to the id of the referenced input. Parsleyfy
// wraps a form constructor so forms come back already bound.
//
//	form, err := parsley.Build(func() (*model.Form, error) {
//		return model.NewForm("signup",
//			fields.Email("email", fields.Required()),
//			fields.Char("password", fields.Required(), fields.MinLength(8)),
//			fields.Char("confirm", fields.Required()),
//		)
//	}, parsley.WithExtras(map[string]map[string]any{
//		"confirm": {"equalto": "password"},
//	}))
package parsley
