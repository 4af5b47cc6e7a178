package api

import "github.com/simonrowe/mealdex-server/internal/service"

// Services bundles the business services the handlers depend on.
type Services struct {
	Auth       *service.AuthService
	Session    *service.SessionService
	Recipe     *service.RecipeService
	Tag        *service.TagService
	Ingredient *service.IngredientService
}
