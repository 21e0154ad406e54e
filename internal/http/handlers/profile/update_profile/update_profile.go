package updateprofile

import (
	"errors"
	"net/http"
	c "ums/internal/core/domain/common"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
	service "ums/internal/core/services/update_profile"
	"ums/internal/http/handlers/form"
	"ums/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mno"`
}

type Result struct {
	User response.User `json:"user"`
}

func (i *Input) FromForm(r *http.Request) {
	i.Name = r.FormValue("name")
	i.Email = r.FormValue("email")
	i.Mobile = r.FormValue("mno")
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Mobile, validation.Length(0, 32)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if err := form.Parse(rw, r); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	input := Input{}
	input.FromForm(r)
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}
	image, closeImage, err := form.Image(r, "image")
	if err != nil {
		response.RenderError(rw, "invalid image", http.StatusBadRequest)
		return
	}
	defer closeImage()

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Name:   input.Name,
			Email:  c.NewEmail(input.Email),
			Mobile: input.Mobile,
			Image:  image,
		},
	)
	if err != nil {
		if response.RenderValidationError(rw, err) {
			return
		}
		switch {
		case errors.Is(err, user.ErrSessionDoesNotExist), errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.RenderError(rw, "email already exists", http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u}, http.StatusOK)
}
