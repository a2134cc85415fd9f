package service

import (
	"aulaquiz/internal/model"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks payloads against their struct tags and the quiz rules
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s and returns a *model.ValidationError on failure
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, describe(fe))
	}
	return &model.ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", field)
	case "email":
		return fmt.Sprintf("%s no es un email válido", field)
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de [%s]", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s debe ser al menos %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s debe ser como máximo %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido (%s)", field, fe.Tag())
	}
}

// Cuestionario applies tag validation plus the per-question rules
func (v *Validator) Cuestionario(c *model.Cuestionario) error {
	if err := v.Struct(c); err != nil {
		return err
	}

	var fields []string
	if c.Centro != "" && !model.IsCenter(c.Centro) {
		fields = append(fields, "centro desconocido")
	}
	if c.CodigoAsignatura != "" && !model.IsCourseCode(c.CodigoAsignatura) {
		fields = append(fields, "codigoAsignatura desconocido")
	}
	for i, p := range c.Preguntas {
		if !p.Tipo.Valid() {
			fields = append(fields, fmt.Sprintf("preguntas[%d].tipo no es válido", i))
			continue
		}
		if !p.Tipo.HasOptions() {
			continue
		}
		if len(p.Opciones) < 2 {
			fields = append(fields, fmt.Sprintf("preguntas[%d] necesita al menos 2 opciones", i))
			continue
		}
		correctas := 0
		for _, o := range p.Opciones {
			if o.Correcta {
				correctas++
			}
		}
		switch {
		case correctas == 0:
			fields = append(fields, fmt.Sprintf("preguntas[%d] no tiene opción correcta", i))
		case correctas > 1 && p.Tipo != model.QuestionMultipleChoice:
			fields = append(fields, fmt.Sprintf("preguntas[%d] solo admite una opción correcta", i))
		}
	}
	if len(fields) > 0 {
		return &model.ValidationError{Fields: fields}
	}
	return nil
}
