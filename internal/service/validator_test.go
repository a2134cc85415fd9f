package service

import (
	"aulaquiz/internal/model"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorUsesJSONFieldNames(t *testing.T) {
	err := NewValidator().Struct(&model.User{Nombre: "A", Email: "a@aula.es"})
	require.Error(t, err)

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"idPortal es obligatorio"}, verr.Fields)
}

func TestCuestionarioRules(t *testing.T) {
	v := NewValidator()
	opts := func(correct ...bool) []model.Opcion {
		out := make([]model.Opcion, len(correct))
		for i, c := range correct {
			out[i] = model.Opcion{Texto: "op", Correcta: c}
		}
		return out
	}

	cases := []struct {
		name    string
		quiz    model.Cuestionario
		wantErr bool
	}{
		{"valid single choice", model.Cuestionario{Titulo: "T", Preguntas: []model.Pregunta{{Texto: "?", Tipo: model.QuestionSingleChoice, Opciones: opts(true, false)}}}, false},
		{"valid multiple choice", model.Cuestionario{Titulo: "T", Preguntas: []model.Pregunta{{Texto: "?", Tipo: model.QuestionMultipleChoice, Opciones: opts(true, true, false)}}}, false},
		{"short answer without options", model.Cuestionario{Titulo: "T", Preguntas: []model.Pregunta{{Texto: "?", Tipo: model.QuestionShortAnswer}}}, false},
		{"no questions", model.Cuestionario{Titulo: "T"}, true},
		{"unknown type", model.Cuestionario{Titulo: "T", Preguntas: []model.Pregunta{{Texto: "?", Tipo: "essay"}}}, true},
		{"one option", model.Cuestionario{Titulo: "T", Preguntas: []model.Pregunta{{Texto: "?", Tipo: model.QuestionTrueFalse, Opciones: opts(true)}}}, true},
		{"no correct option", model.Cuestionario{Titulo: "T", Preguntas: []model.Pregunta{{Texto: "?", Tipo: model.QuestionSingleChoice, Opciones: opts(false, false)}}}, true},
		{"two correct in single", model.Cuestionario{Titulo: "T", Preguntas: []model.Pregunta{{Texto: "?", Tipo: model.QuestionSingleChoice, Opciones: opts(true, true)}}}, true},
		{"unknown center", model.Cuestionario{Titulo: "T", Centro: "X", Preguntas: []model.Pregunta{{Texto: "?", Tipo: model.QuestionShortAnswer}}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quiz := tc.quiz
			err := v.Cuestionario(&quiz)
			if tc.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
