package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
	"github.com/polkiloo/pontobip/internal/server/http/dto"
	"github.com/polkiloo/pontobip/internal/server/http/middleware"
)

const (
	msgInternal       = "Erro interno do servidor."
	msgBadRequest     = "Requisição inválida."
	msgUserNotFound   = "Usuário não encontrado."
	msgIncompleteUser = "Dados incompletos: nome, matrícula ou email e senha são obrigatórios."
	msgUserExists     = "Este usuário já está cadastrado."
)

type errorRule struct {
	target  error
	status  int
	message string
}

var errorRules = []errorRule{
	{domainErrors.ErrInvalidInput, http.StatusBadRequest, "Dados inválidos."},
	{domainErrors.ErrUnsupportedImage, http.StatusBadRequest, "Formato de imagem não suportado. Use PNG, JPEG, GIF ou WEBP."},
	{domainErrors.ErrImageTooLarge, http.StatusBadRequest, "Imagem excede o tamanho máximo permitido."},
	{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized, "Credenciais inválidas."},
	{domainErrors.ErrUnauthorized, http.StatusUnauthorized, "Sessão inválida ou expirada."},
	{domainErrors.ErrForbidden, http.StatusForbidden, "Acesso restrito."},
	{domainErrors.ErrNotFound, http.StatusNotFound, "Registro não encontrado."},
	{domainErrors.ErrAlreadyExists, http.StatusConflict, "Registro já existe."},
}

// respondError maps domain errors to status codes. messages overrides the default text per sentinel.
// Unknown errors become 500 and are attached to the context for the request logger.
func respondError(c *gin.Context, err error, messages map[error]string) {
	for _, rule := range errorRules {
		if !errors.Is(err, rule.target) {
			continue
		}
		msg := rule.message
		if custom, ok := messages[rule.target]; ok {
			msg = custom
		}
		c.JSON(rule.status, dto.Failure(msg))
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, dto.Failure(msgInternal))
}

// respondBindError renders validation failures field by field.
func respondBindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		c.JSON(http.StatusBadRequest, dto.Failure(strings.Join(msgs, "; ")))
		return
	}
	c.JSON(http.StatusBadRequest, dto.Failure(msgBadRequest))
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("campo %s é obrigatório", field)
	case "min":
		return fmt.Sprintf("campo %s deve ter ao menos %s item(ns)", field, fe.Param())
	case "gte":
		return fmt.Sprintf("campo %s deve ser maior ou igual a %s", field, fe.Param())
	default:
		return fmt.Sprintf("campo %s inválido (%s)", field, fe.Tag())
	}
}

var tagNameOnce sync.Once

// UseJSONFieldNames makes binding errors report json field names.
func UseJSONFieldNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
}

// CurrentUserID returns the session user or an empty string.
func CurrentUserID(c *gin.Context) string {
	if sess := middleware.CurrentSession(c); sess != nil {
		return sess.UserID
	}
	return ""
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Login:  u.Login,
		Avatar: u.AvatarURL,
		Bip:    u.Balance,
		Coins:  u.Balance,
		Role:   string(u.Role),
	}
}
