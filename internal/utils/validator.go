package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"cna-archives/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	usernameRe   = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// InitValidator 初始化验证器，并把自定义规则注册到gin的绑定引擎
func InitValidator() {
	validateOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validate = v
		} else {
			validate = validator.New()
		}

		validate.RegisterTagNameFunc(jsonFieldName)

		// 注册自定义验证函数
		_ = validate.RegisterValidation("username", validateUsername)
		_ = validate.RegisterValidation("role", validateRole)
		_ = validate.RegisterValidation("isodate", validateISODate)
	})
}

// GetValidator 获取验证器实例
func GetValidator() *validator.Validate {
	InitValidator()
	return validate
}

// validateUsername 验证用户名
func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	if len(username) < 3 || len(username) > 50 {
		return false
	}
	return usernameRe.MatchString(username)
}

func validateRole(fl validator.FieldLevel) bool {
	return models.ValidRole(fl.Field().String())
}

// validateISODate 空字符串交给 required 处理
func validateISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}

// ValidateStruct 验证结构体
func ValidateStruct(s interface{}) error {
	if err := GetValidator().Struct(s); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// FormatValidationError 格式化验证错误
func FormatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		param := e.Param()

		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("le champ %s est obligatoire", field)
		case "min":
			message = fmt.Sprintf("le champ %s doit contenir au moins %s caractères", field, param)
		case "max":
			message = fmt.Sprintf("le champ %s ne peut pas dépasser %s caractères", field, param)
		case "gte":
			message = fmt.Sprintf("le champ %s doit être supérieur ou égal à %s", field, param)
		case "lte":
			message = fmt.Sprintf("le champ %s doit être inférieur ou égal à %s", field, param)
		case "oneof":
			message = fmt.Sprintf("le champ %s doit valoir l'une des valeurs: %s", field, param)
		case "username":
			message = fmt.Sprintf("le champ %s ne peut contenir que lettres, chiffres, '_', '.', '-' (3 à 50 caractères)", field)
		case "role":
			message = fmt.Sprintf("le champ %s doit valoir %s ou %s", field, models.RoleArchiviste, models.RoleAdministrateur)
		case "isodate":
			message = fmt.Sprintf("le champ %s doit être une date au format AAAA-MM-JJ", field)
		default:
			message = fmt.Sprintf("le champ %s est invalide (%s)", field, e.Tag())
		}

		messages = append(messages, message)
	}

	return errors.New(strings.Join(messages, "; "))
}

// jsonFieldName 校验错误中使用JSON字段名
func jsonFieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		tag := f.Tag.Get(key)
		if tag == "" || tag == "-" {
			continue
		}
		return strings.Split(tag, ",")[0]
	}
	return f.Name
}
