package schema

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"WeatherWise-App/internal/domain/model"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator はカスタムルール登録済みのvalidatorを返す
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// エラーのフィールド名はJSONタグ名を使う
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		mustRegister(v, "finite", validateFinite)
		mustRegister(v, "maxwords", validateMaxWords)
		mustRegister(v, "condition", validateCondition)
		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("カスタムルール %s の登録に失敗: %v", tag, err))
	}
}

// validateFinite はNaN/Infを拒否する
func validateFinite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

// validateMaxWords は空白区切りの単語数が上限以下かを判定する
func validateMaxWords(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(strings.Fields(fl.Field().String())) <= limit
}

func validateCondition(fl validator.FieldLevel) bool {
	return model.ConditionCode(fl.Field().String()).IsValid()
}

// Validate は構造体を検証し、失敗時は*model.ValidationErrorを返す
func Validate(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError（nilや非構造体）もフィールドエラーとして扱う
		return &model.ValidationError{Fields: []model.FieldError{{
			Field:   "",
			Rule:    "struct",
			Message: err.Error(),
		}}}
	}

	fields := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, model.FieldError{
			Field:   fieldPath(fe),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return &model.ValidationError{Fields: fields}
}

// fieldPath はトップレベルの型名を除いたパスを返す（例: suggestedRoute.waypoints[0].instruction）
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", capitalize(field))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", capitalize(field), fe.Param())
		}
		return fmt.Sprintf("%s must contain at least %s item(s).", capitalize(field), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL.", capitalize(field))
	case "maxwords":
		return fmt.Sprintf("%s must be at most %s words.", capitalize(field), fe.Param())
	case "finite":
		return fmt.Sprintf("%s must be a finite number.", capitalize(field))
	case "condition":
		return fmt.Sprintf("%s is not a known weather condition.", capitalize(field))
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format.", capitalize(field), fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s rule.", capitalize(field), fe.Tag())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ValidateWeatherSearch は天気検索フォームの入力を正規化して検証する
func ValidateWeatherSearch(req *model.WeatherSearchRequest) error {
	req.Normalize()
	return Validate(req)
}

// ValidateTripPlanRequest は旅行プランナーの入力を正規化して検証する
func ValidateTripPlanRequest(req *model.TripPlanRequest) error {
	req.Normalize()
	return Validate(req)
}

// ValidateWeatherTipsRequest はアドバイス生成の入力を正規化して検証する
func ValidateWeatherTipsRequest(req *model.WeatherTipsRequest) error {
	req.Normalize()
	return Validate(req)
}

// ValidateTripPlan はモデル出力の旅行プランを検証する
func ValidateTripPlan(plan *model.TripPlan) error {
	return Validate(plan)
}

// ValidateWeatherTipsResult はモデル出力のアドバイスを検証する
func ValidateWeatherTipsResult(result *model.WeatherTipsResult) error {
	return Validate(result)
}

// ValidateWeatherReport はプロバイダーの出力を検証する
func ValidateWeatherReport(report *model.WeatherReport) error {
	if err := Validate(&report.Current); err != nil {
		return err
	}
	for i := range report.Forecast {
		if err := Validate(&report.Forecast[i]); err != nil {
			return err
		}
	}
	return nil
}
