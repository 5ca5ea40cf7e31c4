package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
)

// AnalyzeRequest is the body of POST /api/v1/analyze and /api/v1/tokenize
type AnalyzeRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// BatchRequest is the body of POST /api/v1/analyze/batch
type BatchRequest struct {
	Texts []string `json:"texts" validate:"required,min=1,dive,required"`
}

// HistoryQuery holds the query parameters of GET /api/v1/history
type HistoryQuery struct {
	Valid  string `json:"valid" validate:"omitempty,oneof=true false"`
	Errors string `json:"errors" validate:"omitempty,oneof=true false"`
	Since  string `json:"since" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Limit  int    `json:"limit" validate:"gte=0,lte=500"`
	Offset int    `json:"offset" validate:"gte=0"`
}

// SearchQuery holds the query parameters of GET /api/v1/lexicon/search
type SearchQuery struct {
	Query string `json:"q" validate:"required,max=64"`
	Limit int    `json:"limit" validate:"gte=0,lte=100"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Use JSON tag names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// validateRequest checks v against its struct tags
func validateRequest(v interface{}) error {
	err := requestValidator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Wrap(err, "invalid request").WithCode(apperror.CodeInvalidInput)
	}

	problems := make([]string, 0, len(verrs))
	fields := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
		fields[fe.Field()] = fe.Tag()
	}
	return apperror.New("invalid request: "+strings.Join(problems, ", ")).
		WithCode(apperror.CodeInvalidInput).
		WithDetails(fields)
}

// decodeJSON reads a JSON body into v and validates it
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperror.Wrap(err, "invalid JSON body").WithCode(apperror.CodeInvalidInput)
	}
	return validateRequest(v)
}
