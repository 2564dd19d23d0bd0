package schema

import (
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

// formats runs the string format rules. A Validate instance caches parsed
// tags and is safe for concurrent use, so every validator shares this one.
var formats = validator.New()

const (
	emailTag  = "email"
	phoneTag  = "len=10,number"
	numberTag = "numeric"
)

// DateLayouts lists the formats accepted by date fields.
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	"02/01/2006",
	"01/02/2006",
}

// check validates a present, non-blank value against the field's input type.
// It returns the error code and message, or "" when the value is acceptable.
type check func(f domain.FieldConfig, v domain.Value) (code, msg string)

var checks = map[domain.InputType]check{
	domain.InputText:     checkText,
	domain.InputTextarea: checkText,
	domain.InputEmail:    checkEmail,
	domain.InputNumber:   checkNumber,
	domain.InputTel:      checkTel,
	domain.InputCheckbox: checkCheckbox,
	domain.InputSelect:   checkOption,
	domain.InputRadio:    checkOption,
	domain.InputDate:     checkDate,
	domain.InputFile:     checkFile,
}

func checkText(_ domain.FieldConfig, v domain.Value) (string, string) {
	if _, ok := v.AsString(); !ok {
		return domain.CodeInvalidType, "must be text"
	}
	return "", ""
}

func checkEmail(_ domain.FieldConfig, v domain.Value) (string, string) {
	s, ok := v.AsString()
	if !ok {
		return domain.CodeInvalidType, "must be text"
	}
	if !IsEmail(s) {
		return domain.CodeInvalidEmail, "must be a valid email address"
	}
	return "", ""
}

func checkNumber(_ domain.FieldConfig, v domain.Value) (string, string) {
	switch v.Kind() {
	case domain.KindNumber, domain.KindString:
	default:
		return domain.CodeInvalidType, "must be a number"
	}
	if !IsNumber(v.Canonical()) {
		return domain.CodeInvalidNumber, "must be a finite number"
	}
	return "", ""
}

func checkTel(_ domain.FieldConfig, v domain.Value) (string, string) {
	switch v.Kind() {
	case domain.KindString, domain.KindNumber:
	default:
		return domain.CodeInvalidType, "must be a phone number"
	}
	if !IsPhone(v.Canonical()) {
		return domain.CodeInvalidPhone, "must be exactly 10 digits"
	}
	return "", ""
}

func checkCheckbox(_ domain.FieldConfig, v domain.Value) (string, string) {
	if _, ok := v.AsBool(); ok {
		return "", ""
	}
	if s, ok := v.AsString(); ok {
		if _, ok := ParseBool(s); ok {
			return "", ""
		}
	}
	return domain.CodeInvalidType, "must be true or false"
}

func checkOption(f domain.FieldConfig, v domain.Value) (string, string) {
	s, ok := v.AsString()
	if !ok {
		return domain.CodeInvalidType, "must be one of the listed options"
	}
	// Radio fields without options accept any choice.
	if f.InputType == domain.InputRadio && len(f.Options) == 0 {
		return "", ""
	}
	if !slices.Contains(f.Options, s) {
		return domain.CodeInvalidOption, "must be one of: " + strings.Join(f.Options, ", ")
	}
	return "", ""
}

func checkDate(_ domain.FieldConfig, v domain.Value) (string, string) {
	s, ok := v.AsString()
	if !ok {
		return domain.CodeInvalidType, "must be a date"
	}
	if _, ok := ParseDate(s); !ok {
		return domain.CodeInvalidDate, "must be a valid date"
	}
	return "", ""
}

func checkFile(_ domain.FieldConfig, v domain.Value) (string, string) {
	switch v.Kind() {
	case domain.KindFileRef, domain.KindUpload, domain.KindString:
		return "", ""
	}
	return domain.CodeInvalidType, "must be a file"
}

// IsEmail reports whether s is a bare address (no display name) whose domain
// contains a dot.
func IsEmail(s string) bool {
	if formats.Var(s, emailTag) != nil {
		return false
	}
	host := s[strings.LastIndexByte(s, '@')+1:]
	dot := strings.IndexByte(host, '.')
	return dot > 0 && dot < len(host)-1
}

// IsPhone reports whether s is exactly 10 ASCII digits.
func IsPhone(s string) bool {
	return formats.Var(s, phoneTag) == nil
}

// IsNumber reports whether s is a plain decimal number, optionally signed.
// Surrounding spaces are ignored.
func IsNumber(s string) bool {
	return formats.Var(strings.TrimSpace(s), numberTag) == nil
}

// ParseDate tries each of DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseBool accepts the boolean spellings HTML forms and stored records use.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1", "yes":
		return true, true
	case "false", "off", "0", "no":
		return false, true
	}
	return false, false
}
