package domain

// InputType determines which validation rule is synthesized for a field.
type InputType string

const (
	InputText     InputType = "text"
	InputEmail    InputType = "email"
	InputTel      InputType = "tel"
	InputNumber   InputType = "number"
	InputDate     InputType = "date"
	InputSelect   InputType = "select"
	InputTextarea InputType = "textarea"
	InputCheckbox InputType = "checkbox"
	InputRadio    InputType = "radio"
	InputFile     InputType = "file"
)

func (t InputType) String() string { return string(t) }

func (t InputType) IsValid() bool {
	switch t {
	case InputText, InputEmail, InputTel, InputNumber, InputDate,
		InputSelect, InputTextarea, InputCheckbox, InputRadio, InputFile:
		return true
	}
	return false
}

// HasOptions reports whether fields of this type carry an option list.
func (t InputType) HasOptions() bool {
	return t == InputSelect || t == InputRadio
}

// Category is an informational grouping tag for fields.
type Category string

const (
	CategoryBasic   Category = "basic"
	CategoryDetails Category = "details"
	CategoryStatus  Category = "status"
	CategoryContact Category = "contact"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryBasic, CategoryDetails, CategoryStatus, CategoryContact:
		return true
	}
	return false
}

// FormType identifies a form definition: a built-in entity or a custom form slug.
type FormType string

const (
	FormTypeStudent FormType = "student"
	FormTypeCourse  FormType = "course"
	FormTypeBranch  FormType = "branch"
)

func (f FormType) String() string { return string(f) }

func (f FormType) IsBuiltin() bool {
	switch f {
	case FormTypeStudent, FormTypeCourse, FormTypeBranch:
		return true
	}
	return false
}

// BuiltinFormTypes returns the built-in form types in display order.
func BuiltinFormTypes() []FormType {
	return []FormType{FormTypeStudent, FormTypeCourse, FormTypeBranch}
}

// LoadState tracks how a form definition reached memory.
type LoadState string

const (
	LoadStateUnloaded        LoadState = "UNLOADED"
	LoadStateLoading         LoadState = "LOADING"
	LoadStateReady           LoadState = "READY"
	LoadStateDefaultsApplied LoadState = "DEFAULTS_APPLIED"
)

func (s LoadState) String() string { return string(s) }

// Settled reports whether the definition is usable (Ready or DefaultsApplied).
func (s LoadState) Settled() bool {
	return s == LoadStateReady || s == LoadStateDefaultsApplied
}
