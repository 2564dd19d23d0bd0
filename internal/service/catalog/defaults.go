package catalog

import (
	"fmt"
	"strings"

	"github.com/sujay090/Dynamic-form-sub001/internal/config"
	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/fieldconfig"
)

// Defaults holds the field sets used for built-in form types that have no
// saved definition or whose definition could not be fetched.
type Defaults map[domain.FormType]domain.FormDefinition

// Get returns a copy of the default definition for formType.
func (d Defaults) Get(formType domain.FormType) (domain.FormDefinition, bool) {
	def, ok := d[formType]
	if !ok {
		return domain.FormDefinition{}, false
	}
	return def.Clone(), true
}

type fieldSpec struct {
	name       string
	label      string
	typ        domain.InputType
	category   domain.Category
	required   bool
	options    []string
	searchable bool
}

func build(formType domain.FormType, name string, specs []fieldSpec) domain.FormDefinition {
	fields := make([]domain.FieldConfig, len(specs))
	for i, s := range specs {
		fields[i] = domain.FieldConfig{
			ID:         fmt.Sprintf("%s-%s", formType, s.name),
			Name:       s.name,
			Label:      s.label,
			Enabled:    true,
			Required:   s.required,
			Position:   i + 1,
			Category:   s.category,
			InputType:  s.typ,
			Options:    s.options,
			Searchable: s.searchable,
		}
	}
	return domain.FormDefinition{FormType: formType, Name: name, Fields: fields}
}

// BuiltinDefaults returns the stock student, course and branch forms.
func BuiltinDefaults() Defaults {
	return Defaults{
		domain.FormTypeStudent: build(domain.FormTypeStudent, "Student", []fieldSpec{
			{name: "studentName", label: "Student Name", typ: domain.InputText, category: domain.CategoryBasic, required: true},
			{name: "fatherName", label: "Father's Name", typ: domain.InputText, category: domain.CategoryBasic},
			{name: "studentEmail", label: "Email", typ: domain.InputEmail, category: domain.CategoryContact, required: true},
			{name: "phoneNumber", label: "Phone Number", typ: domain.InputTel, category: domain.CategoryContact, required: true},
			{name: "dateOfBirth", label: "Date of Birth", typ: domain.InputDate, category: domain.CategoryDetails},
			{name: "gender", label: "Gender", typ: domain.InputRadio, category: domain.CategoryDetails, options: []string{"Male", "Female", "Other"}},
			{name: "address", label: "Address", typ: domain.InputTextarea, category: domain.CategoryContact},
			{name: "course", label: "Course", typ: domain.InputText, category: domain.CategoryDetails},
			{name: "branch", label: "Branch", typ: domain.InputText, category: domain.CategoryDetails},
			{name: "admissionDate", label: "Admission Date", typ: domain.InputDate, category: domain.CategoryDetails},
			{name: "photo", label: "Photo", typ: domain.InputFile, category: domain.CategoryDetails},
			{name: "isRegistered", label: "Registered", typ: domain.InputCheckbox, category: domain.CategoryStatus},
			{name: "completedCourse", label: "Completed Course", typ: domain.InputCheckbox, category: domain.CategoryStatus},
			{name: "isActive", label: "Active", typ: domain.InputCheckbox, category: domain.CategoryStatus},
		}),
		domain.FormTypeCourse: build(domain.FormTypeCourse, "Course", []fieldSpec{
			{name: "courseName", label: "Course Name", typ: domain.InputText, category: domain.CategoryBasic, required: true},
			{name: "courseCode", label: "Course Code", typ: domain.InputText, category: domain.CategoryBasic, required: true},
			{name: "duration", label: "Duration", typ: domain.InputText, category: domain.CategoryDetails},
			{name: "courseFees", label: "Fees", typ: domain.InputNumber, category: domain.CategoryDetails, required: true},
			{name: "courseType", label: "Course Type", typ: domain.InputSelect, category: domain.CategoryDetails, options: []string{"Certificate", "Diploma", "Short Term"}, searchable: true},
			{name: "description", label: "Description", typ: domain.InputTextarea, category: domain.CategoryDetails},
			{name: "isActive", label: "Active", typ: domain.InputCheckbox, category: domain.CategoryStatus},
		}),
		domain.FormTypeBranch: build(domain.FormTypeBranch, "Branch", []fieldSpec{
			{name: "addBranch", label: "Branch Name", typ: domain.InputText, category: domain.CategoryBasic, required: true},
			{name: "branchCode", label: "Branch Code", typ: domain.InputText, category: domain.CategoryBasic, required: true},
			{name: "email", label: "Email", typ: domain.InputEmail, category: domain.CategoryContact, required: true},
			{name: "phoneNumber", label: "Phone Number", typ: domain.InputTel, category: domain.CategoryContact},
			{name: "address", label: "Address", typ: domain.InputTextarea, category: domain.CategoryContact},
			{name: "city", label: "City", typ: domain.InputText, category: domain.CategoryContact},
			{name: "isActive", label: "Active", typ: domain.InputCheckbox, category: domain.CategoryStatus},
		}),
	}
}

// DefaultsFile is the YAML layout of a defaults override file.
type DefaultsFile struct {
	Forms []FormDefaults `yaml:"forms"`
}

// FormDefaults overrides one form type. UniqueKeys, when set, replaces the
// form type's uniqueness keys.
type FormDefaults struct {
	FormType   string               `yaml:"form_type"`
	Name       string               `yaml:"name"`
	UniqueKeys []string             `yaml:"unique_keys"`
	Fields     []domain.FieldConfig `yaml:"fields"`
}

// LoadDefaults reads a defaults file and merges it over BuiltinDefaults.
// It also returns the unique key overrides found in the file.
func LoadDefaults(path string) (Defaults, map[domain.FormType][]string, error) {
	var file DefaultsFile
	if err := config.ReadFile(path, &file); err != nil {
		return nil, nil, err
	}
	return MergeDefaults(BuiltinDefaults(), file)
}

// MergeDefaults applies file over base. Every listed form is validated.
func MergeDefaults(base Defaults, file DefaultsFile) (Defaults, map[domain.FormType][]string, error) {
	out := make(Defaults, len(base)+len(file.Forms))
	for ft, def := range base {
		out[ft] = def.Clone()
	}
	keys := make(map[domain.FormType][]string)

	for i, fd := range file.Forms {
		ft := domain.FormType(strings.TrimSpace(fd.FormType))
		if ft == "" {
			return nil, nil, fmt.Errorf("defaults: forms[%d]: form_type is required", i)
		}
		fields, err := fieldconfig.ValidateSet(fd.Fields)
		if err != nil {
			return nil, nil, fmt.Errorf("defaults: %s: %w", ft, err)
		}
		name := fd.Name
		if name == "" {
			name = out[ft].Name
		}
		if name == "" {
			name = ft.String()
		}
		out[ft] = domain.FormDefinition{FormType: ft, Name: name, Custom: !ft.IsBuiltin(), Fields: fields}
		if len(fd.UniqueKeys) > 0 {
			keys[ft] = fd.UniqueKeys
		}
	}
	return out, keys, nil
}
