package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/fieldconfig"
)

// CreateCustomForm registers an empty form whose type is the slug of name.
func (s *Service) CreateCustomForm(ctx context.Context, name string) (domain.FormDefinition, error) {
	name = strings.TrimSpace(name)
	formType := domain.FormType(domain.Slugify(name))
	if formType == "" {
		return domain.FormDefinition{}, domain.ErrEmptyName
	}
	if _, ok := s.defaults[formType]; ok || formType.IsBuiltin() {
		return domain.FormDefinition{}, fmt.Errorf("form %s: %w", formType, domain.ErrAlreadyExists)
	}

	created, err := s.repo.Create(ctx, &domain.FormDefinition{
		FormType: formType,
		Name:     name,
		Custom:   true,
		Fields:   []domain.FieldConfig{},
		Version:  1,
	})
	if err != nil {
		return domain.FormDefinition{}, fmt.Errorf("create form %s: %w", formType, err)
	}
	s.store(*created)

	s.log.InfoContext(ctx, "custom form created", slog.String("form_type", formType.String()))
	return *created, nil
}

// RenameForm changes the display name. The form type, and with it every
// stored record, is unaffected.
func (s *Service) RenameForm(ctx context.Context, formType domain.FormType, name string) (domain.FormDefinition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.FormDefinition{}, domain.ErrEmptyName
	}
	return s.edit(ctx, formType, func(def *domain.FormDefinition) error {
		def.Name = name
		return nil
	})
}

// AddField appends a field built from in.
func (s *Service) AddField(ctx context.Context, formType domain.FormType, in fieldconfig.Input) (domain.FieldConfig, error) {
	var added domain.FieldConfig
	_, err := s.edit(ctx, formType, func(def *domain.FormDefinition) error {
		f, err := fieldconfig.Add(def, in)
		added = f
		return err
	})
	return added, err
}

// RemoveField deletes a field. Removing an unknown field is a no-op.
// Values already stored under the field's name stay in the records.
func (s *Service) RemoveField(ctx context.Context, formType domain.FormType, fieldID string) error {
	_, err := s.edit(ctx, formType, func(def *domain.FormDefinition) error {
		if !fieldconfig.Remove(def, fieldID) {
			return errNoChange
		}
		return nil
	})
	return err
}

// UpdateField patches one field.
func (s *Service) UpdateField(ctx context.Context, formType domain.FormType, fieldID string, p fieldconfig.Patch) (domain.FieldConfig, error) {
	var updated domain.FieldConfig
	_, err := s.edit(ctx, formType, func(def *domain.FormDefinition) error {
		f, err := fieldconfig.Update(def, fieldID, p)
		updated = f
		return err
	})
	return updated, err
}

// SetFields replaces the whole field list.
func (s *Service) SetFields(ctx context.Context, formType domain.FormType, fields []domain.FieldConfig) (domain.FormDefinition, error) {
	checked, err := fieldconfig.ValidateSet(fields)
	if err != nil {
		return domain.FormDefinition{}, err
	}
	return s.edit(ctx, formType, func(def *domain.FormDefinition) error {
		def.Fields = checked
		return nil
	})
}

// errNoChange aborts an edit without saving or failing.
var errNoChange = errors.New("no change")

// edit applies fn to a copy of the current definition, saves it and makes
// it current. The form stays usable throughout; a failed save leaves the
// previous definition in place.
func (s *Service) edit(ctx context.Context, formType domain.FormType, fn func(def *domain.FormDefinition) error) (domain.FormDefinition, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	def, err := s.Get(ctx, formType)
	if err != nil {
		return domain.FormDefinition{}, err
	}
	if err := fn(&def); err != nil {
		if errors.Is(err, errNoChange) {
			return def, nil
		}
		return domain.FormDefinition{}, err
	}
	def.Version++

	saved, err := s.repo.Save(ctx, &def)
	if err != nil {
		return domain.FormDefinition{}, fmt.Errorf("save form %s: %w", formType, err)
	}
	s.store(*saved)

	s.log.InfoContext(ctx, "form definition saved",
		slog.String("form_type", formType.String()),
		slog.Int("version", saved.Version),
		slog.Int("fields", len(saved.Fields)),
	)
	return *saved, nil
}
