package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/fieldconfig"
)

// ---------------------------------------------------------------------------
// Mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type formRepoMock struct {
	GetFunc    func(ctx context.Context, formType domain.FormType) (*domain.FormDefinition, error)
	ListFunc   func(ctx context.Context) ([]*domain.FormDefinition, error)
	CreateFunc func(ctx context.Context, def *domain.FormDefinition) (*domain.FormDefinition, error)
	SaveFunc   func(ctx context.Context, def *domain.FormDefinition) (*domain.FormDefinition, error)

	getCalls  atomic.Int32
	saveCalls atomic.Int32
}

func (m *formRepoMock) Get(ctx context.Context, formType domain.FormType) (*domain.FormDefinition, error) {
	m.getCalls.Add(1)
	return m.GetFunc(ctx, formType)
}

func (m *formRepoMock) List(ctx context.Context) ([]*domain.FormDefinition, error) {
	return m.ListFunc(ctx)
}

func (m *formRepoMock) Create(ctx context.Context, def *domain.FormDefinition) (*domain.FormDefinition, error) {
	return m.CreateFunc(ctx, def)
}

func (m *formRepoMock) Save(ctx context.Context, def *domain.FormDefinition) (*domain.FormDefinition, error) {
	m.saveCalls.Add(1)
	return m.SaveFunc(ctx, def)
}

var _ formRepo = (*formRepoMock)(nil)

type observerMock struct {
	mu    sync.Mutex
	types []domain.FormType
}

func (o *observerMock) DefaultsApplied(ft domain.FormType) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.types = append(o.types, ft)
}

// emptyRepo reports nothing saved and echoes saves back.
func emptyRepo() *formRepoMock {
	return &formRepoMock{
		GetFunc: func(context.Context, domain.FormType) (*domain.FormDefinition, error) {
			return nil, domain.ErrNotFound
		},
		ListFunc: func(context.Context) ([]*domain.FormDefinition, error) { return nil, nil },
		CreateFunc: func(_ context.Context, def *domain.FormDefinition) (*domain.FormDefinition, error) {
			out := def.Clone()
			return &out, nil
		},
		SaveFunc: func(_ context.Context, def *domain.FormDefinition) (*domain.FormDefinition, error) {
			out := def.Clone()
			out.UpdatedAt = time.Now()
			return &out, nil
		},
	}
}

func newTestService(repo *formRepoMock, opts ...Option) *Service {
	return NewService(slog.Default(), repo, BuiltinDefaults(), opts...)
}

// ---------------------------------------------------------------------------
// Get / state machine
// ---------------------------------------------------------------------------

func TestGet_SavedDefinition(t *testing.T) {
	t.Parallel()

	repo := emptyRepo()
	repo.GetFunc = func(_ context.Context, ft domain.FormType) (*domain.FormDefinition, error) {
		return &domain.FormDefinition{FormType: ft, Name: "Saved", Version: 3}, nil
	}
	svc := newTestService(repo)

	assert.Equal(t, domain.LoadStateUnloaded, svc.State(domain.FormTypeStudent))

	def, err := svc.Get(context.Background(), domain.FormTypeStudent)
	require.NoError(t, err)
	assert.Equal(t, "Saved", def.Name)
	assert.Equal(t, domain.LoadStateReady, svc.State(domain.FormTypeStudent))

	// Second call is served from memory.
	_, err = svc.Get(context.Background(), domain.FormTypeStudent)
	require.NoError(t, err)
	assert.Equal(t, int32(1), repo.getCalls.Load())
}

func TestGet_NothingSavedUsesDefaults(t *testing.T) {
	t.Parallel()

	svc := newTestService(emptyRepo())

	def, err := svc.Get(context.Background(), domain.FormTypeCourse)
	require.NoError(t, err)
	_, ok := def.FieldByName("courseCode")
	assert.True(t, ok)
	assert.Equal(t, domain.LoadStateReady, svc.State(domain.FormTypeCourse))
}

func TestGet_FetchFailureAppliesDefaults(t *testing.T) {
	t.Parallel()

	repo := emptyRepo()
	repo.GetFunc = func(context.Context, domain.FormType) (*domain.FormDefinition, error) {
		return nil, domain.ErrPersistenceUnavailable
	}
	obs := &observerMock{}
	svc := newTestService(repo, WithObserver(obs))

	def, err := svc.Get(context.Background(), domain.FormTypeBranch)
	require.NoError(t, err)
	_, ok := def.FieldByName("addBranch")
	assert.True(t, ok)
	assert.Equal(t, domain.LoadStateDefaultsApplied, svc.State(domain.FormTypeBranch))
	assert.Equal(t, []domain.FormType{domain.FormTypeBranch}, obs.types)
}

func TestGet_UnknownCustomForm(t *testing.T) {
	t.Parallel()

	svc := newTestService(emptyRepo())

	_, err := svc.Get(context.Background(), "enquiry")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.LoadStateUnloaded, svc.State("enquiry"))
}

func TestGet_CustomFormFetchFailure(t *testing.T) {
	t.Parallel()

	repo := emptyRepo()
	repo.GetFunc = func(context.Context, domain.FormType) (*domain.FormDefinition, error) {
		return nil, domain.ErrPersistenceUnavailable
	}
	svc := newTestService(repo)

	_, err := svc.Get(context.Background(), "enquiry")
	assert.ErrorIs(t, err, domain.ErrPersistenceUnavailable)
}

func TestGet_FetchTimeout(t *testing.T) {
	t.Parallel()

	repo := emptyRepo()
	repo.GetFunc = func(ctx context.Context, _ domain.FormType) (*domain.FormDefinition, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	svc := newTestService(repo, WithFetchTimeout(10*time.Millisecond))

	_, err := svc.Get(context.Background(), domain.FormTypeStudent)
	require.NoError(t, err)
	assert.Equal(t, domain.LoadStateDefaultsApplied, svc.State(domain.FormTypeStudent))
}

func TestGet_ConcurrentCallersShareOneFetch(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	repo := emptyRepo()
	repo.GetFunc = func(_ context.Context, ft domain.FormType) (*domain.FormDefinition, error) {
		<-release
		return &domain.FormDefinition{FormType: ft, Name: "Saved"}, nil
	}
	svc := newTestService(repo)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			def, err := svc.Get(context.Background(), domain.FormTypeStudent)
			assert.NoError(t, err)
			assert.Equal(t, "Saved", def.Name)
		}()
	}

	require.Eventually(t, func() bool {
		return svc.State(domain.FormTypeStudent) == domain.LoadStateLoading
	}, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), repo.getCalls.Load())
}

func TestGet_ReturnsCopy(t *testing.T) {
	t.Parallel()

	svc := newTestService(emptyRepo())
	def, err := svc.Get(context.Background(), domain.FormTypeStudent)
	require.NoError(t, err)
	def.Fields[0].Label = "mutated"

	again, err := svc.Get(context.Background(), domain.FormTypeStudent)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again.Fields[0].Label)
}

func TestReload(t *testing.T) {
	t.Parallel()

	repo := emptyRepo()
	svc := newTestService(repo)
	_, err := svc.Get(context.Background(), domain.FormTypeStudent)
	require.NoError(t, err)

	svc.Reload(domain.FormTypeStudent)
	assert.Equal(t, domain.LoadStateUnloaded, svc.State(domain.FormTypeStudent))
	_, err = svc.Get(context.Background(), domain.FormTypeStudent)
	require.NoError(t, err)
	assert.Equal(t, int32(2), repo.getCalls.Load())
}

// ---------------------------------------------------------------------------
// List / Validator
// ---------------------------------------------------------------------------

func TestList(t *testing.T) {
	t.Parallel()

	repo := emptyRepo()
	repo.ListFunc = func(context.Context) ([]*domain.FormDefinition, error) {
		return []*domain.FormDefinition{
			{FormType: domain.FormTypeStudent, Name: "dup of builtin"},
			{FormType: "enquiry", Name: "Enquiry", Custom: true},
		}, nil
	}
	svc := newTestService(repo)

	forms, err := svc.List(context.Background())
	require.NoError(t, err)

	types := make([]domain.FormType, len(forms))
	for i, f := range forms {
		types[i] = f.FormType
	}
	assert.Equal(t, []domain.FormType{"student", "course", "branch", "enquiry"}, types)
}

func TestList_SavedListingFails(t *testing.T) {
	t.Parallel()

	repo := emptyRepo()
	repo.ListFunc = func(context.Context) ([]*domain.FormDefinition, error) {
		return nil, domain.ErrPersistenceUnavailable
	}
	forms, err := newTestService(repo).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, forms, 3)
}

func TestValidator_FollowsEdits(t *testing.T) {
	t.Parallel()

	svc := newTestService(emptyRepo())
	ctx := context.Background()

	v1, _, err := svc.Validator(ctx, domain.FormTypeCourse)
	require.NoError(t, err)
	v1again, _, err := svc.Validator(ctx, domain.FormTypeCourse)
	require.NoError(t, err)
	assert.Same(t, v1, v1again)

	_, err = svc.AddField(ctx, domain.FormTypeCourse, fieldconfig.Input{Name: "level", Label: "Level", InputType: domain.InputSelect, Options: "Beginner,Advanced"})
	require.NoError(t, err)

	v2, def, err := svc.Validator(ctx, domain.FormTypeCourse)
	require.NoError(t, err)
	assert.NotEqual(t, v1.Fingerprint(), v2.Fingerprint())
	_, ok := def.FieldByName("level")
	assert.True(t, ok)
}

// ---------------------------------------------------------------------------
// Edits
// ---------------------------------------------------------------------------

func TestCreateCustomForm(t *testing.T) {
	t.Parallel()

	repo := emptyRepo()
	var created *domain.FormDefinition
	repo.CreateFunc = func(_ context.Context, def *domain.FormDefinition) (*domain.FormDefinition, error) {
		created = def
		return def, nil
	}
	svc := newTestService(repo)

	def, err := svc.CreateCustomForm(context.Background(), "  Summer  Camp Enquiry!! ")
	require.NoError(t, err)
	assert.Equal(t, domain.FormType("summer-camp-enquiry"), def.FormType)
	assert.Equal(t, "Summer  Camp Enquiry!!", def.Name)
	assert.True(t, def.Custom)
	assert.Empty(t, def.Fields)
	require.NotNil(t, created)
	assert.Equal(t, domain.LoadStateReady, svc.State("summer-camp-enquiry"))
}

func TestCreateCustomForm_Errors(t *testing.T) {
	t.Parallel()

	repo := emptyRepo()
	repo.CreateFunc = func(context.Context, *domain.FormDefinition) (*domain.FormDefinition, error) {
		return nil, domain.ErrAlreadyExists
	}
	svc := newTestService(repo)

	_, err := svc.CreateCustomForm(context.Background(), "  !!! ")
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = svc.CreateCustomForm(context.Background(), "Student")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = svc.CreateCustomForm(context.Background(), "Enquiry")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestAddField_PersistsAndBumpsVersion(t *testing.T) {
	t.Parallel()

	repo := emptyRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	field, err := svc.AddField(ctx, domain.FormTypeStudent, fieldconfig.Input{Name: "bloodGroup", Label: "Blood Group", InputType: domain.InputText})
	require.NoError(t, err)
	assert.NotEmpty(t, field.ID)

	def, err := svc.Get(ctx, domain.FormTypeStudent)
	require.NoError(t, err)
	assert.Equal(t, 1, def.Version)
	_, ok := def.FieldByName("bloodGroup")
	assert.True(t, ok)
	assert.Equal(t, int32(1), repo.saveCalls.Load())
}

func TestAddField_InvalidLeavesDefinition(t *testing.T) {
	t.Parallel()

	repo := emptyRepo()
	svc := newTestService(repo)

	_, err := svc.AddField(context.Background(), domain.FormTypeStudent, fieldconfig.Input{Name: "studentEmail", Label: "Again", InputType: domain.InputEmail})
	assert.ErrorIs(t, err, domain.ErrInvalidFieldDefinition)
	assert.Zero(t, repo.saveCalls.Load())
}

func TestEdit_SaveFailureKeepsPrevious(t *testing.T) {
	t.Parallel()

	repo := emptyRepo()
	repo.SaveFunc = func(context.Context, *domain.FormDefinition) (*domain.FormDefinition, error) {
		return nil, domain.ErrPersistenceUnavailable
	}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.AddField(ctx, domain.FormTypeCourse, fieldconfig.Input{Name: "room", Label: "Room", InputType: domain.InputText})
	assert.ErrorIs(t, err, domain.ErrPersistenceUnavailable)

	def, err := svc.Get(ctx, domain.FormTypeCourse)
	require.NoError(t, err)
	_, ok := def.FieldByName("room")
	assert.False(t, ok)
}

func TestRemoveField(t *testing.T) {
	t.Parallel()

	repo := emptyRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.RemoveField(ctx, domain.FormTypeBranch, "branch-city"))
	def, err := svc.Get(ctx, domain.FormTypeBranch)
	require.NoError(t, err)
	_, ok := def.FieldByName("city")
	assert.False(t, ok)

	// Unknown id: no error, no save.
	require.NoError(t, svc.RemoveField(ctx, domain.FormTypeBranch, "nope"))
	assert.Equal(t, int32(1), repo.saveCalls.Load())
}

func TestUpdateField_DisableThenReenable(t *testing.T) {
	t.Parallel()

	svc := newTestService(emptyRepo())
	ctx := context.Background()
	off, on := false, true

	f, err := svc.UpdateField(ctx, domain.FormTypeStudent, "student-fatherName", fieldconfig.Patch{Enabled: &off})
	require.NoError(t, err)
	assert.False(t, f.Enabled)

	f, err = svc.UpdateField(ctx, domain.FormTypeStudent, "student-fatherName", fieldconfig.Patch{Enabled: &on})
	require.NoError(t, err)
	assert.True(t, f.Enabled)
	assert.Equal(t, "fatherName", f.Name)
}

func TestSetFields(t *testing.T) {
	t.Parallel()

	svc := newTestService(emptyRepo())
	ctx := context.Background()

	_, err := svc.SetFields(ctx, domain.FormTypeCourse, []domain.FieldConfig{
		{Name: "x", Label: "X", Enabled: true, InputType: domain.InputText},
		{Name: "x", Label: "X again", Enabled: true, InputType: domain.InputText},
	})
	var defErr *domain.FieldDefinitionError
	require.True(t, errors.As(err, &defErr))

	def, err := svc.SetFields(ctx, domain.FormTypeCourse, []domain.FieldConfig{
		{Name: "courseName", Label: "Name", Enabled: true, Required: true, InputType: domain.InputText},
	})
	require.NoError(t, err)
	require.Len(t, def.Fields, 1)
	assert.NotEmpty(t, def.Fields[0].ID)
}

func TestRenameForm(t *testing.T) {
	t.Parallel()

	svc := newTestService(emptyRepo())

	def, err := svc.RenameForm(context.Background(), domain.FormTypeCourse, "Programmes")
	require.NoError(t, err)
	assert.Equal(t, "Programmes", def.Name)
	assert.Equal(t, domain.FormTypeCourse, def.FormType)

	_, err = svc.RenameForm(context.Background(), domain.FormTypeCourse, " ")
	assert.ErrorIs(t, err, domain.ErrEmptyName)
}
