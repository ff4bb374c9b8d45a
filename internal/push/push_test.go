package push

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftpush/cli/internal/build"
	"github.com/draftpush/cli/internal/draft"
	oerrors "github.com/draftpush/cli/internal/errors"
	"github.com/draftpush/cli/internal/metadata"
	"github.com/draftpush/cli/internal/project"
	"github.com/draftpush/cli/internal/pushpkg"
	"github.com/draftpush/cli/internal/testutil"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type fakePublisher struct {
	version *draft.Version
	err     error
	calls   []draft.UpdateDraftInput
	pkgs    []*pushpkg.Package
}

func (f *fakePublisher) Update(_ context.Context, p *project.Project, pkg *pushpkg.Package, apiKey string, opts ...draft.UpdateOption) (*draft.Version, error) {
	in := draft.UpdateDraftInput{APIKey: apiKey, RegistrationID: p.Env.RegistrationID}
	for _, opt := range opts {
		opt(&in)
	}
	f.calls = append(f.calls, in)
	f.pkgs = append(f.pkgs, pkg)
	return f.version, f.err
}

type fakeRegistrar struct {
	id    string
	err   error
	calls int
}

func (f *fakeRegistrar) Register(context.Context, *project.Project) (string, error) {
	f.calls++
	return f.id, f.err
}

type fakeStore struct {
	saved []string
	err   error
}

func (f *fakeStore) SaveRegistration(_ *project.Project, id string) error {
	f.saved = append(f.saved, id)
	return f.err
}

type fakeBackend struct {
	buildErr    error
	metadataErr error
}

func (f *fakeBackend) Build(context.Context) (build.Artifact, error) {
	if f.buildErr != nil {
		return build.Artifact{}, f.buildErr
	}
	return build.Artifact{Content: []byte("blob"), CompiledType: build.CompiledTypeWasm}, nil
}

func (f *fakeBackend) Metadata() (metadata.Metadata, error) {
	return metadata.Metadata{SchemaVersions: map[string]metadata.SchemaVersion{"example": {Major: 1}}}, f.metadataErr
}

func (f *fakeBackend) CompiledType() string { return build.CompiledTypeWasm }

type fixture struct {
	fs        afero.Fs
	runner    *testutil.FakeRunner
	publisher *fakePublisher
	registrar *fakeRegistrar
	store     *fakeStore
	out       *bytes.Buffer
	pipeline  *Pipeline
	project   *project.Project
}

// updatedAt is 2020-05-07T19:01:56-04:00.
var updatedAt = time.Date(2020, 5, 7, 19, 1, 56, 0, time.FixedZone("EDT", -4*60*60))

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		fs:        afero.NewMemMapFs(),
		publisher: &fakePublisher{version: &draft.Version{RegistrationID: "42", LastUserInteractionAt: updatedAt}},
		registrar: &fakeRegistrar{id: "77"},
		store:     &fakeStore{},
		out:       &bytes.Buffer{},
		project:   testutil.NewProject("rust", "foo"),
	}

	// cargo leaves the binary and metadata behind like the real toolchain.
	f.runner = &testutil.FakeRunner{OnRun: func(testutil.RunnerCall) {
		testutil.WriteFile(t, f.fs, filepath.Join(testutil.ProjectDir, "target", build.RustTarget, "release", "foo.wasm"), "compiled")
		testutil.WriteFile(t, f.fs, f.project.BuildPath(build.MetadataFile), testutil.MetadataJSON)
	}}

	f.pipeline = &Pipeline{
		FS:        f.fs,
		Runner:    f.runner,
		Env:       ProjectEnv,
		Registrar: f.registrar,
		Store:     f.store,
		Packages:  pushpkg.NewRepository(f.fs),
		Publisher: f.publisher,
		Reporter:  NewReporter(f.out),
	}
	return f
}

func (f *fixture) lines() []string {
	text := strings.TrimRight(ansi.ReplaceAllString(f.out.String(), ""), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestPush_Clean(t *testing.T) {
	f := newFixture(t)
	f.publisher.version.Location = "https://partners.example.com/42"

	v, err := f.pipeline.Push(context.Background(), f.project, Options{})
	require.NoError(t, err)

	assert.False(t, v.HasErrors())
	assert.Equal(t, []string{
		"Pushing your code to the management service...",
		"Test Script was pushed as a draft at May 07, 2020 23:01:56 UTC.",
		"Visit https://partners.example.com/42 to review your draft version.",
	}, f.lines())

	require.Len(t, f.publisher.pkgs, 1)
	pkg := f.publisher.pkgs[0]
	assert.Equal(t, testutil.ProjectDir+"/build/foo.wasm", pkg.ID())
	assert.Equal(t, []byte("compiled"), pkg.Content())
	assert.Equal(t, "apikey", f.publisher.calls[0].APIKey)
	assert.Equal(t, "42", f.publisher.calls[0].RegistrationID)
	assert.Equal(t, "compiled", testutil.ReadFile(t, f.fs, pkg.ID()))
}

func TestPush_CleanWithoutLocation(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Push(context.Background(), f.project, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Pushing your code to the management service...",
		"Test Script was pushed as a draft at May 07, 2020 23:01:56 UTC.",
	}, f.lines())
}

func TestPush_ValidationErrors(t *testing.T) {
	f := newFixture(t)
	f.publisher.version.ValidationErrors = []draft.ValidationError{
		{Field: []string{"configuration", "fields", "0"}, Message: "is invalid"},
		{Field: []string{"title"}, Message: "is too long"},
	}

	v, err := f.pipeline.Push(context.Background(), f.project, Options{})
	require.NoError(t, err, "validation errors are a result, not a failure")

	assert.True(t, v.HasErrors())
	assert.Equal(t, []string{
		"Pushing your code to the management service...",
		"Draft updated at May 07, 2020 23:01:56 UTC, but the service reported validation errors:",
		"✗ configuration.fields.0: is invalid",
		"✗ title: is too long",
		"Fix the errors above and push again.",
	}, f.lines())
}

func TestPush_MissingEnvironment(t *testing.T) {
	f := newFixture(t)
	f.project.Env.Secret = ""
	f.project.Env.Shop = ""

	_, err := f.pipeline.Push(context.Background(), f.project, Options{})

	var envErr *oerrors.EnvironmentMissingError
	require.True(t, errors.As(err, &envErr))
	assert.Equal(t, []string{"secret", "shop"}, envErr.Missing)
	assert.Empty(t, f.runner.Calls)
	assert.Empty(t, f.publisher.calls)
	assert.Zero(t, f.registrar.calls)
	assert.Empty(t, f.out.String())
}

func TestPush_EnvCheckerErrorIsReturnedVerbatim(t *testing.T) {
	f := newFixture(t)
	want := errors.New("no credentials")
	f.pipeline.Env = EnvCheckerFunc(func(*project.Project, ...string) error { return want })

	_, err := f.pipeline.Push(context.Background(), f.project, Options{})

	assert.Same(t, want, err)
	assert.Empty(t, f.runner.Calls)
}

func TestPush_Registration(t *testing.T) {
	t.Run("unregistered project registers first", func(t *testing.T) {
		f := newFixture(t)
		f.project.Env.RegistrationID = ""

		_, err := f.pipeline.Push(context.Background(), f.project, Options{})
		require.NoError(t, err)

		assert.Equal(t, 1, f.registrar.calls)
		assert.Equal(t, []string{"77"}, f.store.saved)
		assert.Equal(t, "77", f.publisher.calls[0].RegistrationID)
		assert.Equal(t, "Registered Test Script with the management service.", f.lines()[0])
	})

	t.Run("registered project skips registration", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.pipeline.Push(context.Background(), f.project, Options{})
		require.NoError(t, err)

		assert.Zero(t, f.registrar.calls)
		assert.Empty(t, f.store.saved)
	})

	t.Run("registration failure aborts", func(t *testing.T) {
		f := newFixture(t)
		f.project.Env.RegistrationID = ""
		want := &oerrors.ServiceFailureError{Op: oerrors.OpRegister, Message: "rejected"}
		f.registrar.err = want

		_, err := f.pipeline.Push(context.Background(), f.project, Options{})

		assert.Same(t, want, err)
		assert.Empty(t, f.runner.Calls)
		assert.Empty(t, f.store.saved)
	})
}

func TestPush_StageErrorsAreReturnedVerbatim(t *testing.T) {
	buildErr := &oerrors.ServiceFailureError{Op: oerrors.OpBuild, Message: "cargo failed"}
	binErr := &oerrors.BinaryNotFoundError{Path: "/x.wasm"}
	mdErr := &oerrors.MetadataNotFoundError{Path: "/build/metadata.json"}

	tests := []struct {
		name    string
		backend *fakeBackend
		want    error
	}{
		{"build failure", &fakeBackend{buildErr: buildErr}, buildErr},
		{"binary missing", &fakeBackend{buildErr: binErr}, binErr},
		{"metadata missing", &fakeBackend{metadataErr: mdErr}, mdErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.pipeline.NewBackend = func(build.Options) (build.Backend, error) { return tt.backend, nil }

			_, err := f.pipeline.Push(context.Background(), f.project, Options{})

			assert.Same(t, tt.want, err)
			assert.Empty(t, f.publisher.calls)
			assert.Empty(t, f.out.String())
		})
	}
}

func TestPush_PublishErrorIsReturnedVerbatim(t *testing.T) {
	f := newFixture(t)
	want := &oerrors.ServiceFailureError{Op: oerrors.OpPublish, Message: "service responded 502"}
	f.publisher.err = want
	f.publisher.version = nil

	_, err := f.pipeline.Push(context.Background(), f.project, Options{})

	assert.Same(t, want, err)
	assert.True(t, errors.Is(err, oerrors.ErrConnectivity))
	assert.Equal(t, []string{"Pushing your code to the management service..."}, f.lines())
}

func TestPush_RealBuildFailure(t *testing.T) {
	f := newFixture(t)
	f.runner.OnRun = nil
	f.runner.Results = map[string]testutil.RunResult{
		"cargo build --target=wasm32-unknown-unknown --release": {Output: "error: could not compile", OK: false},
	}

	_, err := f.pipeline.Push(context.Background(), f.project, Options{})

	var svcErr *oerrors.ServiceFailureError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, oerrors.OpBuild, svcErr.Op)
	assert.True(t, errors.Is(err, oerrors.ErrBuild))
}

func TestPush_MissingMetadata(t *testing.T) {
	f := newFixture(t)
	f.runner.OnRun = func(testutil.RunnerCall) {
		testutil.WriteFile(t, f.fs, filepath.Join(testutil.ProjectDir, "target", build.RustTarget, "release", "foo.wasm"), "compiled")
	}

	_, err := f.pipeline.Push(context.Background(), f.project, Options{})

	var mdErr *oerrors.MetadataNotFoundError
	require.True(t, errors.As(err, &mdErr))
	assert.Equal(t, f.project.BuildPath("metadata.json"), mdErr.Path)
}

func TestPush_RepeatBuildWithoutNewOutput(t *testing.T) {
	f := newFixture(t)
	f.project = testutil.NewProject("assemblyscript", "foo")
	f.runner.Results = map[string]testutil.RunResult{"node --version": {Output: "v18.17.1", OK: true}}
	compiles := true
	f.runner.OnRun = func(c testutil.RunnerCall) {
		if c.Name == "npm" && compiles {
			testutil.WriteFile(t, f.fs, f.project.BuildPath("script.wasm"), "fresh")
			testutil.WriteFile(t, f.fs, f.project.BuildPath(build.MetadataFile), testutil.MetadataJSON)
		}
	}

	_, err := f.pipeline.Push(context.Background(), f.project, Options{})
	require.NoError(t, err)

	compiles = false
	_, err = f.pipeline.Push(context.Background(), f.project, Options{})

	var binErr *oerrors.BinaryNotFoundError
	require.True(t, errors.As(err, &binErr))
	assert.Len(t, f.publisher.calls, 1, "nothing published on the second push")
	assert.Equal(t, "fresh", testutil.ReadFile(t, f.fs, pushpkg.Path(f.project, build.CompiledTypeWasm)))
}

func TestPush_Force(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Push(context.Background(), f.project, Options{Force: true})
	require.NoError(t, err)

	assert.True(t, f.publisher.calls[0].Force)
}

func TestPush_SkipBuild(t *testing.T) {
	t.Run("reuses the previous package", func(t *testing.T) {
		f := newFixture(t)
		testutil.WriteFile(t, f.fs, f.project.BuildPath("foo.wasm"), "previous")
		testutil.WriteFile(t, f.fs, f.project.BuildPath(build.MetadataFile), testutil.MetadataJSON)

		_, err := f.pipeline.Push(context.Background(), f.project, Options{SkipBuild: true})
		require.NoError(t, err)

		assert.Empty(t, f.runner.Calls)
		assert.Equal(t, []byte("previous"), f.publisher.pkgs[0].Content())
	})

	t.Run("fails without a previous build", func(t *testing.T) {
		f := newFixture(t)
		testutil.WriteFile(t, f.fs, f.project.BuildPath(build.MetadataFile), testutil.MetadataJSON)

		_, err := f.pipeline.Push(context.Background(), f.project, Options{SkipBuild: true})

		var pkgErr *oerrors.PackageNotFoundError
		require.True(t, errors.As(err, &pkgErr))
		assert.Empty(t, f.publisher.calls)
	})
}

func TestPush_ConfigUI(t *testing.T) {
	t.Run("carried into the package", func(t *testing.T) {
		f := newFixture(t)
		testutil.WriteFile(t, f.fs, filepath.Join(testutil.ProjectDir, "config-ui.yml"), "version: 1\nfields: []\n")

		_, err := f.pipeline.Push(context.Background(), f.project, Options{})
		require.NoError(t, err)

		require.NotNil(t, f.publisher.pkgs[0].ConfigUI())
	})

	t.Run("invalid schema aborts before publishing", func(t *testing.T) {
		f := newFixture(t)
		testutil.WriteFile(t, f.fs, filepath.Join(testutil.ProjectDir, "config-ui.yml"), "version: 0\n")

		_, err := f.pipeline.Push(context.Background(), f.project, Options{})

		assert.True(t, errors.Is(err, oerrors.ErrValidation))
		assert.Empty(t, f.publisher.calls)
	})
}

func TestPipeline_Build(t *testing.T) {
	f := newFixture(t)

	pkg, err := f.pipeline.Build(context.Background(), f.project)
	require.NoError(t, err)

	assert.Equal(t, testutil.ProjectDir+"/build/foo.wasm", pkg.ID())
	assert.Equal(t, []string{"cargo build --target=wasm32-unknown-unknown --release"}, f.runner.CommandLines())
	assert.Empty(t, f.publisher.calls)
}

func TestPipeline_UnsupportedLanguage(t *testing.T) {
	f := newFixture(t)
	f.project.Language = "cobol"

	_, err := f.pipeline.Push(context.Background(), f.project, Options{})

	assert.True(t, errors.Is(err, oerrors.ErrValidation))
	assert.Empty(t, f.runner.Calls)
}

func TestFormatTimestamp(t *testing.T) {
	ts, err := time.Parse(time.RFC3339, "2020-05-07T19:01:56-04:00")
	require.NoError(t, err)

	assert.Equal(t, "May 07, 2020 23:01:56 UTC", FormatTimestamp(ts))
}
