package pushpkg

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/draftpush/cli/internal/configui"
	oerrors "github.com/draftpush/cli/internal/errors"
	"github.com/draftpush/cli/internal/metadata"
	"github.com/draftpush/cli/internal/output"
	"github.com/draftpush/cli/internal/project"
)

// Repository persists packages under the project's build directory.
type Repository struct {
	fs afero.Fs
}

// NewRepository returns a Repository writing through fsys.
func NewRepository(fsys afero.Fs) *Repository {
	return &Repository{fs: fsys}
}

// Path returns the deterministic artifact path for p and compiledType.
func Path(p *project.Project, compiledType string) string {
	return p.BuildPath(p.ScriptName + "." + compiledType)
}

// Create writes content to the artifact path, overwriting any previous build,
// and returns the package referencing it. The file is kept regardless of
// whether the package is later published.
func (r *Repository) Create(p *project.Project, content []byte, compiledType string, md metadata.Metadata, ui *configui.ConfigUI) (*Package, error) {
	path := Path(p, compiledType)

	if err := r.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating build directory: %w", err)
	}
	if err := afero.WriteFile(r.fs, path, content, 0o644); err != nil {
		return nil, fmt.Errorf("writing package: %w", err)
	}

	pkg := newPackage(p, path, content, compiledType, md, ui)
	output.ProjectLogger(p.ScriptName).Debug("package written", "path", path, "digest", pkg.Digest())
	return pkg, nil
}

// Get reads the package a previous Create left on disk. It fails with
// PackageNotFoundError when there is none.
func (r *Repository) Get(p *project.Project, compiledType string, md metadata.Metadata, ui *configui.ConfigUI) (*Package, error) {
	path := Path(p, compiledType)

	exists, err := afero.Exists(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("checking package: %w", err)
	}
	if !exists {
		return nil, &oerrors.PackageNotFoundError{Path: path}
	}

	content, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading package: %w", err)
	}

	pkg := newPackage(p, path, content, compiledType, md, ui)
	output.ProjectLogger(p.ScriptName).Debug("package reused", "path", path, "digest", pkg.Digest())
	return pkg, nil
}

func newPackage(p *project.Project, path string, content []byte, compiledType string, md metadata.Metadata, ui *configui.ConfigUI) *Package {
	owned := make([]byte, len(content))
	copy(owned, content)
	return &Package{
		id:                 path,
		extensionPointType: p.ExtensionPointType,
		scriptName:         p.ScriptName,
		content:            owned,
		compiledType:       compiledType,
		metadata:           md.Clone(),
		configUI:           cloneConfigUI(ui),
	}
}
