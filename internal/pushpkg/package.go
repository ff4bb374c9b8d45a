// Package pushpkg assembles the package submitted to the management service
// from a compiled artifact.
package pushpkg

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/draftpush/cli/internal/configui"
	"github.com/draftpush/cli/internal/metadata"
)

// Package is a compiled artifact with the metadata needed to publish it.
// Its content cannot be changed once constructed.
type Package struct {
	id                 string
	extensionPointType string
	scriptName         string
	content            []byte
	compiledType       string
	metadata           metadata.Metadata
	configUI           *configui.ConfigUI
}

// ID is the artifact's path on disk: <project>/build/<script>.<compiledType>.
func (p *Package) ID() string { return p.id }

// ExtensionPointType is the remote extension point the package targets.
func (p *Package) ExtensionPointType() string { return p.extensionPointType }

// ScriptName is the project's script name.
func (p *Package) ScriptName() string { return p.scriptName }

// CompiledType is the artifact's output type, e.g. "wasm".
func (p *Package) CompiledType() string { return p.compiledType }

// Metadata returns a copy of the schema metadata the artifact was built against.
func (p *Package) Metadata() metadata.Metadata { return p.metadata.Clone() }

// ConfigUI returns a copy of the config UI schema; nil when the project has none.
func (p *Package) ConfigUI() *configui.ConfigUI { return cloneConfigUI(p.configUI) }

func cloneConfigUI(ui *configui.ConfigUI) *configui.ConfigUI {
	if ui == nil {
		return nil
	}
	c := *ui
	return &c
}

// Content returns a copy of the artifact bytes.
func (p *Package) Content() []byte {
	out := make([]byte, len(p.content))
	copy(out, p.content)
	return out
}

// Size is the artifact length in bytes.
func (p *Package) Size() int { return len(p.content) }

// Digest is the BLAKE3 digest of the content, formatted "blake3:<hex>".
func (p *Package) Digest() string {
	sum := blake3.Sum256(p.content)
	return "blake3:" + hex.EncodeToString(sum[:])
}
