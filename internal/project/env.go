package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	oerrors "github.com/draftpush/cli/internal/errors"
)

// EnvFile is the project's credential file name.
const EnvFile = ".env"

// Keys understood by EnsureEnv.
const (
	KeyAPIKey = "api_key"
	KeySecret = "secret"
	KeyShop   = "shop"
)

// RequiredForPush lists the environment values a push cannot start without.
var RequiredForPush = []string{KeyAPIKey, KeySecret, KeyShop}

// Env holds the project's credentials and registration id.
type Env struct {
	APIKey         string
	Secret         string
	Shop           string
	RegistrationID string
}

func (e Env) value(key string) (string, bool) {
	switch key {
	case KeyAPIKey:
		return e.APIKey, true
	case KeySecret:
		return e.Secret, true
	case KeyShop:
		return e.Shop, true
	default:
		return "", false
	}
}

// EnsureEnv fails with an EnvironmentMissingError listing every required
// key that has no value.
func EnsureEnv(env Env, required ...string) error {
	var missing []string
	for _, key := range required {
		v, known := env.value(key)
		if !known || v == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &oerrors.EnvironmentMissingError{Missing: missing}
	}
	return nil
}

func newEnvViper(fsys afero.Fs, dir string) *viper.Viper {
	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigFile(filepath.Join(dir, EnvFile))
	v.SetConfigType("dotenv")
	return v
}

// LoadEnv reads <dir>/.env. A missing file yields an empty Env.
func LoadEnv(fsys afero.Fs, dir string) (Env, error) {
	path := filepath.Join(dir, EnvFile)
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return Env{}, fmt.Errorf("checking %s: %w", path, err)
	}
	if !exists {
		return Env{}, nil
	}

	v := newEnvViper(fsys, dir)
	if err := v.ReadInConfig(); err != nil {
		return Env{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return Env{
		APIKey:         v.GetString("api_key"),
		Secret:         v.GetString("api_secret"),
		Shop:           v.GetString("shop"),
		RegistrationID: v.GetString("registration_id"),
	}, nil
}

// SaveRegistration records the registration id in <dir>/.env, keeping every
// other entry, and updates p.Env. Values are written double-quoted so
// entries containing spaces or '#' read back unchanged.
func SaveRegistration(fsys afero.Fs, p *Project, registrationID string) error {
	path := filepath.Join(p.Directory, EnvFile)
	entries := gotenv.Env{}

	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if exists {
		f, err := fsys.Open(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		entries, err = gotenv.StrictParse(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}

	for k := range entries {
		if strings.EqualFold(k, registrationKey) {
			delete(entries, k)
		}
	}
	entries[registrationKey] = registrationID

	if err := afero.WriteFile(fsys, path, marshalEnv(entries), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	p.Env.RegistrationID = registrationID
	return nil
}

const registrationKey = "REGISTRATION_ID"

// marshalEnv renders entries sorted by key, every value quoted.
func marshalEnv(entries gotenv.Env) []byte {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%q\n", k, entries[k])
	}
	return []byte(b.String())
}
