package artifact

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/subosito/gotenv"
)

// ReadEnvFile parses the generated .env of dir.
func ReadEnvFile(fs afero.Fs, dir string) (map[string]string, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	f, err := fs.Open(filepath.Join(dir, EnvFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parsed, err := gotenv.StrictParse(f)
	if err != nil {
		return nil, err
	}
	return map[string]string(parsed), nil
}

// MaskSecret keeps the first and last four characters of long values.
func MaskSecret(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
}
