package config

import (
	"context"
	_ "embed"
	"path"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fs/core"
)

//go:embed schema.cue
var schemaSource []byte

// Loader reads configuration files and checks them against the embedded
// schema. Values the file omits take the schema defaults.
type Loader struct {
	fs     core.ReadFS
	cueCtx *cue.Context
}

// NewLoader creates a Loader reading files from filesystem.
func NewLoader(filesystem core.ReadFS) *Loader {
	return &Loader{
		fs:     filesystem,
		cueCtx: cuecontext.New(),
	}
}

// Load reads and parses the file at filePath. Files ending in .yaml or .yml
// are parsed as YAML, anything else as CUE.
//
// Returns CodeCUELoadFailed if the file cannot be read, and the errors of
// Parse otherwise.
func (l *Loader) Load(ctx context.Context, filePath string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapLoadError(err, "context cancelled", makeContext("file_path", filePath))
	}

	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, wrapLoadError(err, "failed to read configuration file", makeContext("file_path", filePath))
	}

	switch strings.ToLower(path.Ext(filePath)) {
	case ".yaml", ".yml":
		return l.ParseYAML(ctx, data, filePath)
	default:
		return l.Parse(ctx, data, filePath)
	}
}

// Parse evaluates CUE source against the schema. The filename is used only
// in error messages.
//
// Returns CodeCUEBuildFailed on syntax errors, CodeCUEValidationFailed when
// the source violates the schema (including unknown fields), and
// CodeCUEDecodeFailed if the result cannot be decoded.
func (l *Loader) Parse(ctx context.Context, source []byte, filename string) (*Config, error) {
	if filename == "" {
		filename = "<input>"
	}
	if err := ctx.Err(); err != nil {
		return nil, wrapBuildError(err, "context cancelled", makeContext("filename", filename))
	}

	data := l.cueCtx.CompileBytes(source, cue.Filename(filename))
	if err := data.Err(); err != nil {
		return nil, wrapBuildError(err, "failed to compile configuration",
			makeContext("filename", filename, "source_size", len(source)))
	}

	return l.evaluate(data, filename)
}

// ParseYAML is Parse for YAML source.
func (l *Loader) ParseYAML(ctx context.Context, source []byte, filename string) (*Config, error) {
	if filename == "" {
		filename = "<input>"
	}
	if err := ctx.Err(); err != nil {
		return nil, wrapBuildError(err, "context cancelled", makeContext("filename", filename))
	}

	file, err := cueyaml.Extract(filename, source)
	if err != nil {
		return nil, wrapBuildError(err, "failed to parse YAML configuration",
			makeContext("filename", filename, "source_size", len(source)))
	}

	data := l.cueCtx.BuildFile(file)
	if err := data.Err(); err != nil {
		return nil, wrapBuildError(err, "failed to build YAML configuration", makeContext("filename", filename))
	}

	return l.evaluate(data, filename)
}

// EncodeYAML renders cfg as YAML accepted by ParseYAML.
//
// Returns CodeCUEEncodeFailed if cfg cannot be represented.
func (l *Loader) EncodeYAML(ctx context.Context, cfg *Config) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeCUEEncodeFailed, "context cancelled before encoding")
	}

	val := l.cueCtx.Encode(cfg)
	if err := val.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeCUEEncodeFailed, "failed to encode configuration")
	}

	data, err := cueyaml.Encode(val)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCUEEncodeFailed, "failed to encode configuration to YAML")
	}

	return data, nil
}

// evaluate unifies data with the schema and decodes the result.
func (l *Loader) evaluate(data cue.Value, filename string) (*Config, error) {
	schema, err := l.schema()
	if err != nil {
		return nil, err
	}

	unified := schema.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, wrapValidationError(err, filename)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, wrapDecodeError(err, filename)
	}

	return &cfg, nil
}

func (l *Loader) schema() (cue.Value, error) {
	val := l.cueCtx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := val.Err(); err != nil {
		return cue.Value{}, wrapBuildError(err, "failed to compile configuration schema", nil)
	}

	def := val.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return cue.Value{}, wrapBuildError(err, "configuration schema has no #Config", nil)
	}

	return def, nil
}
