package config

import (
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"
)

// Dynamic token patterns that must not appear in configuration values.
// These indicate unexpanded template or shell variables.
var dynamicTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{[^}]+\}`),        // ${VAR}
	regexp.MustCompile(`\{\{[^}]+\}\}`),      // {{VAR}}
	regexp.MustCompile(`\$[A-Z_][A-Z0-9_]*`), // $VAR
}

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Validate checks the configuration for correctness. unknown lists top-level
// keys of the file that are not sections.
func Validate(cfg *Config, unknown []string) error {
	var errs []ValidationError

	for _, name := range unknown {
		errs = append(errs, ValidationError{
			Field:   name,
			Message: fmt.Sprintf("not a section; expected one of: %s", strings.Join(sectionNames, ", ")),
			Wrapped: ErrUnknownSection,
		})
	}

	errs = append(errs, validatePaths(&cfg.Paths)...)
	errs = append(errs, validateFonts(&cfg.Fonts)...)
	errs = append(errs, validateToolchain(&cfg.Toolchain)...)
	errs = append(errs, validateLog(&cfg.Log)...)
	errs = append(errs, validateDynamicTokens(cfg)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validatePaths requires every path to be a non-empty path inside the workspace.
func validatePaths(p *PathsConfig) []ValidationError {
	var errs []ValidationError
	for _, f := range []struct{ field, value string }{
		{"paths.engine_dir", p.EngineDir},
		{"paths.game_dir", p.GameDir},
		{"paths.asset_dir", p.AssetDir},
		{"paths.manifest", p.Manifest},
	} {
		if msg := checkRelativePath(f.value); msg != "" {
			errs = append(errs, ValidationError{Field: f.field, Message: msg, Value: f.value, Wrapped: ErrInvalidConfig})
		}
	}
	return errs
}

func checkRelativePath(p string) string {
	if strings.TrimSpace(p) == "" {
		return "required field is empty"
	}
	slashed := strings.ReplaceAll(p, "\\", "/")
	if path.IsAbs(slashed) || (len(slashed) > 1 && slashed[1] == ':') {
		return "must be relative to the workspace root"
	}
	cleaned := path.Clean(slashed)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "must not leave the workspace root"
	}
	return ""
}

// validateFonts checks the bundled font and extension list.
func validateFonts(f *FontsConfig) []ValidationError {
	var errs []ValidationError

	if f.Bundled.Family == "" {
		errs = append(errs, ValidationError{Field: "fonts.bundled.family", Message: "required field is empty", Wrapped: ErrInvalidConfig})
	}
	if f.Bundled.Asset == "" {
		errs = append(errs, ValidationError{Field: "fonts.bundled.asset", Message: "required field is empty", Wrapped: ErrInvalidConfig})
	}
	if w := f.Bundled.Weight; w != 0 && (w < 100 || w > 900 || w%100 != 0) {
		errs = append(errs, ValidationError{
			Field:   "fonts.bundled.weight",
			Message: "must be 0 or a multiple of 100 between 100 and 900",
			Value:   w,
			Wrapped: ErrInvalidConfig,
		})
	}
	if len(f.Extensions) == 0 {
		errs = append(errs, ValidationError{Field: "fonts.extensions", Message: "must list at least one extension", Wrapped: ErrInvalidConfig})
	}
	for _, ext := range f.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, ValidationError{Field: "fonts.extensions", Message: "extensions must start with a dot", Value: ext, Wrapped: ErrInvalidConfig})
		}
	}
	return errs
}

// validateToolchain requires the tool commands.
func validateToolchain(t *ToolchainConfig) []ValidationError {
	var errs []ValidationError
	if t.Flutter == "" {
		errs = append(errs, ValidationError{Field: "toolchain.flutter", Message: "required field is empty", Wrapped: ErrInvalidConfig})
	}
	if t.Dart == "" {
		errs = append(errs, ValidationError{Field: "toolchain.dart", Message: "required field is empty", Wrapped: ErrInvalidConfig})
	}
	if t.PubGetRetries < 0 || t.PubGetRetries > MaxPubGetRetries {
		errs = append(errs, ValidationError{
			Field:   "toolchain.pub_get_retries",
			Message: fmt.Sprintf("must be between 0 and %d", MaxPubGetRetries),
			Value:   t.PubGetRetries,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

// validateLog checks level and format names.
func validateLog(l *LogConfig) []ValidationError {
	var errs []ValidationError
	if !slices.Contains(validLogLevels, strings.ToLower(l.Level)) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
			Value:   l.Level,
			Wrapped: ErrInvalidConfig,
		})
	}
	if !slices.Contains(validLogFormats, strings.ToLower(l.Format)) {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogFormats, ", ")),
			Value:   l.Format,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

// validateDynamicTokens checks string fields for unexpanded dynamic tokens.
func validateDynamicTokens(cfg *Config) []ValidationError {
	var errs []ValidationError

	errs = append(errs, checkStringField("paths.engine_dir", cfg.Paths.EngineDir)...)
	errs = append(errs, checkStringField("paths.game_dir", cfg.Paths.GameDir)...)
	errs = append(errs, checkStringField("paths.asset_dir", cfg.Paths.AssetDir)...)
	errs = append(errs, checkStringField("paths.manifest", cfg.Paths.Manifest)...)
	errs = append(errs, checkStringField("fonts.bundled.family", cfg.Fonts.Bundled.Family)...)
	errs = append(errs, checkStringField("fonts.bundled.asset", cfg.Fonts.Bundled.Asset)...)
	errs = append(errs, checkStringField("toolchain.flutter", cfg.Toolchain.Flutter)...)
	errs = append(errs, checkStringField("toolchain.dart", cfg.Toolchain.Dart)...)

	return errs
}

// checkStringField checks a single string field for dynamic token patterns.
func checkStringField(field, value string) []ValidationError {
	if value == "" {
		return nil
	}
	for _, pattern := range dynamicTokenPatterns {
		if match := pattern.FindString(value); match != "" {
			return []ValidationError{
				{
					Field:   field,
					Message: fmt.Sprintf("contains unexpanded dynamic token: %s", match),
					Value:   value,
					Wrapped: ErrDynamicToken,
				},
			}
		}
	}
	return nil
}
