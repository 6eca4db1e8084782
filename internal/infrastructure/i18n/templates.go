package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"areamsg/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

// Ensure TemplateStore implements the output.ReloadableTemplateStore port.
var _ output.ReloadableTemplateStore = (*TemplateStore)(nil)

// TemplateStore serves raw message templates from a go-i18n Bundle.
// Multi-line templates are split on '\n'.
//
// The bundle is rebuilt from scratch on Reload and swapped in one store, so
// readers see either the old catalog or the new one, never a mix.
type TemplateStore struct {
	bundle   atomic.Pointer[i18n.Bundle]
	fsys     fs.FS
	dir      string
	language language.Tag
	logger   *slog.Logger
}

// Option configures a TemplateStore.
type Option func(*TemplateStore)

// WithOverrideDir loads every *.toml file of dir after the embedded catalogs.
// File names follow go-i18n conventions, e.g. "active.fr.toml".
func WithOverrideDir(dir string) Option {
	return func(s *TemplateStore) {
		s.dir = dir
	}
}

// WithFS replaces the embedded catalogs with the active.*.toml files of fsys.
func WithFS(fsys fs.FS) Option {
	return func(s *TemplateStore) {
		s.fsys = fsys
	}
}

// WithLogger sets the logger used for lookup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *TemplateStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewTemplateStore loads the catalogs for the given chat locale (e.g. "fr").
// Unknown locales fall back to English.
func NewTemplateStore(locale string, opts ...Option) (*TemplateStore, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	s := &TemplateStore{
		fsys:     localeFS,
		language: tag,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rebuilds the catalog and swaps it in. On error the current catalog
// stays active.
func (s *TemplateStore) Reload() error {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(s.fsys, "active.*.toml")
	if err != nil {
		return fmt.Errorf("i18n: list catalogs: %w", err)
	}
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(s.fsys, file); err != nil {
			return fmt.Errorf("i18n: load %s: %w", file, err)
		}
	}

	if s.dir != "" {
		overrides, err := filepath.Glob(filepath.Join(s.dir, "*.toml"))
		if err != nil {
			return fmt.Errorf("i18n: list overrides in %s: %w", s.dir, err)
		}
		for _, path := range overrides {
			if _, err := bundle.LoadMessageFile(path); err != nil {
				return fmt.Errorf("i18n: load %s: %w", path, err)
			}
		}
	}

	s.bundle.Store(bundle)
	s.logger.Info("message catalog loaded",
		slog.String("language", s.language.String()),
		slog.Int("files", len(files)),
	)
	return nil
}

// RawMessage returns the template lines of key in the chat locale, falling
// back to English. Unknown keys give nil.
func (s *TemplateStore) RawMessage(key string) []string {
	if key == "" {
		return nil
	}
	localizer := i18n.NewLocalizer(s.bundle.Load(), s.language.String(), language.English.String())
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		var notFound *i18n.MessageNotFoundErr
		if !errors.As(err, &notFound) {
			s.logger.Warn("i18n: localize failed", slog.String("key", key), slog.Any("error", err))
		}
		// A fallback-language hit is reported as an error alongside the text.
		if msg == "" {
			return nil
		}
	}
	return strings.Split(strings.TrimSuffix(msg, "\n"), "\n")
}

// Language returns the chat locale of the store.
func (s *TemplateStore) Language() language.Tag {
	return s.language
}
