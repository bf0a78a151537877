package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasklist/internal/itemstore"
	"github.com/mesh-intelligence/tasklist/internal/locale"
	"github.com/mesh-intelligence/tasklist/internal/paths"
	"github.com/mesh-intelligence/tasklist/internal/storage"
	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// openStore opens the configured backend and loads the task list. The
// caller must call the returned func when done.
func (a *app) openStore() (*itemstore.Store, func(), error) {
	cfg, err := a.storageConfig()
	if err != nil {
		return nil, nil, classify(err)
	}
	st, err := storage.Open(cfg)
	if err != nil {
		return nil, nil, classify(fmt.Errorf("open storage: %w", err))
	}
	a.logger.Debug("storage attached", "backend", cfg.Backend, "data_dir", cfg.DataDir, "key", cfg.Key())

	store, err := itemstore.Open(st, itemstore.WithKey(cfg.Key()), itemstore.WithLogger(a.logger))
	if err != nil {
		_ = st.Close()
		return nil, nil, sysError(fmt.Errorf("load tasks: %w", err))
	}
	done := func() {
		if err := st.Close(); err != nil {
			a.logger.Warn("closing storage", "err", err)
		}
	}
	return store, done, nil
}

// locales returns the bundle registry and the active bundle: the locale
// setting when present, otherwise the closest match to the environment.
func (a *app) locales() (*locale.Registry, *locale.Bundle, error) {
	reg, err := locale.Builtin()
	if err != nil {
		return nil, nil, sysError(err)
	}
	if err := reg.LoadDir(paths.LocalesDir(a.configDir)); err != nil {
		return nil, nil, userError(fmt.Errorf("loading label bundles: %w", err))
	}
	code := a.cfg.GetString(cfgKeyLocale)
	if code == "" {
		b := reg.Match(systemLocale())
		a.logger.Debug("locale from environment", "code", b.Code)
		return reg, b, nil
	}
	b, err := reg.Get(code)
	if err != nil {
		return nil, nil, userError(err)
	}
	return reg, b, nil
}

// systemLocale returns the POSIX locale in effect for messages.
func systemLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// resolveTask maps a user reference to the task it names.
func resolveTask(store *itemstore.Store, ref string) (types.Task, error) {
	pos, err := store.Resolve(ref)
	if err != nil {
		return types.Task{}, userError(fmt.Errorf("task %q: %w", ref, err))
	}
	t, err := store.At(pos)
	if err != nil {
		return types.Task{}, classify(err)
	}
	return t, nil
}

// parseCategoryFlag parses a --category value with a readable error.
func parseCategoryFlag(s string) (types.Category, error) {
	c, err := types.ParseCategory(s)
	if err != nil {
		return "", userError(fmt.Errorf("%w: %q (want all, groceries, college or payments)", err, s))
	}
	return c, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printTask writes t as JSON or as one "id  item  (category)" line.
func (a *app) printTask(cmd *cobra.Command, bundle *locale.Bundle, t types.Task) error {
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), t)
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (%s)\n", t.ID, t.Item, bundle.Category(t.Category))
	return err
}
