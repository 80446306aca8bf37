package cmd

import (
	"fmt"
	"io"

	"aitodo/internal/config"
	"aitodo/internal/storage"
	"aitodo/internal/task"
	"aitodo/internal/theme"
)

// doctorCommand checks the data directory and the stored state.
// The store itself never fails on bad state (it falls back to safe
// defaults); doctor is where problems become visible.
func doctorCommand(cfg *config.Config, w io.Writer) error {
	fmt.Fprintln(w, "aitodo Doctor")
	fmt.Fprintln(w, "=============")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintf(w, "Data dir: %s\n", cfg.DataDir)
	kv, err := storage.NewDir(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		fmt.Fprintln(w)
		return fmt.Errorf("doctor found problems")
	}
	fmt.Fprintln(w, "  ✅ OK")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Items (%s):\n", task.ItemsKey)
	raw, ok, err := kv.Get(task.ItemsKey)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  ❌ Read error: %v\n", err)
		allOK = false
	case !ok:
		fmt.Fprintln(w, "  ✅ Not present (empty collection)")
	default:
		errs := task.ValidateDocument(raw)
		if len(errs) == 0 {
			fmt.Fprintln(w, "  ✅ Valid")
		} else {
			// The app still starts with an empty list in this case.
			for _, verr := range errs {
				fmt.Fprintf(w, "  ❌ %v\n", verr)
			}
			allOK = false
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Theme (%s):\n", task.ThemeKey)
	raw, ok, err = kv.Get(task.ThemeKey)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  ❌ Read error: %v\n", err)
		allOK = false
	case !ok:
		fmt.Fprintf(w, "  ✅ Not present (ambient preference: %s)\n", theme.Detect())
	default:
		if _, valid := theme.Parse(raw); valid {
			fmt.Fprintf(w, "  ✅ %s\n", raw)
		} else {
			fmt.Fprintf(w, "  ❌ Invalid value %q (expected dark|light)\n", raw)
			allOK = false
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config:")
	fmt.Fprintf(w, "  Log level: %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "  Log format: %s\n", cfg.LogFormat)
	fmt.Fprintln(w)

	if !allOK {
		fmt.Fprintln(w, "Problems found.")
		return fmt.Errorf("doctor found problems")
	}
	fmt.Fprintln(w, "All checks passed.")
	return nil
}
