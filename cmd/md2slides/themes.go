package main

import (
	"encoding/json"
	"fmt"
	"io"

	md2slides "github.com/alnah/go-md2slides"
)

// runThemesCmd lists the built-in themes and those of the theme set.
// The theme set comes from --theme-set, then MD2SLIDES_THEME_SET, then the
// config file.
func runThemesCmd(args []string, env *Environment) error {
	flags, err := parseThemesFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg, err := loadEnvConfig(env.environ())
	if err != nil {
		return err
	}
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	themeSet := cfg.Render.ThemeSet
	if flags.themeSet != "" {
		themeSet = flags.themeSet
	}

	themes, err := md2slides.ListThemes(themeSet)
	if err != nil {
		return err
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(themes)
	}
	printThemes(env.Stdout, themes)
	return nil
}

func printThemes(w io.Writer, themes []md2slides.Theme) {
	for _, t := range themes {
		fmt.Fprintf(w, "%-16s %s\n", t.Name, t.Description())
	}
}
