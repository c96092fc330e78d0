package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"patternflow/internal/catalog"
	"patternflow/internal/config"
	"patternflow/internal/ux"
)

// setupGlobals resets the flag variables and installs a default config.
func setupGlobals(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	themeFlag, langFlag, patternFlag = "", "", ""
	listCategory = ""
	showSection, showRawDiagram, showColor = "all", false, false
	siteOutput = ""
	configForce = false
}

func TestRunListAll(t *testing.T) {
	setupGlobals(t)

	output := captureOutput(t, func() {
		if err := runList(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runList returned error: %v", err)
		}
	})

	for _, want := range []string{"CREATIONAL (5)", "STRUCTURAL (7)", "BEHAVIORAL (11)", "* abstract-factory", "visitor"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
	if strings.Index(output, "CREATIONAL") > strings.Index(output, "BEHAVIORAL") {
		t.Error("categories should appear in catalog order")
	}
}

func TestRunListCategory(t *testing.T) {
	setupGlobals(t)
	listCategory = "structural"

	output := captureOutput(t, func() {
		if err := runList(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runList returned error: %v", err)
		}
	})
	if !strings.Contains(output, "adapter") || strings.Contains(output, "CREATIONAL") {
		t.Fatalf("expected only structural patterns, got:\n%s", output)
	}

	listCategory = "architectural"
	if err := runList(&cobra.Command{}, nil); !errors.Is(err, catalog.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestRunShowCode(t *testing.T) {
	setupGlobals(t)
	cfg.UI.DefaultLanguage = "java"
	showSection = "code"

	output := captureOutput(t, func() {
		if err := runShow(&cobra.Command{}, []string{"singleton"}); err != nil {
			t.Fatalf("runShow returned error: %v", err)
		}
	})
	if !strings.Contains(output, "Code (Java)") {
		t.Errorf("expected java code heading, got:\n%s", output)
	}
	if strings.Contains(output, "Participants") {
		t.Error("code section should not print roles")
	}
}

func TestRunShowDiagram(t *testing.T) {
	setupGlobals(t)
	showSection = "diagram"

	drawn := captureOutput(t, func() {
		if err := runShow(&cobra.Command{}, []string{"abstract-factory"}); err != nil {
			t.Fatalf("runShow returned error: %v", err)
		}
	})
	if !strings.Contains(drawn, "FurnitureFactory") || strings.Contains(drawn, "classDiagram") {
		t.Errorf("expected a drawn diagram, got:\n%s", drawn)
	}

	showRawDiagram = true
	raw := captureOutput(t, func() {
		if err := runShow(&cobra.Command{}, []string{"abstract-factory"}); err != nil {
			t.Fatalf("runShow returned error: %v", err)
		}
	})
	if !strings.Contains(raw, "classDiagram") {
		t.Errorf("expected mermaid source, got:\n%s", raw)
	}
}

func TestRunShowAll(t *testing.T) {
	setupGlobals(t)

	output := captureOutput(t, func() {
		if err := runShow(&cobra.Command{}, []string{"observer"}); err != nil {
			t.Fatalf("runShow returned error: %v", err)
		}
	})
	for _, want := range []string{"Observer  [Behavioral]", "Structure", "Participants", "Code (Python)"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestRunShowErrors(t *testing.T) {
	setupGlobals(t)

	if err := runShow(&cobra.Command{}, []string{"monad"}); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	showSection = "footer"
	if err := runShow(&cobra.Command{}, []string{"observer"}); err == nil {
		t.Error("expected error for unknown section")
	}
}

func TestRunSite(t *testing.T) {
	setupGlobals(t)
	siteOutput = filepath.Join(t.TempDir(), "public")

	output := captureOutput(t, func() {
		if err := runSite(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runSite returned error: %v", err)
		}
	})
	if !strings.Contains(output, "Wrote 24 pages") {
		t.Errorf("unexpected output: %s", output)
	}
	if _, err := os.Stat(filepath.Join(siteOutput, "index.html")); err != nil {
		t.Errorf("index.html missing: %v", err)
	}
}

func TestRunConfigInit(t *testing.T) {
	setupGlobals(t)

	output := captureOutput(t, func() {
		if err := runConfigInit(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runConfigInit returned error: %v", err)
		}
	})
	if !strings.Contains(output, "Wrote default config") {
		t.Fatalf("unexpected output: %s", output)
	}

	output = captureOutput(t, func() {
		if err := runConfigInit(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runConfigInit returned error: %v", err)
		}
	})
	if !strings.Contains(output, "already exists") {
		t.Fatalf("expected refusal without --force, got: %s", output)
	}

	configForce = true
	output = captureOutput(t, func() {
		if err := runConfigInit(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runConfigInit returned error: %v", err)
		}
	})
	if !strings.Contains(output, "Wrote default config") {
		t.Fatalf("expected overwrite with --force, got: %s", output)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if loaded.UI.Theme != "auto" {
		t.Errorf("theme = %q, want auto", loaded.UI.Theme)
	}
}

func TestRunConfigShow(t *testing.T) {
	setupGlobals(t)

	output := captureOutput(t, func() {
		if err := runConfigShow(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runConfigShow returned error: %v", err)
		}
	})
	if !strings.Contains(output, "theme: auto") || !strings.Contains(output, "style_dark: monokai") {
		t.Errorf("unexpected config dump:\n%s", output)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	setupGlobals(t)
	themeFlag = "dark"
	patternFlag = "proxy"

	if err := loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.UI.Theme != "dark" || cfg.UI.DefaultPattern != "proxy" {
		t.Errorf("flags not applied: %+v", cfg.UI)
	}

	cat, idx, err := loadCatalog()
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	if got := newController(cat, idx, nil).State().CurrentID; got != "proxy" {
		t.Errorf("controller starts at %q, want proxy", got)
	}

	prefs := ux.NewPreferencesManager(t.TempDir())
	prefs.RecordSession("visitor", catalog.Java)
	cfg.UI.DefaultPattern = ""
	st := newController(cat, idx, prefs).State()
	if st.CurrentID != "visitor" || st.Language != catalog.Java {
		t.Errorf("expected resumed selection, got %+v", st)
	}

	themeFlag = "sepia"
	if err := loadConfig(); err == nil {
		t.Error("expected invalid theme to be rejected")
	}
}

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origOut := os.Stdout
	origErr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rOut)
		_, _ = io.Copy(&buf, rErr)
		done <- buf.String()
	}()

	fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = origOut
	os.Stderr = origErr
	return <-done
}
