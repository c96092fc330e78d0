package ux

import (
	"os"
	"path/filepath"
	"testing"

	"patternflow/internal/catalog"
)

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	if prefs.Version != PreferencesVersion {
		t.Fatalf("unexpected preferences version: %s", prefs.Version)
	}
	if prefs.LastPattern != "" || prefs.Sessions != 0 {
		t.Fatalf("first run should have no history: %+v", prefs)
	}
}

func TestPreferencesManagerLoadSave(t *testing.T) {
	dir := t.TempDir()
	pm := NewPreferencesManager(dir)
	if err := pm.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	pm.RecordSession("observer", catalog.Java)
	if err := pm.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	pm2 := NewPreferencesManager(dir)
	if err := pm2.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got := pm2.Get()
	if got.LastPattern != "observer" || got.LastLanguage != "java" || got.Sessions != 1 {
		t.Fatalf("preferences not persisted: %+v", got)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "preferences.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := NewPreferencesManager(dir).Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResumeDropsUnknownValues(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}

	pm := NewPreferencesManager(t.TempDir())
	pm.RecordSession("builder", catalog.JavaScript)
	id, lang := pm.Resume(cat)
	if id != "builder" || lang != catalog.JavaScript {
		t.Fatalf("Resume = %q, %q", id, lang)
	}

	pm.RecordSession("monostate", catalog.Language("cobol"))
	id, lang = pm.Resume(cat)
	if id != "" || lang != "" {
		t.Fatalf("unknown values should be dropped, got %q, %q", id, lang)
	}
}
