package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "liftlog.db")

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save("k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: data survives and migrations do not rerun destructively.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, ok, err := s2.Load("k")
	if err != nil || !ok || string(v) != "v" {
		t.Fatalf("reopened Load = %q, %v, %v", v, ok, err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "liftlog.db" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Key-value records
// ============================================================

func testKV(t *testing.T, kv KV) {
	t.Helper()

	if _, ok, err := kv.Load("missing"); err != nil || ok {
		t.Fatalf("Load(missing) ok=%v err=%v", ok, err)
	}

	if err := kv.Save("rec", []byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	v, ok, err := kv.Load("rec")
	if err != nil || !ok {
		t.Fatalf("Load(rec) ok=%v err=%v", ok, err)
	}
	if string(v) != `{"a":1}` {
		t.Fatalf("Load(rec) = %s", v)
	}

	if err := kv.Save("rec", []byte(`{"a":2}`)); err != nil {
		t.Fatal(err)
	}
	v, _, _ = kv.Load("rec")
	if string(v) != `{"a":2}` {
		t.Fatalf("overwrite failed, got %s", v)
	}

	if err := kv.Delete("rec"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := kv.Load("rec"); ok {
		t.Fatal("record should be gone after Delete")
	}

	// Deleting a missing key is not an error.
	if err := kv.Delete("rec"); err != nil {
		t.Fatal(err)
	}
}

func TestSQLiteKV(t *testing.T) {
	testKV(t, newTestStore(t))
}

func TestMemoryKV(t *testing.T) {
	testKV(t, NewMemoryKV())
}

func TestMemoryKVCopiesValues(t *testing.T) {
	m := NewMemoryKV()
	buf := []byte("abc")
	m.Save("k", buf)
	buf[0] = 'x'

	v, _, _ := m.Load("k")
	if string(v) != "abc" {
		t.Fatalf("stored value aliased caller buffer: %s", v)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)

	defaults := map[string]string{
		SettingBarWeight:  "45",
		SettingWeightUnit: "lb",
		SettingChime:      "on",
	}

	for k, expected := range defaults {
		val, err := s.GetSetting(k)
		if err != nil {
			t.Fatalf("GetSetting(%q): %v", k, err)
		}
		if val != expected {
			t.Fatalf("GetSetting(%q) = %q, want %q", k, val, expected)
		}
	}
}

func TestSetSettingOverwrite(t *testing.T) {
	s := newTestStore(t)

	s.SetSetting("key", "v1")
	s.SetSetting("key", "v2")
	val, _ := s.GetSetting("key")
	if val != "v2" {
		t.Fatalf("expected v2, got %s", val)
	}
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetSetting("nonexistent"); err == nil {
		t.Fatal("expected error for missing setting")
	}
	if got := s.SettingOr("nonexistent", "fb"); got != "fb" {
		t.Fatalf("SettingOr = %q, want fb", got)
	}
}

func TestGetAllSettingsSorted(t *testing.T) {
	s := newTestStore(t)
	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 default settings, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key > all[i].Key {
			t.Fatalf("settings not sorted: %q before %q", all[i-1].Key, all[i].Key)
		}
	}
}

func TestTypedSettings(t *testing.T) {
	s := newTestStore(t)

	if s.BarWeight() != 45 {
		t.Fatalf("BarWeight = %v, want 45", s.BarWeight())
	}
	s.SetSetting(SettingBarWeight, "20")
	if s.BarWeight() != 20 {
		t.Fatalf("BarWeight = %v, want 20", s.BarWeight())
	}
	s.SetSetting(SettingBarWeight, "heavy")
	if s.BarWeight() != 45 {
		t.Fatalf("invalid bar weight should fall back, got %v", s.BarWeight())
	}

	if !s.ChimeEnabled() {
		t.Fatal("chime should default on")
	}
	s.SetSetting(SettingChime, "off")
	if s.ChimeEnabled() {
		t.Fatal("chime should be off")
	}

	if s.WeightUnit() != "lb" {
		t.Fatalf("WeightUnit = %q", s.WeightUnit())
	}
}

func TestCloseStore(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Load("k"); err == nil {
		t.Fatal("expected error after close")
	}
}
