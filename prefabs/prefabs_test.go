package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.NRGBA
		rgb     uint32
		wantErr bool
	}{
		{"rgb", `"#88ffff"`, color.NRGBA{R: 0x88, G: 0xff, B: 0xff, A: 0xff}, 0x88ffff, false},
		{"rgba", `"#10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, 0x102030, false},
		{"no_hash", `"000000"`, color.NRGBA{A: 0xff}, 0, false},
		{"short", `"#fff"`, color.NRGBA{}, 0, true},
		{"not_hex", `"#zz0000"`, color.NRGBA{}, 0, true},
		{"not_scalar", `[1, 2]`, color.NRGBA{}, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.in), &c)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := c.NRGBA(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if got := c.RGB(); got != tc.rgb {
				t.Fatalf("expected rgb %06x, got %06x", tc.rgb, got)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"player.yaml", "player.yaml"},
		{filepath.Join("prefabs", "camera.yaml"), "camera.yaml"},
		{filepath.Join("/tmp", "x", "materials.yaml"), "materials.yaml"},
	}
	for _, tc := range tests {
		if got := Name(tc.in); got != tc.want {
			t.Fatalf("Name(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func withDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })
	return dir
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := withDir(t)

	embedded, err := Load("camera.yaml")
	if err != nil {
		t.Fatalf("embedded camera.yaml: %v", err)
	}
	if _, ok := ModTime("camera.yaml"); ok {
		t.Fatalf("ModTime should report false without a disk copy")
	}

	override := []byte("name: camera\ncomponents:\n  camera_tag: {}\n")
	if err := os.WriteFile(filepath.Join(dir, "camera.yaml"), override, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load("prefabs/camera.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(override) {
		t.Fatalf("expected disk override, got %q", got)
	}
	if string(got) == string(embedded) {
		t.Fatalf("override matched embedded copy")
	}
	if _, ok := ModTime("camera.yaml"); !ok {
		t.Fatalf("ModTime should report the disk copy")
	}

	if _, err := Load("missing.yaml"); err == nil {
		t.Fatalf("expected error for unknown prefab")
	}
}

func TestEmbeddedPrefabs(t *testing.T) {
	withDir(t)

	tests := []struct {
		file string
		want []string
	}{
		{"player.yaml", []string{"player_tag", "player_params", "abilities", "physics_body", "animation"}},
		{"camera.yaml", []string{"camera_tag", "camera", "camera_params", "camera_state"}},
		{"materials.yaml", []string{"material_library"}},
	}
	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(tc.file)
			if err != nil {
				t.Fatal(err)
			}
			for _, name := range tc.want {
				if _, ok := spec.Components[name]; !ok {
					t.Fatalf("%s: missing component %q", tc.file, name)
				}
			}
		})
	}
}

func TestDecodePartialSpec(t *testing.T) {
	var raw any
	if err := yaml.Unmarshal([]byte("gravity: 1200\ncoyote_time_ms: 80\n"), &raw); err != nil {
		t.Fatal(err)
	}
	spec, err := DecodeComponentSpec[PlayerParamsComponentSpec](raw)
	if err != nil {
		t.Fatal(err)
	}
	if spec.Gravity == nil || *spec.Gravity != 1200 {
		t.Fatalf("expected gravity 1200, got %v", spec.Gravity)
	}
	if spec.MoveSpeed != nil {
		t.Fatalf("unset field should stay nil, got %v", *spec.MoveSpeed)
	}

	empty, err := DecodeComponentSpec[PlayerParamsComponentSpec](nil)
	if err != nil || empty.Gravity != nil {
		t.Fatalf("nil raw should decode to zero spec, got %+v err=%v", empty, err)
	}
}

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "player.yaml")
	if err := os.WriteFile(target, []byte("name: player\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-w.Events:
		if Name(path) != "player.yaml" {
			t.Fatalf("unexpected event for %s", path)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no event for %s", target)
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("Events should be closed")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}
}

func TestWatcherReportsBurstOnceAfterItSettles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	target := filepath.Join(dir, "camera.yaml")
	final := []byte("name: camera\ncomponents:\n  camera_tag: {}\n")
	for i := 0; i < 5; i++ {
		body := []byte("name: camera\n")
		if i == 4 {
			body = final
		}
		if err := os.WriteFile(target, body, 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(settle / 10)
	}

	select {
	case path := <-w.Events:
		if Name(path) != "camera.yaml" {
			t.Fatalf("unexpected event for %s", path)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != string(final) {
			t.Fatalf("reported before the last write landed, read %q", got)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no event for %s", target)
	}

	select {
	case path := <-w.Events:
		t.Fatalf("burst reported twice, extra event for %s", path)
	case <-time.After(3 * settle):
	}
}
