package emit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DomasM/AutoConstructor/internal/autoconstructor"
)

func sampleConstructor(name string) *autoconstructor.Constructor {
	t := &autoconstructor.Type{Name: "int", Key: "System.Int32", Kind: autoconstructor.KindValue}
	return &autoconstructor.Constructor{
		Decl:          &autoconstructor.TypeDecl{Name: name, Namespace: "Test", Partial: true},
		Identity:      "Test." + name + ".g.cs",
		Type:          "Test." + name,
		Accessibility: "public",
		Params:        []autoconstructor.ConstructorParam{{Name: "t", Type: t}},
		Assignments:   []autoconstructor.Assignment{{Member: "_t", Value: "t", Parameter: "t"}},
	}
}

func TestWriteFiles(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "generated")
	constructors := []*autoconstructor.Constructor{sampleConstructor("A"), sampleConstructor("B")}

	paths, err := WriteFiles(dir, constructors)
	if err != nil {
		t.Fatalf("WriteFiles() error = %v", err)
	}

	want := []string{filepath.Join(dir, "Test.A.g.cs"), filepath.Join(dir, "Test.B.g.cs")}
	if len(paths) != len(want) {
		t.Fatalf("WriteFiles() paths = %v, want %v", paths, want)
	}
	for i, path := range paths {
		if path != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, path, want[i])
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", path, err)
		}
		if got := string(data); got != CSharp(constructors[i]) {
			t.Errorf("%s content mismatch:\n%s", path, got)
		}
	}
}

func TestWriteFiles_Empty(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteFiles(dir, nil)
	if err != nil {
		t.Fatalf("WriteFiles() error = %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("WriteFiles() paths = %v, want none", paths)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("output directory was not created: %v", err)
	}
}

func TestWriteFiles_InvalidDir(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteFiles(file, []*autoconstructor.Constructor{sampleConstructor("A")}); err == nil {
		t.Error("WriteFiles() into a regular file should fail")
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	report := &autoconstructor.Report{
		Constructors: []*autoconstructor.Constructor{sampleConstructor("A")},
		Diagnostics: []autoconstructor.Diagnostic{{
			ID:       autoconstructor.DiagTypeWithoutPartial,
			Severity: autoconstructor.SeverityError,
			Type:     "Test.B",
			Message:  "type B must be partial to receive a generated constructor",
		}},
	}
	if err := WriteJSON(&buf, report); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	if !strings.HasPrefix(buf.String(), "{\n  \"constructors\"") {
		t.Errorf("WriteJSON() is not indented:\n%s", buf.String())
	}

	var decoded struct {
		Constructors []struct {
			Identity string `json:"identity"`
			Params   []struct {
				Name string `json:"name"`
				Type string `json:"type"`
			} `json:"params"`
		} `json:"constructors"`
		Diagnostics []struct {
			ID       string `json:"id"`
			Severity string `json:"severity"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(decoded.Constructors) != 1 || decoded.Constructors[0].Identity != "Test.A.g.cs" {
		t.Errorf("constructors = %+v", decoded.Constructors)
	}
	if p := decoded.Constructors[0].Params; len(p) != 1 || p[0].Type != "int" {
		t.Errorf("params = %+v, want the type rendered as text", p)
	}
	if d := decoded.Diagnostics; len(d) != 1 || d[0].ID != "ACTR001" || d[0].Severity != "error" {
		t.Errorf("diagnostics = %+v", d)
	}
}
