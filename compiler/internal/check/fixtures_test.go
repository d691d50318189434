package check

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/astral-lang/astral/compiler/internal/parser"
)

// fixtureCase is one entry of a testdata/*.yaml suite. Error is a fragment
// the diagnostic must contain; an empty Error means the program must pass.
type fixtureCase struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Error  string `yaml:"error"`
}

type fixtureSuite struct {
	Cases []fixtureCase `yaml:"cases"`
}

func loadSuite(t *testing.T, path string) fixtureSuite {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	var suite fixtureSuite
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&suite); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return suite
}

func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixture suites under testdata/")
	}
	for _, path := range paths {
		suite := loadSuite(t, path)
		for _, tc := range suite.Cases {
			t.Run(filepath.Base(path)+"/"+tc.Name, func(t *testing.T) {
				f, err := parser.New(tc.Name+".astral", tc.Source).ParseFile()
				if err != nil {
					t.Fatalf("parse: %v", err)
				}
				got := File(tc.Name+".astral", f)
				if tc.Error == "" {
					if got != nil {
						t.Fatalf("expected pass, got:\n%s", got)
					}
					return
				}
				if got == nil {
					t.Fatalf("expected error containing %q, got nil", tc.Error)
				}
				if !strings.Contains(got.Error(), tc.Error) {
					t.Fatalf("expected error containing %q, got:\n%s", tc.Error, got)
				}
			})
		}
	}
}
