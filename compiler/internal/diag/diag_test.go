package diag

import (
	"strings"
	"testing"
)

func TestRendering(t *testing.T) {
	d := Errorf("main.astral", Pos{Line: 3, Col: 9}, "use of moved value '%s'", "s")
	d.Note = "value moved at line 2"
	d.Help = "consider borrowing with '&'"
	got := d.Error()
	want := "main.astral:3:9: error: use of moved value 's'\n" +
		"  note: value moved at line 2\n" +
		"  help: consider borrowing with '&'"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderingWithoutPos(t *testing.T) {
	d := Errorf("main.astral", Pos{}, "no 'main' function")
	if d.Error() != "main.astral: error: no 'main' function" {
		t.Fatalf("got %q", d.Error())
	}
}

func TestCatalogLookup(t *testing.T) {
	ce, ok := LookupCheck("use_of_moved_value")
	if !ok {
		t.Fatal("missing use_of_moved_value entry")
	}
	if ce.ID != "AOE0002" {
		t.Fatalf("got id %q", ce.ID)
	}
	if !strings.Contains(ce.Help, "borrowing") {
		t.Fatalf("got help %q", ce.Help)
	}

	if _, ok := Lookup("lexer", "unterminated_string"); !ok {
		t.Fatal("missing lexer entry")
	}
	if _, ok := Lookup("nope", "x"); ok {
		t.Fatal("unknown domain must not resolve")
	}
	if _, ok := Lookup("check", "no_such_code"); ok {
		t.Fatal("unknown key must not resolve")
	}
}
