package contact

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSplitGroupSurname(t *testing.T) {
	tests := []struct {
		name     string
		combined string
		group    string
		surname  string
	}{
		{"group and surname", "ПМ-35 ПОНОМАРЕВ", "ПМ-35", "ПОНОМАРЕВ"},
		{"no space means surname only", "ONLYNAME", "", "ONLYNAME"},
		{"empty token", "", "", ""},
		{"extra spaces between parts", "ПМ-35   Петров", "ПМ-35", "Петров"},
		{"leading space means empty group", " Иванов", "", "Иванов"},
		{"trailing space means empty surname", "ПМ-35 ", "ПМ-35", ""},
		{"only spaces", "   ", "", ""},
		{"surname with inner spaces kept", "ПМ-35 ван дер Берг", "ПМ-35", "ван дер Берг"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group, surname := SplitGroupSurname(tt.combined)
			if group != tt.group || surname != tt.surname {
				t.Errorf("SplitGroupSurname(%q) = (%q, %q), want (%q, %q)",
					tt.combined, group, surname, tt.group, tt.surname)
			}
		})
	}
}

func TestHeader_HasNumColumns(t *testing.T) {
	if got := len(strings.Split(Header, ",")); got != NumColumns {
		t.Errorf("header has %d columns, want %d", got, NumColumns)
	}
}

func TestMapper_Map(t *testing.T) {
	m := &Mapper{Label: "MyGroup"}
	in := []string{"x", "Lector", "Ivan", "ПМ-35 Petrov", "login@x.com", "created@x.com", "+79991234567"}

	out, err := m.Map(in)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if len(out) != NumColumns {
		t.Fatalf("Map() returned %d columns, want %d", len(out), NumColumns)
	}

	want := make([]string, NumColumns)
	want[OutFirstName] = "Ivan"
	want[OutLastName] = "ПМ-35 Petrov"
	want[OutLabels] = "MyGroup"
	want[OutEmail1Value] = "created@x.com"
	want[OutEmail2Value] = "login@x.com"
	want[OutPhone1Value] = "+79991234567"

	if !reflect.DeepEqual(out, want) {
		t.Errorf("Map() = %#v, want %#v", out, want)
	}
}

func TestMapper_Map_GroupMissing(t *testing.T) {
	m := &Mapper{}
	in := []string{"ts", "role", "Anna", "Smirnova", "a@b.c", "d@e.f", "+7000"}

	out, err := m.Map(in)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	// No group prefix: surname lands in last name without a joining space.
	if out[OutLastName] != "Smirnova" {
		t.Errorf("last name = %q, want %q", out[OutLastName], "Smirnova")
	}
	if out[OutLabels] != "" {
		t.Errorf("labels = %q, want empty", out[OutLabels])
	}
}

func TestMapper_Map_TooFewColumns(t *testing.T) {
	m := &Mapper{Label: "g"}
	_, err := m.Map([]string{"a", "b", "c", "d", "e"})
	if !errors.Is(err, ErrTooFewColumns) {
		t.Fatalf("Map(short row) error = %v, want ErrTooFewColumns", err)
	}
}

func TestMapper_Map_ExtraColumnsIgnored(t *testing.T) {
	m := &Mapper{}
	in := []string{"ts", "role", "A", "G S", "l@x", "c@x", "+7", "extra", "more"}
	out, err := m.Map(in)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if out[OutPhone1Value] != "+7" {
		t.Errorf("phone = %q, want %q", out[OutPhone1Value], "+7")
	}
}

func TestMapper_Map_ValuesNotValidated(t *testing.T) {
	// Email and phone pass through untouched, escaping is the codec's job.
	m := &Mapper{}
	in := []string{"", "", "", "", "not-an-email", `we"ird`, "letters"}
	out, err := m.Map(in)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if out[OutEmail1Value] != `we"ird` {
		t.Errorf("e-mail 1 = %q, want %q", out[OutEmail1Value], `we"ird`)
	}
	if out[OutEmail2Value] != "not-an-email" {
		t.Errorf("e-mail 2 = %q, want %q", out[OutEmail2Value], "not-an-email")
	}
	if out[OutPhone1Value] != "letters" {
		t.Errorf("phone = %q, want %q", out[OutPhone1Value], "letters")
	}
}
