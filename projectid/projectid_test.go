package projectid

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		id, want string
	}{
		{"Baz_123", "Baz"},
		{"FooBar_666", "FooBar"},
		{"Project_1111", "Project"},
		{"Baz", "Baz"},
		{"Baz_", "Baz_"},
		{"Baz_12a", "Baz_12a"},
		{"Trial2_42", "Trial2"},
		{"Trial_2_42", "Trial_2"},
		{"_42", ""},
		{"", ""},
	}
	for _, test := range tests {
		expect.EQ(t, Strip(test.id), test.want, "id %q", test.id)
	}
}

func TestSuffix(t *testing.T) {
	expect.EQ(t, Suffix("Baz_123", "Baz"), "123")
	expect.EQ(t, Suffix("Project_1111", Strip("Project_1111")), "1111")
	// No suffix at all.
	expect.EQ(t, Suffix("Baz", "Baz"), "")
	// name is not a prefix of id.
	expect.EQ(t, Suffix("Baz_123", "Qux"), "Baz_123")
}

func TestRoundTrip(t *testing.T) {
	for _, id := range []string{"Baz_123", "FooBar_666", "Project_1111", "a_b_c_0", "Trial2_42"} {
		name := Strip(id)
		suffix := Suffix(id, name)
		expect.EQ(t, Strip(suffix), suffix)
		expect.EQ(t, Join(name, suffix), id)
	}
}

func TestSplit(t *testing.T) {
	name, suffix, ok := Split("Trojecp_666")
	expect.EQ(t, name, "Trojecp")
	expect.EQ(t, suffix, "666")
	expect.True(t, ok)

	name, suffix, ok = Split("Baz")
	expect.EQ(t, name, "Baz")
	expect.EQ(t, suffix, "")
	expect.False(t, ok)
	expect.EQ(t, Join(name, suffix), "Baz")
}
