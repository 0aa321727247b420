package models

import "testing"

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Fatalf("expected %q to be valid", c)
		}
	}
	for _, c := range []Category{"", "today", "Someday", "Completed "} {
		if c.Valid() {
			t.Fatalf("expected %q to be invalid", c)
		}
	}
}
