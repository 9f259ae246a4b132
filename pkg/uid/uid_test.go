package uid

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		prefix string
		year   int
		seq    int64
		want   string
	}{
		{PrefixPatient, 2025, 1, "PAT-2025-01"},
		{PrefixPatient, 2025, 9, "PAT-2025-09"},
		{PrefixPatient, 2025, 42, "PAT-2025-42"},
		{PrefixPatient, 2025, 99, "PAT-2025-99"},
		{PrefixPatient, 2025, 100, "PAT-2025-100"},
		{PrefixPatient, 2026, 1437, "PAT-2026-1437"},
		{PrefixVisit, 2025, 14, "VISIT-2025-14"},
	}

	for _, c := range cases {
		if got := Format(c.prefix, c.year, c.seq); got != c.want {
			t.Errorf("Format(%s, %d, %d) = %q, want %q", c.prefix, c.year, c.seq, got, c.want)
		}
	}
}
