package ui

import "testing"

func TestScreen_NextPrevWrap(t *testing.T) {
	cases := []struct {
		s          Screen
		next, prev Screen
	}{
		{Inventory, Pictures, Settings},
		{Pictures, Settings, Inventory},
		{Settings, Inventory, Pictures},
	}
	for _, tc := range cases {
		t.Run(tc.s.String(), func(t *testing.T) {
			if got := tc.s.Next(); got != tc.next {
				t.Errorf("Next = %s, want %s", got, tc.next)
			}
			if got := tc.s.Prev(); got != tc.prev {
				t.Errorf("Prev = %s, want %s", got, tc.prev)
			}
		})
	}
}

func TestParseScreen(t *testing.T) {
	cases := []struct {
		in      string
		want    Screen
		wantErr bool
	}{
		{"inventory", Inventory, false},
		{"Pictures", Pictures, false},
		{" SETTINGS ", Settings, false},
		{"1", Inventory, false},
		{"2", Pictures, false},
		{"3", Settings, false},
		{"4", Inventory, true},
		{"camera", Inventory, true},
		{"", Inventory, true},
	}
	for _, tc := range cases {
		got, err := ParseScreen(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseScreen(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseScreen(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestScreen_FlagValue(t *testing.T) {
	s := Pictures
	if err := s.Set("settings"); err != nil || s != Settings {
		t.Errorf("Set(settings) = %s, %v", s, err)
	}
	if err := s.Set("nope"); err == nil || s != Settings {
		t.Errorf("invalid Set should fail and keep value, got %s, %v", s, err)
	}
	if s.Type() != "screen" {
		t.Errorf("Type = %q", s.Type())
	}
	if Screen(7).String() != "Screen(7)" {
		t.Errorf("out of range String = %q", Screen(7).String())
	}
}
