package cmd

import "testing"

func TestNewApp(t *testing.T) {
	app := NewApp()
	if app.Name != "linewatch" {
		t.Errorf("app name = %q, want linewatch", app.Name)
	}

	want := map[string]bool{"check": false, "version": false}
	for _, c := range app.Commands {
		if _, ok := want[c.Name]; ok {
			want[c.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
