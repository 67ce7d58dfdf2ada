package appname

import (
	"errors"
	"strings"
	"testing"
)

func TestIsValid(t *testing.T) {
	valid := []string{
		"myapp",
		"sample_app",
		"a",
		"app2",
		"my_app_2024",
		"x_y_z",
	}
	for _, name := range valid {
		if !IsValid(name) {
			t.Errorf("IsValid(%q) = false, want true", name)
		}
	}

	invalid := []string{
		"",
		"MyApp",
		"2app",
		"_app",
		"my-app",
		"my app",
		"app!",
		"myApp",
		"com.example.app",
	}
	for _, name := range invalid {
		if IsValid(name) {
			t.Errorf("IsValid(%q) = true, want false", name)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid_name", func(t *testing.T) {
		if err := Validate("sample_app"); err != nil {
			t.Errorf("Validate(sample_app) = %v, want nil", err)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		err := Validate("")
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("Validate(\"\") = %v, want ErrInvalidName", err)
		}
	})

	t.Run("uppercase_name", func(t *testing.T) {
		err := Validate("MyApp")
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("Validate(MyApp) = %v, want ErrInvalidName", err)
		}
	})

	t.Run("diagnostic_includes_name", func(t *testing.T) {
		err := Validate("bad-name")
		if err == nil {
			t.Fatal("expected error for bad-name")
		}
		if got := err.Error(); !strings.Contains(got, "bad-name") {
			t.Errorf("error %q does not mention the rejected name", got)
		}
	})
}

func TestDisplay(t *testing.T) {
	cases := map[string]string{
		"myapp":       "Myapp",
		"sample_app":  "Sample App",
		"my_app_2024": "My App 2024",
	}
	for in, want := range cases {
		if got := Display(in); got != want {
			t.Errorf("Display(%q) = %q, want %q", in, got, want)
		}
	}
}
