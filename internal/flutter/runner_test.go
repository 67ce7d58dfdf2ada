package flutter

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePlatforms(t *testing.T) {
	t.Run("known_platforms", func(t *testing.T) {
		if err := ValidatePlatforms([]string{"ios", "android", "web", "macos"}); err != nil {
			t.Errorf("ValidatePlatforms error: %v", err)
		}
	})

	t.Run("unknown_platform", func(t *testing.T) {
		err := ValidatePlatforms([]string{"ios", "playstation"})
		if !errors.Is(err, ErrUnknownPlatform) {
			t.Errorf("err = %v, want ErrUnknownPlatform", err)
		}
		if !strings.Contains(err.Error(), "playstation") {
			t.Errorf("error %q does not name the unknown platform", err)
		}
	})

	t.Run("empty_list", func(t *testing.T) {
		if err := ValidatePlatforms(nil); !errors.Is(err, ErrUnknownPlatform) {
			t.Errorf("err = %v, want ErrUnknownPlatform", err)
		}
	})
}

func TestCommandError(t *testing.T) {
	t.Run("matches_sentinel", func(t *testing.T) {
		err := &CommandError{Args: []string{"test"}, ExitCode: 1}
		if !errors.Is(err, ErrCommandFailed) {
			t.Error("CommandError does not match ErrCommandFailed")
		}
	})

	t.Run("message_includes_args_and_stderr", func(t *testing.T) {
		err := &CommandError{
			Args:     []string{"pub", "get"},
			ExitCode: 66,
			Stderr:   "Could not resolve dependencies.\n",
		}
		msg := err.Error()
		for _, want := range []string{"pub get", "66", "Could not resolve dependencies."} {
			if !strings.Contains(msg, want) {
				t.Errorf("message %q missing %q", msg, want)
			}
		}
	})
}
