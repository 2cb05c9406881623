package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terraincognita07/fitcoach/internal/services"
)

type recordingResetter struct {
	users    map[string]bool
	username string
	password string
	err      error
}

func (resetter *recordingResetter) ResetPassword(_ context.Context, username string, password string) error {
	if resetter.err != nil {
		return resetter.err
	}
	if !resetter.users[username] {
		return services.ErrUserNotFound
	}
	resetter.username = username
	resetter.password = password
	return nil
}

func fileStdin(t *testing.T, content string) *os.File {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stdin.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write stdin file: %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open stdin file: %v", err)
	}
	t.Cleanup(func() {
		_ = file.Close()
	})
	return file
}

func TestResetPasswordGeneratesTemporaryPasswordWithoutTerminal(t *testing.T) {
	t.Parallel()

	resetter := &recordingResetter{users: map[string]bool{"ana": true}}
	var output bytes.Buffer

	err := RunResetPasswordCommand(context.Background(), resetter, "  ana ", fileStdin(t, "typed-but-ignored\n"), &output)
	if err != nil {
		t.Fatalf("RunResetPasswordCommand() unexpected error: %v", err)
	}
	if resetter.username != "ana" {
		t.Fatalf("expected normalized username, got %q", resetter.username)
	}
	if len(resetter.password) != 16 || resetter.password == "typed-but-ignored" {
		t.Fatalf("expected generated 16-char password, got %q", resetter.password)
	}
	if !strings.Contains(output.String(), "Temporary password: "+resetter.password) {
		t.Fatalf("expected temporary password in output, got %q", output.String())
	}
	if strings.Contains(output.String(), "New password") {
		t.Fatalf("did not expect a prompt without a terminal, got %q", output.String())
	}
}

func TestResetPasswordNilStdin(t *testing.T) {
	t.Parallel()

	resetter := &recordingResetter{users: map[string]bool{"ben": true}}
	var output bytes.Buffer
	if err := RunResetPasswordCommand(context.Background(), resetter, "ben", nil, &output); err != nil {
		t.Fatalf("RunResetPasswordCommand() unexpected error: %v", err)
	}
	if resetter.password == "" {
		t.Fatal("expected a generated password")
	}
}

func TestResetPasswordErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		resetter *recordingResetter
		want     string
	}{
		{name: "empty username", username: "   ", resetter: &recordingResetter{}, want: "username is required"},
		{name: "unknown user", username: "ghost", resetter: &recordingResetter{users: map[string]bool{}}, want: "user ghost not found"},
		{name: "storage failure", username: "ana", resetter: &recordingResetter{err: errors.New("disk full")}, want: "update user password: disk full"},
	}

	for _, testCase := range tests {
		var output bytes.Buffer
		err := RunResetPasswordCommand(context.Background(), testCase.resetter, testCase.username, nil, &output)
		if err == nil || err.Error() != testCase.want {
			t.Fatalf("%s: error = %v, want %q", testCase.name, err, testCase.want)
		}
	}
}
