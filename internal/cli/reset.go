package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/fitcoach/internal/security"
	"github.com/terraincognita07/fitcoach/internal/services"
)

type PasswordResetter interface {
	ResetPassword(ctx context.Context, username string, password string) error
}

// RunResetPasswordCommand sets a new password for username. On a terminal the
// operator may type one; otherwise, or when the line is left empty, a
// temporary password is generated and printed.
func RunResetPasswordCommand(ctx context.Context, resetter PasswordResetter, username string, stdin *os.File, stdout io.Writer) error {
	username = services.NormalizeUsername(username)
	if username == "" {
		return errors.New("username is required")
	}

	password, generated, err := choosePassword(stdin, stdout)
	if err != nil {
		return err
	}
	if !generated {
		if err := services.ValidatePasswordStrength(password); err != nil {
			return errors.New("password must be at least 8 characters and contain a letter and a digit")
		}
	}

	if err := resetter.ResetPassword(ctx, username, password); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found", username)
		}
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintln(stdout, "Password reset successful")
	if generated {
		fmt.Fprintf(stdout, "Temporary password: %s\n", password)
	}
	return nil
}

func choosePassword(stdin *os.File, stdout io.Writer) (string, bool, error) {
	typed, err := readPasswordNoEcho(stdin, stdout, "New password (leave empty to generate one): ")
	switch {
	case err == nil && typed != "":
		return typed, false, nil
	case err != nil && !errors.Is(err, errNotTerminal):
		return "", false, fmt.Errorf("read password: %w", err)
	}

	temporary, err := security.TemporaryPassword()
	if err != nil {
		return "", false, fmt.Errorf("generate temporary password: %w", err)
	}
	return temporary, true, nil
}
