package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errNotTerminal = errors.New("stdin is not a terminal")

// readPasswordNoEcho prints prompt and reads one line with terminal echo
// switched off. It returns errNotTerminal, without prompting, when stdin is a
// pipe or a file.
func readPasswordNoEcho(stdin *os.File, stdout io.Writer, prompt string) (string, error) {
	if stdin == nil {
		return "", errNotTerminal
	}

	restore, err := disableEcho(stdin)
	if err != nil {
		return "", err
	}
	defer restore()

	fmt.Fprint(stdout, prompt)
	defer fmt.Fprintln(stdout)
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
