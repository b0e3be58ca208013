package telegram

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// terminalAuth prompts for phone, login code and 2FA password on the
// terminal. Sign-up of new accounts is deliberately unsupported.
type terminalAuth struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalAuth() terminalAuth {
	return terminalAuth{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
}

func (a terminalAuth) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a terminalAuth) Phone(_ context.Context) (string, error) {
	return a.prompt("Phone number (international format): ")
}

func (a terminalAuth) Code(_ context.Context, _ *tg.AuthSentCode) (string, error) {
	return a.prompt("Login code: ")
}

func (a terminalAuth) Password(_ context.Context) (string, error) {
	return a.prompt("2FA password: ")
}

func (a terminalAuth) AcceptTermsOfService(_ context.Context, _ tg.HelpTermsOfService) error {
	return nil
}

func (a terminalAuth) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.New("signing up new accounts is not supported")
}
