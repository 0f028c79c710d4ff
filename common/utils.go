package common

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// EnvFlag interprets the value of an opt-in environment variable.
// Empty is false, anything strconv.ParseBool understands is taken as is,
// any other non-empty value is true
func EnvFlag(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return true
	}
	return b
}

// PromptForInput prompts on stdin and reads a line. Empty string is returned on error
func PromptForInput(prompt string) string {
	fmt.Println(prompt)
	reader := bufio.NewReader(os.Stdin)
	text, _ := reader.ReadString('\n')
	return strings.TrimSpace(text)
}

func Yes(prompt string) bool {
	text := PromptForInput(prompt + "?[y/n]:")
	return text != "" && (text[0] == 'y' || text[0] == 'Y')
}

// Abort does nothing if err is nil, otherwise logs the error and exits
func Abort(err error) {
	if err != nil {
		msg := strings.TrimLeft(err.Error(), " ")
		if !loggingInitialized() {
			fmt.Println(msg)
		} else {
			msg = strings.TrimPrefix(msg, "Error")
			msg = strings.TrimPrefix(msg, "error")
			LogError.Println(msg)
		}
		os.Exit(1)
	}
}

func AbortWithString(msg string) {
	Abort(errors.New(msg))
}

func InvalidArgs(msg string) {
	Abort(fmt.Errorf("%s. Type --help", msg))
}
