package common

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/howeyc/gopass"
)

func GetPassword(prompt string, show bool) (password string) {
	fmt.Print(prompt + " password: ")
	if show {
		reader := bufio.NewReader(os.Stdin)
		text, err := reader.ReadString('\n')
		Abort(err)
		password = strings.TrimSuffix(text, "\n")
	} else {
		pwd, _ := gopass.GetPasswdMasked()
		password = string(pwd)
	}
	return
}

// ReadPasswordFile returns the trimmed content of a password file.
// A relative path is taken relative to the executable folder
func ReadPasswordFile(path string) (string, error) {
	p, err := ioutil.ReadFile(DefaultToExecutable(path))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(p)), nil
}
