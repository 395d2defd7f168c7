// Command hashpassword reads a password from stdin and prints its bcrypt hash,
// for seeding the users table.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/SAP-F-2025/examprep-service/internal/auth"
)

func main() {
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		color.Red("failed to read password: %v", err)
		os.Exit(1)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		color.Red("password must not be empty")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		color.Red("failed to hash password: %v", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
