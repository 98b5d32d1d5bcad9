package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/campusdesk/studentdir/internal/config"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// Generates the bcrypt hash expected in ADMIN_PASSWORD_HASH.
func main() {
	cfg := config.Load()

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Generate Admin Password Hash ===")

	fmt.Printf("Username [%s]: ", cfg.AdminUsername)
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		username = cfg.AdminUsername
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		os.Exit(1)
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		fmt.Printf("Error: hashing failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nAdd these to your environment or .env file:")
	fmt.Printf("ADMIN_USERNAME=%s\n", username)
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", string(hash))
}
