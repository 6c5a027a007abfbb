// Command cli is a small operator client for the authentication service.
// It drives register, authenticate, activate, and validate against the
// HTTP API, reading passwords without echo.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/term"
)

func main() {

	addr := flag.String("a", "http://localhost:8080", "authentication service base URL")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("usage: cli [-a url] register|authenticate|activate <key>|validate <jwt>")
		return
	}

	var err error
	switch flag.Arg(0) {
	case "register":
		err = register(*addr)
	case "authenticate":
		err = authenticate(*addr)
	case "activate":
		err = get(*addr + "/api/v1/auth/activate?activationCode=" + flag.Arg(1))
	case "validate":
		err = get(*addr + "/api/v1/auth/validate/" + flag.Arg(1))
	default:
		err = fmt.Errorf("unknown command: %s", flag.Arg(0))
	}

	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func register(addr string) error {
	reader := bufio.NewReader(os.Stdin)

	email, err := prompt(reader, "Enter email")
	if err != nil {
		return err
	}
	username, err := prompt(reader, "Enter username")
	if err != nil {
		return err
	}
	password, err := readPassword()
	if err != nil {
		return err
	}

	return post(addr+"/api/v1/auth/register", map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	})
}

func authenticate(addr string) error {
	reader := bufio.NewReader(os.Stdin)

	email, err := prompt(reader, "Enter email")
	if err != nil {
		return err
	}
	password, err := readPassword()
	if err != nil {
		return err
	}

	return post(addr+"/api/v1/auth/authenticate", map[string]string{
		"email":    email,
		"password": password,
	})
}

func prompt(reader *bufio.Reader, text string) (string, error) {
	fmt.Println(text)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readPassword() (string, error) {
	fmt.Print("Enter password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func post(url string, payload map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	return printResponse(resp)
}

func get(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	fmt.Printf("%d %s\n", resp.StatusCode, strings.TrimSpace(string(body)))
	return nil
}
