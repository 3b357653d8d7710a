// Command create-member creates a member with a bcrypt-hashed password, a
// random bearer token, and an empty profile row for onboarding to fill in.
// Usage: go run ./cmd/create-member
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// newMember is the prompted input for one member.
type newMember struct {
	Username string
	Email    string
	Password string
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	in, err := prompt(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	id, token, err := create(ctx, conn, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating member: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nMember created successfully!\n")
	fmt.Printf("  ID:         %d\n", id)
	fmt.Printf("  Username:   %s\n", in.Username)
	fmt.Printf("  Auth Token: %s\n", token)
}

// prompt reads username, email, and password, one per line.
func prompt(r io.Reader, w io.Writer) (newMember, error) {
	reader := bufio.NewReader(r)
	read := func(label string) string {
		fmt.Fprintf(w, "%s: ", label)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	m := newMember{
		Username: read("Username"),
		Email:    read("Email"),
		Password: read("Password"),
	}
	switch {
	case m.Username == "":
		return m, errors.New("username is required")
	case !strings.Contains(m.Email, "@"):
		return m, errors.New("email must contain @")
	case len(m.Password) < 8:
		return m, errors.New("password must be at least 8 characters")
	}
	return m, nil
}

// create inserts the member and its empty profile in one transaction.
func create(ctx context.Context, conn *pgx.Conn, m newMember) (int, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(m.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, "", fmt.Errorf("hash password: %w", err)
	}
	token := uuid.New().String()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, "", err
	}
	defer tx.Rollback(ctx)

	var id int
	err = tx.QueryRow(ctx,
		`INSERT INTO members (username, email, password, auth_token)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		m.Username, m.Email, string(hash), token,
	).Scan(&id)
	if err != nil {
		return 0, "", fmt.Errorf("insert member: %w", err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO member_profiles (member_id) VALUES ($1)`, id); err != nil {
		return 0, "", fmt.Errorf("insert profile: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, "", err
	}
	return id, token, nil
}
