// adminctl manages the admin credential directly against MongoDB. The
// HTTP setup endpoint only works once and login tokens cannot recover a
// lost password, so operators use this tool instead.
package main

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/granthkosh/backend/config"
	"github.com/granthkosh/backend/models"
	"github.com/granthkosh/backend/store"
	"github.com/granthkosh/backend/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	root := &cobra.Command{
		Use:   "adminctl",
		Short: "Manage the admin credential",
	}
	root.AddCommand(createCmd(), resetPasswordCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <username>",
		Short: "Create the admin account (fails if one already exists)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect()
			if err != nil {
				return err
			}
			defer db.Disconnect(context.Background())

			ctx := cmd.Context()
			count, err := db.AdminsCount(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("an admin already exists; use reset-password")
			}

			password, err := promptPassword()
			if err != nil {
				return err
			}
			salt, err := utils.NewSalt()
			if err != nil {
				return err
			}
			_, err = db.InsertAdmin(ctx, &models.Admin{
				Username:  args[0],
				Password:  utils.HashPassword(password, salt),
				Salt:      salt,
				CreatedAt: time.Now(),
			})
			if err != nil {
				return err
			}
			fmt.Printf("admin %q created\n", args[0])
			return nil
		},
	}
}

func resetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <username>",
		Short: "Set a new password for an existing admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect()
			if err != nil {
				return err
			}
			defer db.Disconnect(context.Background())

			password, err := promptPassword()
			if err != nil {
				return err
			}
			salt, err := utils.NewSalt()
			if err != nil {
				return err
			}
			found, err := db.SetAdminPassword(cmd.Context(), args[0], utils.HashPassword(password, salt), salt)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no admin named %q", args[0])
			}
			fmt.Printf("password updated for %q\n", args[0])
			return nil
		},
	}
}

func connect() (*store.DB, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if string(pw) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(pw) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}
	return string(pw), nil
}
