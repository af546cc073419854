package main

import (
	"fmt"

	mysqlrepo "asset-custody/internal/adapter/repository/mysql"
	"asset-custody/internal/domain/user"
	"asset-custody/internal/infrastructure/db"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			gdb, err := openDB(cfg)
			if err != nil {
				return err
			}
			if err := db.Migrate(gdb); err != nil {
				return err
			}
			logrus.WithField("driver", cfg.DBDriver).Info("schema up to date")
			return nil
		},
	}
}

func newUsersCmd() *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage the users that may call the API",
	}

	var name, role string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user and print its id",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := user.Role(role)
			if !r.Valid() {
				return fmt.Errorf("invalid role %q (user, manager, admin)", role)
			}
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			gdb, err := openDB(cfg)
			if err != nil {
				return err
			}
			if err := db.Migrate(gdb); err != nil {
				return err
			}
			u := &user.User{Name: name, Role: r}
			if err := mysqlrepo.NewUserRepository(gdb).Create(cmd.Context(), u); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "display name")
	addCmd.Flags().StringVar(&role, "role", string(user.RoleUser), "user, manager or admin")

	usersCmd.AddCommand(addCmd)
	return usersCmd
}
