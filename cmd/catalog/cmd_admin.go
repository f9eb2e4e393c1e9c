package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tair/retail-dashboard/internal/app"
	usercmd "github.com/tair/retail-dashboard/internal/user/usecase/command"
	"github.com/tair/retail-dashboard/pkg/auth"
)

var (
	adminUsername string
	adminFullName string
	adminPassword string
)

// createAdminCmd creates an administrator account
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Long: `Create an account with the admin role. Self-registration over HTTP
only ever creates regular users.`,
	RunE: runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Login name")
	createAdminCmd.Flags().StringVar(&adminFullName, "full-name", "", "Display name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	a, cleanup, err := app.Bootstrap(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	fullName := adminFullName
	if fullName == "" {
		fullName = adminUsername
	}

	user, err := a.RegisterHandler.Handle(cmd.Context(), usercmd.RegisterUserCommand{
		Username: adminUsername,
		Password: adminPassword,
		FullName: fullName,
		Role:     auth.RoleAdmin,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created admin %s\n", user.Username)
	return nil
}
