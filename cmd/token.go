package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development token signed with auth.jwt_secret",
	Example: `  remotework-gin token --user emp-1 --username emma --role employee
  remotework-gin token --user apr-1 --username alan --role approver --ttl 8h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		userID, _ := flags.GetString("user")
		username, _ := flags.GetString("username")
		name, _ := flags.GetString("name")
		role, _ := flags.GetString("role")
		deptID, _ := flags.GetString("department-id")
		deptName, _ := flags.GetString("department-name")
		ttl, _ := flags.GetDuration("ttl")

		if userID == "" {
			return errors.New("--user is required")
		}
		if !model.ValidRole(role) {
			return fmt.Errorf("unknown role %q", role)
		}
		if username == "" {
			username = userID
		}

		token, err := auth.IssueToken(cfg.Auth.JWTSecret, auth.Identity{
			ActingUser: workflow.ActingUser{
				ID:           userID,
				Username:     username,
				DisplayName:  name,
				Role:         role,
				DepartmentID: deptID,
			},
			DepartmentName: deptName,
		}, ttl)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("user", "", "User ID (sub claim)")
	tokenCmd.Flags().String("username", "", "Username, defaults to the user ID")
	tokenCmd.Flags().String("name", "", "Display name")
	tokenCmd.Flags().String("role", model.RoleEmployee, "Role: employee, approver or admin")
	tokenCmd.Flags().String("department-id", "", "Department ID")
	tokenCmd.Flags().String("department-name", "", "Department name")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
}
