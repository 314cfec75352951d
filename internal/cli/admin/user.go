package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/umoyo-health/umoyoai/internal/domain"
	"github.com/umoyo-health/umoyoai/internal/repository"
	"github.com/umoyo-health/umoyoai/internal/service"
)

func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
		Long:  "Create and list users and their access tokens",
	}

	cmd.AddCommand(UserCreateCmd())
	cmd.AddCommand(UserListCmd())

	return cmd
}

func UserCreateCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "create <full-name> <email>",
		Short: "Create a new user",
		Long:  "Create a user and print the access token. The token is shown once and cannot be recovered.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, _ := cmd.Flags().GetString("output")
			return runUserCreate(args[0], args[1], role, outputFormat)
		},
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	cmd.Flags().StringVarP(&role, "role", "r", "fieldworker", "User role (admin, instructor, fieldworker)")

	return cmd
}

func runUserCreate(fullName, email, roleStr, outputFormat string) error {
	ctx := context.Background()

	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return fmt.Errorf("invalid role %q (expected admin, instructor or fieldworker)", roleStr)
	}

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	uuidGen := &service.DefaultUUIDGenerator{}
	authSvc := service.NewAuthService(userRepo, uuidGen)

	user, token, err := authSvc.CreateUser(ctx, fullName, email, role)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if outputFormat == "json" {
		data := map[string]interface{}{
			"id":         user.ID,
			"full_name":  user.FullName,
			"email":      user.Email,
			"role":       string(user.Role),
			"token":      token,
			"created_at": user.CreatedAt,
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		fmt.Printf("User created: %s <%s> (%s)\n", user.FullName, user.Email, user.Role)
		fmt.Printf("Access token (save it now, it is not shown again):\n  %s\n", token)
	}

	return nil
}

func UserListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Long:  "List all users in the system",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, _ := cmd.Flags().GetString("output")
			return runUserList(outputFormat)
		},
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runUserList(outputFormat string) error {
	ctx := context.Background()

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)

	users, err := userRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if outputFormat == "json" {
		data := make([]map[string]interface{}, len(users))
		for i, u := range users {
			data[i] = map[string]interface{}{
				"id":         u.ID,
				"full_name":  u.FullName,
				"email":      u.Email,
				"role":       string(u.Role),
				"created_at": u.CreatedAt,
			}
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		if len(users) == 0 {
			fmt.Println("No users found")
			return nil
		}
		fmt.Println("Users:")
		for _, u := range users {
			fmt.Printf("  %s: %s <%s> (%s, created: %s)\n", u.ID, u.FullName, u.Email, u.Role, u.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	}

	return nil
}
