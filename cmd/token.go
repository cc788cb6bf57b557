// cmd/token.go
package cmd

import (
	"context"
	"fmt"

	"github.com/rauf-alluviam/auto-rack-sub000/config"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/auth"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/database"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/models"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/repository"

	"github.com/spf13/cobra"
)

var (
	tokenUserID uint
	userName    string
	userEmail   string
	userRole    string
)

// tokenCmd groups session token and account management
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage session tokens and accounts",
	Long:  `Create user accounts and issue signed session tokens for them.`,
}

// issueTokenCmd mints a session token for an existing user
var issueTokenCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a session token",
	Long:  `Issue a signed session token for an existing user account.`,
	Run: func(cmd *cobra.Command, args []string) {
		issueToken()
	},
}

// createUserCmd creates a buyer or seller account
var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user account",
	Long:  `Create a buyer or seller account that tokens can be issued for.`,
	Run: func(cmd *cobra.Command, args []string) {
		createUser()
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(issueTokenCmd)
	tokenCmd.AddCommand(createUserCmd)

	issueTokenCmd.Flags().UintVar(&tokenUserID, "user-id", 0, "ID of the user to issue a token for (required)")
	issueTokenCmd.MarkFlagRequired("user-id")

	createUserCmd.Flags().StringVarP(&userName, "name", "n", "", "Display name (required)")
	createUserCmd.Flags().StringVarP(&userEmail, "email", "e", "", "Email address (required)")
	createUserCmd.Flags().StringVarP(&userRole, "role", "r", "buyer", "Role: buyer or seller")
	createUserCmd.MarkFlagRequired("name")
	createUserCmd.MarkFlagRequired("email")
}

func issueToken() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	tokenManager, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	log.Info("Connecting to database...")
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := repository.NewRepository(db)

	user, err := repo.FindUserByID(context.Background(), tokenUserID)
	if err != nil {
		log.Fatalf("Failed to load user %d: %v", tokenUserID, err)
	}

	token, err := tokenManager.Issue(user.ID, user.Name, user.Role)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Println("=================================================================")
	fmt.Printf("Session token for %s (%s)\n", user.Name, user.Role)
	fmt.Println("-----------------------------------------------------------------")
	fmt.Println(token)
	fmt.Println("=================================================================")
}

func createUser() {
	role := models.Role(userRole)
	if role != models.RoleBuyer && role != models.RoleSeller {
		log.Fatalf("Invalid role %q. Must be buyer or seller.", userRole)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Info("Connecting to database...")
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := repository.NewRepository(db)

	user := &models.User{
		Name:  userName,
		Email: userEmail,
		Role:  role,
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User created: id=%d name=%s role=%s\n", user.ID, user.Name, user.Role)
}
