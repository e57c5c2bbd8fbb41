package main

import (
	"context"
	"fmt"
	"os"

	"github.com/eduquip/catalog-backend/internal/auth"
	"github.com/eduquip/catalog-backend/internal/config"
	"github.com/eduquip/catalog-backend/internal/rbac"
)

// tokengen signs a development token carrying the role's full grant set,
// for exercising the API without a real identity provider.
func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <subject> <role>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s editor@example.com editor\n", os.Args[0])
		os.Exit(1)
	}

	subject := os.Args[1]
	role := rbac.Role(os.Args[2])

	grants, err := rbac.PermissionsForRole(role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	permissions := make([]string, len(grants))
	for i, p := range grants {
		permissions[i] = string(p)
	}

	cfg := config.Load()
	jwtService, err := auth.NewJWTService([]byte(cfg.JWT.SigningKey), cfg.JWT.Issuer, cfg.JWT.Expiry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize signer: %v\n", err)
		os.Exit(1)
	}

	token, err := jwtService.GenerateToken(context.Background(), auth.TokenParams{
		Subject:     subject,
		Email:       subject,
		Role:        role,
		Permissions: permissions,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
