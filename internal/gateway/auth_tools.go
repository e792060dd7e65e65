package gateway

import (
	"context"
	"time"

	"github.com/provena/provagent/internal/auth"
)

func (g *Gateway) checkAuthenticationStatus(ctx context.Context, args map[string]any) Outcome {
	if g.auth.IsAuthenticated() {
		return Success(map[string]any{
			"authenticated": true,
			"message":       "Authenticated with Provena",
		})
	}
	return Success(map[string]any{
		"authenticated": false,
		"message":       "Not authenticated. Use login_to_provena to authenticate.",
	})
}

func (g *Gateway) loginToProvena(ctx context.Context, args map[string]any) Outcome {
	result := g.auth.Login(ctx)
	switch result.Status {
	case auth.StatusAuthenticated, auth.StatusAlreadyAuthenticated:
		return Success(map[string]any{
			"login_status": result.Status,
			"message":      result.Message,
		})
	default:
		return Errorf("Login failed: %s", result.Message)
	}
}

func (g *Gateway) logoutFromProvena(ctx context.Context, args map[string]any) Outcome {
	g.auth.Logout()
	return Success(map[string]any{
		"message": "Logged out from Provena",
	})
}

func (g *Gateway) getCurrentDate(ctx context.Context, args map[string]any) Outcome {
	return Success(map[string]any{
		"date": time.Now().Format("2006-01-02"),
	})
}
