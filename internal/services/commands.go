package services

import (
	"fmt"

	"github.com/imyashkale/kmsdash/internal/models"
)

// GenerateCommands derives the four client-side activation commands for an
// activation key against the current server address. Pure function of its
// inputs; the address falls back to the display address when the server is
// bound to the wildcard.
func GenerateCommands(gvlk string, cfg models.ServerConfig) models.CommandSet {
	addr := cfg.Address()
	return models.CommandSet{
		InstallKey:  fmt.Sprintf("slmgr /ipk %s", gvlk),
		SetServer:   fmt.Sprintf("slmgr /skms %s", addr),
		Activate:    "slmgr /ato",
		CheckStatus: "slmgr /xpr",
	}
}
